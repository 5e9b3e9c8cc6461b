// internal/handlers/game_server.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/SevWren/MuellerEuchre-sub001/internal/game"
)

// GameServer holds the table store shared by every HTTP and WebSocket
// handler in the process.
type GameServer struct {
	GameStore *game.GameStore
	Logger    *logrus.Logger
}

func NewGameServer(logger *logrus.Logger) *GameServer {
	return &GameServer{
		GameStore: game.NewGameStore(),
		Logger:    logger,
	}
}

// CreateSessionHandler creates a fresh table and returns its session ID.
// Clients then connect to /game/ws/{session_id} to take a seat.
func (gs *GameServer) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	g := game.NewEuchreGame()
	gs.GameStore.AddGame(g)
	gs.Logger.Infof("Created game session %s", g.ID)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"session_id": g.ID.String()}); err != nil {
		http.Error(w, "failed to write response", http.StatusInternalServerError)
	}
}

// ListSessionsHandler returns the IDs of every live table.
func (gs *GameServer) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ids := gs.GameStore.ListGames()
	sessions := make([]string, 0, len(ids))
	for _, id := range ids {
		sessions = append(sessions, id.String())
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string][]string{"sessions": sessions}); err != nil {
		http.Error(w, "failed to write response", http.StatusInternalServerError)
	}
}
