package game

import (
	"sync"

	"github.com/google/uuid"
)

// GameStore holds every live table in the process, keyed by session ID.
// Each game serializes its own mutation; the store only guards the map.
type GameStore struct {
	mu    sync.Mutex
	games map[uuid.UUID]*EuchreGame
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[uuid.UUID]*EuchreGame),
	}
}

func (s *GameStore) AddGame(g *EuchreGame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

func (s *GameStore) GetGame(id uuid.UUID) (*EuchreGame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, exists := s.games[id]
	return g, exists
}

func (s *GameStore) DeleteGame(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.games[id]; ok {
		g.Stop()
		delete(s.games, id)
	}
}

// ListGames returns the IDs of all live tables.
func (s *GameStore) ListGames() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	return ids
}
