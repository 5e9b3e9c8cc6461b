// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SevWren/MuellerEuchre-sub001/internal/game"
	"github.com/SevWren/MuellerEuchre-sub001/internal/middleware"
	"github.com/SevWren/MuellerEuchre-sub001/internal/models"
)

// GameMessage is the structure for incoming WebSocket messages during play.
// Every message carries a type; the remaining fields are populated per
// action (decision for order_up/go_alone, suit for call_trump, card for
// dealer_discard/play_card).
type GameMessage struct {
	Type     string    `json:"type"`
	Decision bool      `json:"decision,omitempty"`
	Suit     string    `json:"suit,omitempty"`
	Card     *wireCard `json:"card,omitempty"`
}

// wireCard is the client-side card shape, decoded into models.Card before
// the engine ever sees it.
type wireCard struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// GameWSHandler upgrades the HTTP connection to WebSocket for a specific
// session. It authenticates the caller (minting an ephemeral identity if
// needed), seats or resumes the player, registers the connection, and runs
// the read loop until the client disconnects.
func GameWSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Extract session ID from URL path: /game/ws/{session_id}
		pathParts := strings.Split(strings.TrimPrefix(r.URL.Path, "/game/ws/"), "/")
		if len(pathParts) < 1 || pathParts[0] == "" {
			http.Error(w, "Missing session_id in path (/game/ws/{session_id})", http.StatusBadRequest)
			return
		}
		sessionID, err := uuid.Parse(pathParts[0])
		if err != nil {
			http.Error(w, "Invalid session_id format", http.StatusBadRequest)
			return
		}

		g, ok := gs.GameStore.GetGame(sessionID)
		if !ok {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}

		// Authenticate before upgrading so the cookie can still be set.
		connID, err := EnsureSession(w, r)
		if err != nil {
			logger.Warnf("Session authentication failed for %s: %v", sessionID, err)
			http.Error(w, "Authentication failed", http.StatusForbidden)
			return
		}

		name := r.URL.Query().Get("name")
		if name == "" {
			name = "Guest"
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"euchre"},
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for session %s: %v", sessionID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != "euchre" {
			logger.Warnf("Client for session %s connected with invalid subprotocol: %s", sessionID, c.Subprotocol())
			c.Close(websocket.StatusCode(BadSubprotocolError), "Client must use the 'euchre' subprotocol.")
			return
		}
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		// Register broadcast functions once per game instance. Both are
		// invoked by the engine with the game lock held, so they read the
		// seat table directly and push writes to goroutines.
		g.Mu.Lock()
		if g.BroadcastFn == nil {
			g.BroadcastFn = createBroadcastFunc(g, logger)
		}
		if g.BroadcastToSeatFn == nil {
			g.BroadcastToSeatFn = createBroadcastToSeatFunc(g, logger)
		}

		// Seat the player: a known identity resumes into its seat, a new
		// one joins the lobby. The socket is attached before Resume so
		// the replayed snapshot reaches the returning client.
		var seat models.Seat
		if s, known := g.SeatForConn(connID); known {
			g.Players[s].Conn = c
			g.Resume(connID)
			seat = s
			logger.Infof("Seat %s resumed in session %s", seat, sessionID)
		} else {
			s, joinErr := g.Join(name, connID)
			if joinErr != nil {
				g.Mu.Unlock()
				logger.Warnf("Join failed for session %s: %v", sessionID, joinErr)
				c.Close(websocket.StatusCode(SessionFullError), joinErr.Error())
				return
			}
			seat = s
			g.Players[seat].Conn = c
			g.SyncViews()
			logger.Infof("Seat %s joined session %s as %q", seat, sessionID, name)
		}
		g.Mu.Unlock()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		readGameMessages(ctx, c, g, connID, logger)

		logger.Infof("Seat %s WebSocket read loop exited for session %s.", seat, sessionID)
		g.HandleDisconnect(connID)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, nil)
	}
}

// createBroadcastFunc returns a function suitable for EuchreGame.BroadcastFn.
// The engine calls it with the game lock held, so it must not lock again;
// it snapshots the connected sockets, then marshals and writes off-thread.
func createBroadcastFunc(g *game.EuchreGame, logger *logrus.Logger) func(ev game.GameEvent) {
	return func(ev game.GameEvent) {
		conns := []*websocket.Conn{}
		for _, p := range g.Players {
			if p != nil && p.Connected && p.Conn != nil {
				conns = append(conns, p.Conn)
			}
		}
		if len(conns) == 0 {
			return
		}

		msgBytes, err := json.Marshal(ev)
		if err != nil {
			logger.Errorf("Failed to marshal broadcast event (%s) for session %s: %v", ev.Type, g.ID, err)
			return
		}

		go func(conns []*websocket.Conn, data []byte, sessionID uuid.UUID) {
			for _, conn := range conns {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				err := conn.Write(ctx, websocket.MessageText, data)
				cancel()
				if err != nil {
					logger.Warnf("Failed to write broadcast message in session %s: %v", sessionID, err)
				}
			}
		}(conns, msgBytes, g.ID)
	}
}

// createBroadcastToSeatFunc returns a function suitable for
// EuchreGame.BroadcastToSeatFn. Also called with the game lock held.
func createBroadcastToSeatFunc(g *game.EuchreGame, logger *logrus.Logger) func(seat models.Seat, ev game.GameEvent) {
	return func(seat models.Seat, ev game.GameEvent) {
		p := g.Players[seat]
		if p == nil || !p.Connected || p.Conn == nil {
			return
		}
		targetConn := p.Conn

		msgBytes, err := json.Marshal(ev)
		if err != nil {
			logger.Errorf("Failed to marshal private event (%s) for seat %s in session %s: %v", ev.Type, seat, g.ID, err)
			return
		}

		go func(conn *websocket.Conn, data []byte, seat models.Seat, sessionID uuid.UUID) {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := conn.Write(ctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("Failed to write private message to seat %s in session %s: %v", seat, sessionID, err)
			}
		}(targetConn, msgBytes, seat, g.ID)
	}
}

// readGameMessages continuously reads messages from a client's WebSocket
// connection, decodes them into engine actions, and dispatches them under
// the game lock. Rejections are reported only to the offending seat; the
// shared state is untouched on error.
func readGameMessages(ctx context.Context, c *websocket.Conn, g *game.EuchreGame, connID uuid.UUID, logger *logrus.Logger) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Infof("WebSocket closed normally in session %s.", g.ID)
			} else if strings.Contains(err.Error(), "context canceled") {
				logger.Infof("WebSocket context canceled in session %s.", g.ID)
			} else {
				logger.Warnf("Error reading from WebSocket in session %s: %v (Status: %d)", g.ID, err, status)
			}
			return
		}

		if msgType != websocket.MessageText {
			logger.Warnf("Received non-text message type %d in session %s. Ignoring.", msgType, g.ID)
			continue
		}

		var msg GameMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Invalid JSON received in session %s: %v. Data: %s", g.ID, err, string(data))
			sendWsError(ctx, c, "Invalid JSON format.")
			continue
		}

		if msg.Type == "ping" {
			sendWsMessage(ctx, c, map[string]string{"type": "pong"})
			continue
		}

		action, err := decodeAction(msg)
		if err != nil {
			logger.Warnf("Undecodable action %q in session %s: %v", msg.Type, g.ID, err)
			sendWsError(ctx, c, err.Error())
			continue
		}

		logger.Debugf("Received action '%s' in session %s.", msg.Type, g.ID)

		g.Mu.Lock()
		seat, seated := g.SeatForConn(connID)
		if !seated {
			g.Mu.Unlock()
			sendWsError(ctx, c, "You are not seated at this table.")
			continue
		}
		dispatchErr := g.HandleAction(seat, action)
		if dispatchErr != nil {
			s := seat
			ev := game.GameEvent{
				Type: game.EventPrivateRejected,
				Seat: &s,
				Payload: map[string]interface{}{
					"action": msg.Type,
					"reason": dispatchErr.Error(),
				},
			}
			if g.BroadcastToSeatFn != nil {
				g.BroadcastToSeatFn(seat, ev)
			}
			logger.Debugf("Rejected action '%s' from seat %s in session %s: %v", msg.Type, seat, g.ID, dispatchErr)
		}
		g.Mu.Unlock()

		select {
		case <-ctx.Done():
			logger.Infof("Context canceled after processing message in session %s.", g.ID)
			return
		default:
		}
	}
}

// decodeAction converts a wire message into a typed engine command. All
// parse failures surface here so the engine only ever sees valid values.
func decodeAction(msg GameMessage) (game.Action, error) {
	a := game.Action{Type: game.ActionType(msg.Type), Decision: msg.Decision}

	switch a.Type {
	case game.ActionStartGame, game.ActionOrderUp, game.ActionGoAlone, game.ActionNewSession:
		return a, nil
	case game.ActionCallTrump:
		// An empty suit is a pass.
		if msg.Suit != "" {
			suit, err := models.ParseSuit(msg.Suit)
			if err != nil {
				return a, fmt.Errorf("invalid suit %q", msg.Suit)
			}
			a.Suit = &suit
		}
		return a, nil
	case game.ActionDealerDiscard, game.ActionPlayCard:
		if msg.Card == nil {
			return a, fmt.Errorf("%s requires a card", msg.Type)
		}
		suit, err := models.ParseSuit(msg.Card.Suit)
		if err != nil {
			return a, fmt.Errorf("invalid card suit %q", msg.Card.Suit)
		}
		rank, err := models.ParseRank(msg.Card.Rank)
		if err != nil {
			return a, fmt.Errorf("invalid card rank %q", msg.Card.Rank)
		}
		a.Card = &models.Card{Suit: suit, Rank: rank}
		return a, nil
	default:
		return a, fmt.Errorf("unknown action type: %s", msg.Type)
	}
}
