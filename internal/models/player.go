// internal/models/player.go
package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Player is the occupant of a seat. The connection fields are transport
// state carried alongside the player; the rules engine never reads them.
type Player struct {
	Seat      Seat      `json:"seat"`
	Name      string    `json:"name"`
	Hand      []Card    `json:"hand"`
	Tricks    int       `json:"tricks"`
	Connected bool      `json:"connected"`
	ConnID    uuid.UUID `json:"-"`

	Conn *websocket.Conn `json:"-"`
}
