// internal/game/turns.go
package game

import (
	"errors"

	"github.com/SevWren/MuellerEuchre-sub001/internal/models"
)

// ErrNoNextPlayer is returned when every other seat is sitting out and the
// rotation would wrap back to the starting seat.
var ErrNoNextPlayer = errors.New("no next player: rotation wrapped to the starting seat")

// NextActiveSeat returns the seat clockwise of from, skipping the seat
// sitting out during a lone hand. sittingOut is nil when all four play.
func NextActiveSeat(from models.Seat, sittingOut *models.Seat) (models.Seat, error) {
	next := from.Next()
	if sittingOut != nil && next == *sittingOut {
		next = next.Next()
	}
	if next == from {
		return from, ErrNoNextPlayer
	}
	return next, nil
}

// activeSeatOrFollowing returns seat itself unless that seat is sitting
// out, in which case the next active seat is chosen. Used when the nominal
// trick leader (left of dealer, or trick winner) is the skipped partner.
func activeSeatOrFollowing(seat models.Seat, sittingOut *models.Seat) (models.Seat, error) {
	if sittingOut == nil || seat != *sittingOut {
		return seat, nil
	}
	return NextActiveSeat(seat, sittingOut)
}
