// internal/game/actions.go
package game

import (
	"fmt"

	"github.com/SevWren/MuellerEuchre-sub001/internal/models"
)

// ActionType names every inbound command the engine accepts. The transport
// layer's only job is to deserialize a message into one of these; routing
// and validation live here.
type ActionType string

const (
	ActionStartGame     ActionType = "start_game"
	ActionOrderUp       ActionType = "order_up"
	ActionDealerDiscard ActionType = "dealer_discard"
	ActionCallTrump     ActionType = "call_trump"
	ActionGoAlone       ActionType = "go_alone"
	ActionPlayCard      ActionType = "play_card"
	ActionNewSession    ActionType = "new_session"
)

// Action is a fully decoded player command. Decision carries the boolean
// for order_up and go_alone; Suit is the round-2 call (nil means pass);
// Card is the discard or play target.
type Action struct {
	Type     ActionType
	Decision bool
	Suit     *models.Suit
	Card     *models.Card
}

// HandleAction routes a command from seat to the single handler authorized
// for the current phase. On success the per-seat snapshots are rebroadcast
// and the aggregate persisted; on error nothing has changed and the caller
// notifies only the offending seat. Assumes lock is held.
func (g *EuchreGame) HandleAction(seat models.Seat, a Action) error {
	if g.Phase == PhaseGameOver && a.Type != ActionNewSession {
		return ErrGameOver
	}

	var err error
	switch a.Type {
	case ActionStartGame:
		err = g.handleStartGame(seat)
	case ActionOrderUp:
		err = g.handleOrderUp(seat, a.Decision)
	case ActionDealerDiscard:
		if a.Card == nil {
			err = fmt.Errorf("dealer_discard requires a card")
		} else {
			err = g.handleDealerDiscard(seat, *a.Card)
		}
	case ActionCallTrump:
		err = g.handleCallTrump(seat, a.Suit)
	case ActionGoAlone:
		err = g.handleGoAlone(seat, a.Decision)
	case ActionPlayCard:
		if a.Card == nil {
			err = fmt.Errorf("play_card requires a card")
		} else {
			err = g.handlePlayCard(seat, *a.Card)
		}
	case ActionNewSession:
		err = g.handleNewSession(seat)
	default:
		err = fmt.Errorf("unknown action %q", a.Type)
	}
	if err != nil {
		return err
	}

	g.broadcastSeatViews()
	g.persistSnapshot()
	return nil
}
