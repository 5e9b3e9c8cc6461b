// internal/game/events.go
package game

import "github.com/SevWren/MuellerEuchre-sub001/internal/models"

// GameEventType is an enum-like type for broadcasting game notifications.
type GameEventType string

const (
	EventPlayerJoined    GameEventType = "player_joined"    // Public: a seat was taken
	EventPlayerLeft      GameEventType = "player_left"      // Public: a seat disconnected
	EventGameStarted     GameEventType = "game_started"     // Public: lobby closed, first hand dealt
	EventHandStarted     GameEventType = "hand_started"     // Public: new deal, dealer + up-card
	EventOrderUpPassed   GameEventType = "order_up_passed"  // Public: current player passed on the up-card
	EventTrumpCalled     GameEventType = "trump_called"     // Public: trump fixed (either round)
	EventUpCardTurned    GameEventType = "up_card_turned"   // Public: all passed round 1, suit now forbidden
	EventDealerDiscard   GameEventType = "dealer_discarded" // Public: dealer buried a card (identity hidden)
	EventGoAlone         GameEventType = "go_alone"         // Public: maker's go-alone decision
	EventCardPlayed      GameEventType = "card_played"      // Public: a card hit the table
	EventTrickWon        GameEventType = "trick_won"        // Public: trick resolved
	EventHandScored      GameEventType = "hand_scored"      // Public: points applied after a hand
	EventRedeal          GameEventType = "redeal"           // Public: round 2 passed out, fresh deal
	EventGameOver        GameEventType = "game_over"        // Public: a team reached the winning score
	EventSessionReset    GameEventType = "session_reset"    // Public: scores cleared, back to lobby
	EventPrivateState    GameEventType = "private_state"    // Private: personalized snapshot for one seat
	EventPrivateRejected GameEventType = "private_rejected" // Private: an action was refused
)

// GameEvent is the single wire shape for every broadcast notification.
// Optional fields are pointers so they vanish from the JSON when unset.
type GameEvent struct {
	Type GameEventType `json:"type"`
	Seat *models.Seat  `json:"seat,omitempty"`
	Card *models.Card  `json:"card,omitempty"`
	Suit *models.Suit  `json:"suit,omitempty"`
	Team *models.Team  `json:"team,omitempty"`

	Payload map[string]interface{} `json:"payload,omitempty"`

	// State carries the per-seat snapshot on private_state events.
	State *SeatView `json:"state,omitempty"`
}
