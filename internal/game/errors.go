// internal/game/errors.go
package game

import "errors"

// Protocol and rule-violation errors. Every phase handler rejects an
// invalid action with one of these (or a wrapped variant carrying detail)
// before touching any state, so a refused action never mutates the game.
var (
	ErrWrongPhase       = errors.New("action not valid in the current phase")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrGameOver         = errors.New("game is over")
	ErrTableFull        = errors.New("all four seats are taken")
	ErrAlreadySeated    = errors.New("already seated at this table")
	ErrNotEnoughPlayers = errors.New("need four seated players to start")
	ErrNotDealer        = errors.New("only the dealer may do that")
	ErrNotTrumpCaller   = errors.New("only the player who called trump may do that")
	ErrCardNotInHand    = errors.New("card is not in your hand")
	ErrMustFollowSuit   = errors.New("must follow the led suit")
	ErrForbiddenSuit    = errors.New("cannot call the suit that was turned down")

	// Integrity errors guard conditions that correct dealing logic makes
	// unreachable; the offending action is aborted rather than applied.
	ErrDeckExhausted = errors.New("deck exhausted mid-deal")
	ErrWrongHandSize = errors.New("hand size is wrong for this action")
)
