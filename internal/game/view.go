// internal/game/view.go
package game

import (
	"github.com/google/uuid"

	"github.com/SevWren/MuellerEuchre-sub001/internal/models"
)

// SeatInfo is what one seat is allowed to know about another: the hand is
// reduced to a count, identities stay hidden.
type SeatInfo struct {
	Seat       models.Seat `json:"seat"`
	Name       string      `json:"name"`
	Connected  bool        `json:"connected"`
	HandSize   int         `json:"handSize"`
	Tricks     int         `json:"tricks"`
	IsCurrent  bool        `json:"isCurrent"`
	SittingOut bool        `json:"sittingOut"`
}

// SeatView is the personalized snapshot broadcast after every successful
// mutation. Only the receiving seat's own cards appear; the deck is never
// exposed at all.
type SeatView struct {
	GameID        uuid.UUID      `json:"gameId"`
	You           models.Seat    `json:"you"`
	Phase         Phase          `json:"phase"`
	Dealer        models.Seat    `json:"dealer"`
	CurrentPlayer models.Seat    `json:"currentPlayer"`
	Trump         *models.Suit   `json:"trump,omitempty"`
	UpCard        *models.Card   `json:"upCard,omitempty"`
	ForbiddenSuit *models.Suit   `json:"forbiddenSuit,omitempty"`
	KittySize     int            `json:"kittySize"`
	Hand          []models.Card  `json:"hand"`
	Seats         []SeatInfo     `json:"seats"`
	Maker         *models.Team   `json:"maker,omitempty"`
	TrumpCaller   *models.Seat   `json:"trumpCaller,omitempty"`
	GoingAlone    bool           `json:"goingAlone"`
	SittingOut    *models.Seat   `json:"sittingOut,omitempty"`
	TrickLeader   *models.Seat   `json:"trickLeader,omitempty"`
	CurrentTrick  []TrickPlay    `json:"currentTrick"`
	TricksPlayed  int            `json:"tricksPlayed"`
	LastTrick     *CompletedTrick `json:"lastTrick,omitempty"`
	Scores        map[string]int `json:"scores"`
	Winner        *models.Team   `json:"winner,omitempty"`
	Log           []string       `json:"log"`
}

// ViewFor builds the snapshot for one seat. Assumes lock is held.
func (g *EuchreGame) ViewFor(seat models.Seat) SeatView {
	view := SeatView{
		GameID:        g.ID,
		You:           seat,
		Phase:         g.Phase,
		Dealer:        g.Dealer,
		CurrentPlayer: g.CurrentPlayer,
		Trump:         g.Trump,
		UpCard:        g.UpCard,
		ForbiddenSuit: g.ForbiddenSuit,
		KittySize:     len(g.Kitty),
		Maker:         g.Maker,
		TrumpCaller:   g.TrumpCaller,
		GoingAlone:    g.GoingAlone,
		SittingOut:    g.SittingOut,
		CurrentTrick:  append([]TrickPlay(nil), g.CurrentTrick...),
		TricksPlayed:  len(g.CompletedTricks),
		Scores: map[string]int{
			models.TeamNorthSouth.String(): g.Scores[models.TeamNorthSouth],
			models.TeamEastWest.String():   g.Scores[models.TeamEastWest],
		},
		Winner: g.Winner,
		Log:    append([]string(nil), g.Log...),
	}

	if g.Phase == PhasePlayingTricks {
		leader := g.TrickLeader
		view.TrickLeader = &leader
	}
	if n := len(g.CompletedTricks); n > 0 {
		last := g.CompletedTricks[n-1]
		view.LastTrick = &last
	}

	for _, other := range models.AllSeats() {
		p := g.Players[other]
		if p == nil {
			continue
		}
		view.Seats = append(view.Seats, SeatInfo{
			Seat:       other,
			Name:       p.Name,
			Connected:  p.Connected,
			HandSize:   len(p.Hand),
			Tricks:     p.Tricks,
			IsCurrent:  other == g.CurrentPlayer && g.Phase != PhaseLobby && g.Phase != PhaseGameOver,
			SittingOut: g.SittingOut != nil && other == *g.SittingOut,
		})
		if other == seat {
			view.Hand = SortHand(p.Hand, g.Trump)
		}
	}
	return view
}
