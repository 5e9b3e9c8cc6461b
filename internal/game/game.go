// internal/game/game.go
package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SevWren/MuellerEuchre-sub001/internal/cache"
	"github.com/SevWren/MuellerEuchre-sub001/internal/database"
	"github.com/SevWren/MuellerEuchre-sub001/internal/models"
)

// Phase is the state-machine position of a hand.
type Phase string

const (
	PhaseLobby                 Phase = "lobby"
	PhaseOrderUpRound1         Phase = "order_up_round1"
	PhaseAwaitingDealerDiscard Phase = "awaiting_dealer_discard"
	PhaseOrderUpRound2         Phase = "order_up_round2"
	PhaseAwaitingGoAlone       Phase = "awaiting_go_alone"
	PhasePlayingTricks         Phase = "playing_tricks"
	PhaseHandOver              Phase = "hand_over"
	PhaseGameOver              Phase = "game_over"
)

const (
	// HandSize is the number of cards dealt to each seat.
	HandSize = 5
	// WinningScore ends the game when either team reaches it.
	WinningScore = 10
	// logCap bounds the rolling message log kept in the aggregate.
	logCap = 50
)

// TrickPlay is one seat's card in the trick being played.
type TrickPlay struct {
	Seat models.Seat `json:"seat"`
	Card models.Card `json:"card"`
}

// CompletedTrick archives a resolved trick.
type CompletedTrick struct {
	Plays  []TrickPlay `json:"plays"`
	Winner models.Seat `json:"winner"`
}

// EuchreGame holds the entire authoritative state for one table. All
// mutation happens under Mu; the websocket layer locks before dispatching
// an action and the engine assumes the lock is held throughout a handler.
type EuchreGame struct {
	ID uuid.UUID
	Mu sync.Mutex

	Phase   Phase
	Players [4]*models.Player // indexed by models.Seat

	Dealer        models.Seat
	CurrentPlayer models.Seat
	dealerChosen  bool // first hand picks the dealer at random, then rotate

	Trump           *models.Suit
	UpCard          *models.Card
	ForbiddenSuit   *models.Suit // round-2 only: the suit turned down
	Kitty           []models.Card
	Maker           *models.Team
	TrumpCaller     *models.Seat
	GoingAlone      bool
	LoneSeat        *models.Seat
	SittingOut      *models.Seat
	DealerDiscarded bool

	TrickLeader     models.Seat
	CurrentTrick    []TrickPlay
	CompletedTricks []CompletedTrick

	Scores [2]int // indexed by models.Team
	Winner *models.Team

	// Log is the rolling human-readable message feed included in snapshots.
	Log []string

	// HandDelay is the pause between scoring a hand and dealing the next,
	// so clients can show the result. Zero deals immediately (tests).
	HandDelay time.Duration
	handTimer *time.Timer

	actionIndex int

	// BroadcastFn sends an event to every connected seat. BroadcastToSeatFn
	// sends to one seat only. Both are injected by the transport layer; the
	// engine never touches a socket.
	BroadcastFn       func(ev GameEvent)
	BroadcastToSeatFn func(seat models.Seat, ev GameEvent)

	rng *rand.Rand
}

// NewEuchreGame builds an empty table in the lobby phase.
func NewEuchreGame() *EuchreGame {
	id, _ := uuid.NewRandom()
	return &EuchreGame{
		ID:        id,
		Phase:     PhaseLobby,
		HandDelay: 3 * time.Second,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed replaces the game's random source; tests use it for deterministic
// deals. Must be called before StartGame.
func (g *EuchreGame) Seed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// Join seats a new player at the first free seat, in turn order from
// south. Assumes lock is held.
func (g *EuchreGame) Join(name string, connID uuid.UUID) (models.Seat, error) {
	if g.Phase != PhaseLobby {
		return 0, ErrWrongPhase
	}
	for _, p := range g.Players {
		if p != nil && p.ConnID == connID {
			return 0, ErrAlreadySeated
		}
	}
	for _, seat := range models.AllSeats() {
		if g.Players[seat] == nil {
			g.Players[seat] = &models.Player{
				Seat:      seat,
				Name:      name,
				Connected: true,
				ConnID:    connID,
			}
			s := seat
			g.appendLog(fmt.Sprintf("%s joined as %s", name, seat))
			g.fireEvent(GameEvent{Type: EventPlayerJoined, Seat: &s, Payload: map[string]interface{}{"name": name}})
			g.logAction(&s, string(EventPlayerJoined), map[string]interface{}{"name": name})
			return seat, nil
		}
	}
	return 0, ErrTableFull
}

// SeatForConn resolves a transport connection identity to its seat.
// Assumes lock is held.
func (g *EuchreGame) SeatForConn(connID uuid.UUID) (models.Seat, bool) {
	for _, p := range g.Players {
		if p != nil && p.ConnID == connID {
			return p.Seat, true
		}
	}
	return 0, false
}

// HandleDisconnect marks a seat's player as disconnected. The seat stays
// occupied so the player can resume; an unresponsive player simply leaves
// the turn pending.
func (g *EuchreGame) HandleDisconnect(connID uuid.UUID) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	seat, ok := g.SeatForConn(connID)
	if !ok {
		return
	}
	p := g.Players[seat]
	if !p.Connected {
		return
	}
	p.Connected = false
	p.Conn = nil
	s := seat
	g.appendLog(fmt.Sprintf("%s disconnected", p.Name))
	g.fireEvent(GameEvent{Type: EventPlayerLeft, Seat: &s})
	g.broadcastSeatViews()
}

// Resume reattaches a returning connection to its seat and replays the
// personalized snapshot so the client can catch up. Assumes lock is held.
func (g *EuchreGame) Resume(connID uuid.UUID) (models.Seat, bool) {
	seat, ok := g.SeatForConn(connID)
	if !ok {
		return 0, false
	}
	p := g.Players[seat]
	p.Connected = true
	g.appendLog(fmt.Sprintf("%s reconnected", p.Name))
	g.sendSeatView(seat)
	g.broadcastSeatViews()
	return seat, true
}

// fireEvent broadcasts an event to every connected seat.
// Assumes lock is held.
func (g *EuchreGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// fireEventToSeat sends an event to one seat only. Assumes lock is held.
func (g *EuchreGame) fireEventToSeat(seat models.Seat, ev GameEvent) {
	if g.BroadcastToSeatFn == nil {
		return
	}
	if p := g.Players[seat]; p != nil && p.Connected {
		g.BroadcastToSeatFn(seat, ev)
	}
}

// sendSeatView pushes the personalized snapshot to a single seat.
// Assumes lock is held.
func (g *EuchreGame) sendSeatView(seat models.Seat) {
	view := g.ViewFor(seat)
	g.fireEventToSeat(seat, GameEvent{Type: EventPrivateState, State: &view})
}

// broadcastSeatViews pushes every seat its own snapshot. Hands of other
// seats are reduced to counts inside ViewFor, so no client ever sees
// another hand or the deck. Assumes lock is held.
func (g *EuchreGame) broadcastSeatViews() {
	for _, seat := range models.AllSeats() {
		if p := g.Players[seat]; p != nil && p.Connected {
			g.sendSeatView(seat)
		}
	}
}

// SyncViews rebroadcasts every seat's personalized snapshot. The transport
// layer calls it after attaching a socket so the new connection catches up.
// Assumes lock is held.
func (g *EuchreGame) SyncViews() {
	g.broadcastSeatViews()
}

// appendLog adds a line to the rolling message log. Assumes lock is held.
func (g *EuchreGame) appendLog(msg string) {
	g.Log = append(g.Log, msg)
	if len(g.Log) > logCap {
		g.Log = g.Log[len(g.Log)-logCap:]
	}
}

// logAction publishes an action record to the history queue when Redis is
// configured. Runs async; the engine never blocks on it. Assumes lock is
// held for the index increment.
func (g *EuchreGame) logAction(seat *models.Seat, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	if payload == nil {
		payload = map[string]interface{}{}
	}
	record := cache.GameActionRecord{
		GameID:      g.ID,
		ActionIndex: g.actionIndex,
		ActionType:  actionType,
		Payload:     payload,
		Timestamp:   time.Now().UnixMilli(),
	}
	if seat != nil {
		s := seat.String()
		record.Seat = &s
	}
	go func(rec cache.GameActionRecord) {
		if cache.Rdb == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			log.Printf("publish action %d for game %s: %v", rec.ActionIndex, rec.GameID, err)
		}
	}(record)
}

// persistSnapshot saves the full aggregate to Postgres when configured.
// Runs async so a slow database never stalls play. Assumes lock is held
// while the snapshot value is built.
func (g *EuchreGame) persistSnapshot() {
	if !database.Enabled() {
		return
	}
	snap := g.Snapshot()
	go func(id uuid.UUID, s GameSnapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.SaveGameSnapshot(ctx, id, s); err != nil {
			log.Printf("persist snapshot for game %s: %v", id, err)
		}
	}(g.ID, snap)
}

// GameSnapshot is the unobfuscated persisted form of the aggregate,
// keyed by session ID in storage. It is never sent to clients.
type GameSnapshot struct {
	ID              uuid.UUID                      `json:"id"`
	Phase           Phase                          `json:"phase"`
	Dealer          models.Seat                    `json:"dealer"`
	CurrentPlayer   models.Seat                    `json:"current_player"`
	Trump           *models.Suit                   `json:"trump,omitempty"`
	UpCard          *models.Card                   `json:"up_card,omitempty"`
	ForbiddenSuit   *models.Suit                   `json:"forbidden_suit,omitempty"`
	Kitty           []models.Card                  `json:"kitty"`
	Maker           *models.Team                   `json:"maker,omitempty"`
	TrumpCaller     *models.Seat                   `json:"trump_caller,omitempty"`
	GoingAlone      bool                           `json:"going_alone"`
	SittingOut      *models.Seat                   `json:"sitting_out,omitempty"`
	DealerDiscarded bool                           `json:"dealer_discarded"`
	TrickLeader     models.Seat                    `json:"trick_leader"`
	CurrentTrick    []TrickPlay                    `json:"current_trick"`
	CompletedTricks []CompletedTrick               `json:"completed_tricks"`
	Hands           map[string][]models.Card       `json:"hands"`
	Names           map[string]string              `json:"names"`
	Tricks          map[string]int                 `json:"tricks"`
	Scores          map[string]int                 `json:"scores"`
	Winner          *models.Team                   `json:"winner,omitempty"`
	Log             []string                       `json:"log"`
}

// Snapshot builds the persisted form of the current state.
// Assumes lock is held.
func (g *EuchreGame) Snapshot() GameSnapshot {
	snap := GameSnapshot{
		ID:              g.ID,
		Phase:           g.Phase,
		Dealer:          g.Dealer,
		CurrentPlayer:   g.CurrentPlayer,
		Trump:           g.Trump,
		UpCard:          g.UpCard,
		ForbiddenSuit:   g.ForbiddenSuit,
		Kitty:           append([]models.Card(nil), g.Kitty...),
		Maker:           g.Maker,
		TrumpCaller:     g.TrumpCaller,
		GoingAlone:      g.GoingAlone,
		SittingOut:      g.SittingOut,
		DealerDiscarded: g.DealerDiscarded,
		TrickLeader:     g.TrickLeader,
		CurrentTrick:    append([]TrickPlay(nil), g.CurrentTrick...),
		CompletedTricks: append([]CompletedTrick(nil), g.CompletedTricks...),
		Hands:           map[string][]models.Card{},
		Names:           map[string]string{},
		Tricks:          map[string]int{},
		Scores: map[string]int{
			models.TeamNorthSouth.String(): g.Scores[models.TeamNorthSouth],
			models.TeamEastWest.String():   g.Scores[models.TeamEastWest],
		},
		Winner: g.Winner,
		Log:    append([]string(nil), g.Log...),
	}
	for _, p := range g.Players {
		if p == nil {
			continue
		}
		key := p.Seat.String()
		snap.Hands[key] = append([]models.Card(nil), p.Hand...)
		snap.Names[key] = p.Name
		snap.Tricks[key] = p.Tricks
	}
	return snap
}

// Stop cancels the between-hand timer, for session teardown.
func (g *EuchreGame) Stop() {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.handTimer != nil {
		g.handTimer.Stop()
		g.handTimer = nil
	}
}
