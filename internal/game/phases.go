// internal/game/phases.go
//
// One handler per phase transition. Every handler validates the proposed
// action against the current phase and turn before mutating anything, picks
// the next phase and next current player itself, and returns an error on
// any violation without touching state.
package game

import (
	"fmt"
	"time"

	"github.com/SevWren/MuellerEuchre-sub001/internal/models"
)

// handleStartGame deals the first hand. Only valid from the lobby with all
// four seats filled. The initial dealer is drawn at random; rotation
// begins with the second hand.
func (g *EuchreGame) handleStartGame(seat models.Seat) error {
	if g.Phase != PhaseLobby {
		return ErrWrongPhase
	}
	for _, p := range g.Players {
		if p == nil {
			return ErrNotEnoughPlayers
		}
	}
	if err := g.startNewHand(); err != nil {
		return err
	}
	g.fireEvent(GameEvent{Type: EventGameStarted})
	return nil
}

// startNewHand rotates the dealer, shuffles a fresh deck, deals five cards
// to each seat one at a time starting left of the dealer, turns the next
// card up and buries the remaining three as the kitty.
func (g *EuchreGame) startNewHand() error {
	if g.dealerChosen {
		g.Dealer = g.Dealer.Next()
	} else {
		g.Dealer = models.Seat(g.rng.Intn(4))
		g.dealerChosen = true
	}

	deck := NewDeck()
	Shuffle(deck, g.rng)
	if len(deck) < 4*HandSize+1 {
		return ErrDeckExhausted
	}

	// Reset all hand-scoped fields.
	g.Trump = nil
	g.UpCard = nil
	g.ForbiddenSuit = nil
	g.Kitty = nil
	g.Maker = nil
	g.TrumpCaller = nil
	g.GoingAlone = false
	g.LoneSeat = nil
	g.SittingOut = nil
	g.DealerDiscarded = false
	g.CurrentTrick = nil
	g.CompletedTricks = nil
	for _, p := range g.Players {
		p.Hand = nil
		p.Tricks = 0
	}

	// One card around the table at a time, dealer's left first.
	seat := g.Dealer.Next()
	for round := 0; round < HandSize; round++ {
		for i := 0; i < 4; i++ {
			g.Players[seat].Hand = append(g.Players[seat].Hand, deck[0])
			deck = deck[1:]
			seat = seat.Next()
		}
	}

	up := deck[0]
	g.UpCard = &up
	g.Kitty = append([]models.Card(nil), deck[1:]...)

	g.CurrentPlayer = g.Dealer.Next()
	g.Phase = PhaseOrderUpRound1

	dealer := g.Dealer
	g.appendLog(fmt.Sprintf("new hand: %s deals, %s turned up", dealer, up))
	g.fireEvent(GameEvent{
		Type: EventHandStarted,
		Seat: &dealer,
		Card: &up,
	})
	g.logAction(nil, string(EventHandStarted), map[string]interface{}{
		"dealer": dealer.String(),
		"upCard": up.ID(),
	})
	return nil
}

// handleOrderUp resolves a round-1 bid on the up-card. Ordering up fixes
// trump to the up-card's suit and hands the up-card to the dealer, who
// must discard next. A fourth pass turns the card down and opens round 2.
func (g *EuchreGame) handleOrderUp(seat models.Seat, orderedUp bool) error {
	if g.Phase != PhaseOrderUpRound1 {
		return ErrWrongPhase
	}
	if seat != g.CurrentPlayer {
		return ErrNotYourTurn
	}

	if orderedUp {
		trump := g.UpCard.Suit
		g.setTrump(seat, trump)

		dealer := g.Players[g.Dealer]
		dealer.Hand = append(dealer.Hand, *g.UpCard)
		g.UpCard = nil

		g.DealerDiscarded = false
		g.Phase = PhaseAwaitingDealerDiscard
		g.CurrentPlayer = g.Dealer

		g.appendLog(fmt.Sprintf("%s ordered up %s", g.Players[seat].Name, trump))
		return nil
	}

	s := seat
	g.appendLog(fmt.Sprintf("%s passed", g.Players[seat].Name))
	g.fireEvent(GameEvent{Type: EventOrderUpPassed, Seat: &s})

	if seat == g.Dealer {
		// Everyone passed: turn the card down, its suit is off the table
		// for round 2, and the kitty absorbs it.
		forbidden := g.UpCard.Suit
		g.ForbiddenSuit = &forbidden
		g.Kitty = append(g.Kitty, *g.UpCard)
		g.UpCard = nil

		g.Phase = PhaseOrderUpRound2
		g.CurrentPlayer = g.Dealer.Next()

		g.appendLog(fmt.Sprintf("up-card turned down; %s may not be called", forbidden))
		g.fireEvent(GameEvent{Type: EventUpCardTurned, Suit: &forbidden})
		return nil
	}

	g.CurrentPlayer = seat.Next()
	return nil
}

// handleDealerDiscard buries one card from the dealer's six-card hand into
// the kitty after an order-up.
func (g *EuchreGame) handleDealerDiscard(seat models.Seat, card models.Card) error {
	if g.Phase != PhaseAwaitingDealerDiscard {
		return ErrWrongPhase
	}
	if seat != g.Dealer {
		return ErrNotDealer
	}
	dealer := g.Players[seat]
	if len(dealer.Hand) != HandSize+1 {
		return ErrWrongHandSize
	}
	idx := indexOfCard(dealer.Hand, card)
	if idx < 0 {
		return ErrCardNotInHand
	}

	dealer.Hand = append(dealer.Hand[:idx], dealer.Hand[idx+1:]...)
	g.Kitty = append(g.Kitty, card)
	dealer.Hand = SortHand(dealer.Hand, g.Trump)
	g.DealerDiscarded = true

	g.Phase = PhaseAwaitingGoAlone
	g.CurrentPlayer = *g.TrumpCaller

	s := seat
	g.appendLog(fmt.Sprintf("%s discarded", dealer.Name))
	// The buried card's identity stays hidden from the table.
	g.fireEvent(GameEvent{Type: EventDealerDiscard, Seat: &s})
	return nil
}

// handleCallTrump resolves a round-2 bid. Calling any suit except the one
// turned down fixes trump; a fourth pass throws the hand in and redeals
// immediately with no points awarded.
func (g *EuchreGame) handleCallTrump(seat models.Seat, suit *models.Suit) error {
	if g.Phase != PhaseOrderUpRound2 {
		return ErrWrongPhase
	}
	if seat != g.CurrentPlayer {
		return ErrNotYourTurn
	}

	if suit != nil {
		if g.ForbiddenSuit != nil && *suit == *g.ForbiddenSuit {
			return ErrForbiddenSuit
		}
		g.setTrump(seat, *suit)
		g.Phase = PhaseAwaitingGoAlone
		g.CurrentPlayer = seat
		g.appendLog(fmt.Sprintf("%s called %s", g.Players[seat].Name, *suit))
		return nil
	}

	s := seat
	g.appendLog(fmt.Sprintf("%s passed", g.Players[seat].Name))
	g.fireEvent(GameEvent{Type: EventOrderUpPassed, Seat: &s})

	if seat == g.Dealer {
		// All four passed twice: the hand is dead. Forward transition
		// only, never a rollback; nobody scores.
		g.appendLog("hand thrown in, redealing")
		g.fireEvent(GameEvent{Type: EventRedeal})
		return g.startNewHand()
	}

	g.CurrentPlayer = seat.Next()
	return nil
}

// setTrump records the trump suit, the calling seat and the maker team
// together so they can never drift apart.
func (g *EuchreGame) setTrump(seat models.Seat, trump models.Suit) {
	t := trump
	s := seat
	team := seat.Team()
	g.Trump = &t
	g.TrumpCaller = &s
	g.Maker = &team

	g.fireEvent(GameEvent{Type: EventTrumpCalled, Seat: &s, Suit: &t, Team: &team})
	g.logAction(&s, string(EventTrumpCalled), map[string]interface{}{"suit": t.String()})
}

// handleGoAlone records the maker's go-alone declaration and opens trick
// play. The first lead is the seat left of the dealer, skipping the
// sitting-out partner if that seat would otherwise lead.
func (g *EuchreGame) handleGoAlone(seat models.Seat, goAlone bool) error {
	if g.Phase != PhaseAwaitingGoAlone {
		return ErrWrongPhase
	}
	if g.TrumpCaller == nil || seat != *g.TrumpCaller {
		return ErrNotTrumpCaller
	}

	if goAlone {
		lone := seat
		partner := seat.Partner()
		g.GoingAlone = true
		g.LoneSeat = &lone
		g.SittingOut = &partner
		g.appendLog(fmt.Sprintf("%s is going alone; %s sits out", g.Players[seat].Name, partner))
	} else {
		g.GoingAlone = false
		g.LoneSeat = nil
		g.SittingOut = nil
	}

	leader, err := activeSeatOrFollowing(g.Dealer.Next(), g.SittingOut)
	if err != nil {
		return err
	}
	g.TrickLeader = leader
	g.CurrentPlayer = leader
	g.Phase = PhasePlayingTricks

	s := seat
	g.fireEvent(GameEvent{Type: EventGoAlone, Seat: &s, Payload: map[string]interface{}{"alone": goAlone}})
	return nil
}

// validatePlay enforces the follow-suit rule without mutating anything.
// The led suit is the effective suit of the first card of the trick, so a
// led left bower demands trump in response.
func (g *EuchreGame) validatePlay(seat models.Seat, card models.Card) error {
	hand := g.Players[seat].Hand
	if indexOfCard(hand, card) < 0 {
		return ErrCardNotInHand
	}
	if len(g.CurrentTrick) == 0 {
		return nil
	}
	led := EffectiveSuit(g.CurrentTrick[0].Card, *g.Trump)
	if EffectiveSuit(card, *g.Trump) == led {
		return nil
	}
	for _, c := range hand {
		if EffectiveSuit(c, *g.Trump) == led {
			return fmt.Errorf("%w: %s was led", ErrMustFollowSuit, led)
		}
	}
	return nil
}

// activePlayers is 3 during a lone hand, else 4.
func (g *EuchreGame) activePlayers() int {
	if g.GoingAlone {
		return 3
	}
	return 4
}

// handlePlayCard applies a legal card to the current trick, resolves the
// trick when the last active seat has played, and hands the lead to the
// winner (or scores the hand once the hands are empty).
func (g *EuchreGame) handlePlayCard(seat models.Seat, card models.Card) error {
	if g.Phase != PhasePlayingTricks {
		return ErrWrongPhase
	}
	if seat != g.CurrentPlayer {
		return ErrNotYourTurn
	}
	if err := g.validatePlay(seat, card); err != nil {
		return err
	}

	p := g.Players[seat]
	idx := indexOfCard(p.Hand, card)
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	g.CurrentTrick = append(g.CurrentTrick, TrickPlay{Seat: seat, Card: card})

	s := seat
	c := card
	g.appendLog(fmt.Sprintf("%s played %s", p.Name, card))
	g.fireEvent(GameEvent{Type: EventCardPlayed, Seat: &s, Card: &c})
	g.logAction(&s, string(EventCardPlayed), map[string]interface{}{"card": card.ID()})

	if len(g.CurrentTrick) < g.activePlayers() {
		next, err := NextActiveSeat(seat, g.SittingOut)
		if err != nil {
			return err
		}
		g.CurrentPlayer = next
		return nil
	}

	g.resolveTrick()
	return nil
}

// resolveTrick picks the winner of the completed trick. Strict > keeps the
// first of equally ranked plays in front, so earlier plays win ties.
func (g *EuchreGame) resolveTrick() {
	led := EffectiveSuit(g.CurrentTrick[0].Card, *g.Trump)
	best := 0
	for i := 1; i < len(g.CurrentTrick); i++ {
		if TrickRank(g.CurrentTrick[i].Card, led, *g.Trump) >
			TrickRank(g.CurrentTrick[best].Card, led, *g.Trump) {
			best = i
		}
	}
	winner := g.CurrentTrick[best].Seat
	g.Players[winner].Tricks++
	g.CompletedTricks = append(g.CompletedTricks, CompletedTrick{
		Plays:  g.CurrentTrick,
		Winner: winner,
	})
	g.CurrentTrick = nil

	w := winner
	g.appendLog(fmt.Sprintf("%s takes the trick", g.Players[winner].Name))
	g.fireEvent(GameEvent{Type: EventTrickWon, Seat: &w})

	if len(g.Players[winner].Hand) == 0 {
		g.scoreCurrentHand()
		return
	}
	g.TrickLeader = winner
	g.CurrentPlayer = winner
}

// scoreCurrentHand applies the Euchre scoring table: a lone march is 4,
// a march is 2, a made bid is 1, and a failed bid hands the defenders 2.
func (g *EuchreGame) scoreCurrentHand() {
	maker := *g.Maker
	makerTricks := 0
	for _, p := range g.Players {
		if p.Seat.Team() == maker {
			makerTricks += p.Tricks
		}
	}

	var scoringTeam models.Team
	var points int
	switch {
	case makerTricks == 5 && g.GoingAlone:
		scoringTeam, points = maker, 4
	case makerTricks == 5:
		scoringTeam, points = maker, 2
	case makerTricks >= 3:
		scoringTeam, points = maker, 1
	default:
		// Euchred: the makers failed to take a majority.
		scoringTeam, points = maker.Opponent(), 2
	}
	g.Scores[scoringTeam] += points

	team := scoringTeam
	g.appendLog(fmt.Sprintf("%s score %d (makers took %d tricks)", team, points, makerTricks))
	g.fireEvent(GameEvent{
		Type: EventHandScored,
		Team: &team,
		Payload: map[string]interface{}{
			"points":      points,
			"makerTricks": makerTricks,
			"scores": map[string]int{
				models.TeamNorthSouth.String(): g.Scores[models.TeamNorthSouth],
				models.TeamEastWest.String():   g.Scores[models.TeamEastWest],
			},
		},
	})
	g.logAction(nil, string(EventHandScored), map[string]interface{}{
		"team":   team.String(),
		"points": points,
	})

	if g.Scores[scoringTeam] >= WinningScore {
		g.Phase = PhaseGameOver
		g.Winner = &team
		g.appendLog(fmt.Sprintf("%s win the game", team))
		g.fireEvent(GameEvent{Type: EventGameOver, Team: &team})
		return
	}

	g.Phase = PhaseHandOver
	g.scheduleNextHand()
}

// scheduleNextHand deals the next hand after HandDelay, giving clients a
// moment to display the score. A zero delay deals immediately.
func (g *EuchreGame) scheduleNextHand() {
	if g.HandDelay <= 0 {
		if err := g.startNewHand(); err != nil {
			g.appendLog(fmt.Sprintf("redeal failed: %v", err))
		}
		return
	}
	g.handTimer = time.AfterFunc(g.HandDelay, func() {
		g.Mu.Lock()
		defer g.Mu.Unlock()
		// Only deal if nothing moved the game on (e.g. a session reset).
		if g.Phase != PhaseHandOver {
			return
		}
		if err := g.startNewHand(); err != nil {
			g.appendLog(fmt.Sprintf("redeal failed: %v", err))
			return
		}
		g.broadcastSeatViews()
		g.persistSnapshot()
	})
}

// handleNewSession resets scores and returns the table to the lobby so the
// same four players can start a fresh game.
func (g *EuchreGame) handleNewSession(seat models.Seat) error {
	if g.Phase != PhaseLobby && g.Phase != PhaseGameOver {
		return ErrWrongPhase
	}
	if g.handTimer != nil {
		g.handTimer.Stop()
		g.handTimer = nil
	}
	g.Phase = PhaseLobby
	g.Scores = [2]int{}
	g.Winner = nil
	g.dealerChosen = false
	g.Trump = nil
	g.UpCard = nil
	g.ForbiddenSuit = nil
	g.Kitty = nil
	g.Maker = nil
	g.TrumpCaller = nil
	g.GoingAlone = false
	g.LoneSeat = nil
	g.SittingOut = nil
	g.DealerDiscarded = false
	g.CurrentTrick = nil
	g.CompletedTricks = nil
	for _, p := range g.Players {
		if p != nil {
			p.Hand = nil
			p.Tricks = 0
		}
	}
	g.appendLog("session reset")
	g.fireEvent(GameEvent{Type: EventSessionReset})
	return nil
}

// indexOfCard returns the position of card in hand, or -1.
func indexOfCard(hand []models.Card, card models.Card) int {
	for i, c := range hand {
		if c == card {
			return i
		}
	}
	return -1
}
