// internal/game/ranking.go
package game

import (
	"sort"

	"github.com/SevWren/MuellerEuchre-sub001/internal/models"
)

// Trick-rank bands. Values inside a band are offset by the card's face
// value; the bands never overlap, so the right bower beats the left bower
// beats any plain trump beats any led-suit card beats everything else.
const (
	rankRightBower = 600
	rankLeftBower  = 500
	rankTrumpBase  = 300
	rankLedBase    = 100
	rankDead       = 0
)

// IsRightBower reports whether c is the jack of the trump suit.
func IsRightBower(c models.Card, trump models.Suit) bool {
	return c.Rank == models.Jack && c.Suit == trump
}

// IsLeftBower reports whether c is the jack of the suit sharing trump's
// color. That card plays as trump everywhere ranking and suit-following
// are concerned, despite nominally belonging to its printed suit.
func IsLeftBower(c models.Card, trump models.Suit) bool {
	return c.Rank == models.Jack && c.Suit == trump.SameColorSuit()
}

// IsTrump reports whether c counts as trump, bowers included.
func IsTrump(c models.Card, trump models.Suit) bool {
	return c.Suit == trump || IsLeftBower(c, trump)
}

// EffectiveSuit returns the suit a card follows with: trump for the left
// bower, the printed suit for everything else.
func EffectiveSuit(c models.Card, trump models.Suit) models.Suit {
	if IsLeftBower(c, trump) {
		return trump
	}
	return c.Suit
}

// TrickRank orders cards for trick resolution: right bower, left bower,
// remaining trump by face, led-suit cards by face, then everything else
// at zero (cannot win). led is the effective suit of the first card played.
func TrickRank(c models.Card, led, trump models.Suit) int {
	switch {
	case IsRightBower(c, trump):
		return rankRightBower
	case IsLeftBower(c, trump):
		return rankLeftBower
	case c.Suit == trump:
		return rankTrumpBase + int(c.Rank)
	case c.Suit == led:
		return rankLedBase + int(c.Rank)
	default:
		return rankDead
	}
}

// displayOrder fixes the on-screen suit sequence when sorting a hand:
// trump block first, then the remaining suits in canonical order.
func displayOrder(trump *models.Suit) []models.Suit {
	if trump == nil {
		return models.AllSuits()
	}
	order := []models.Suit{*trump}
	for _, s := range models.AllSuits() {
		if s != *trump {
			order = append(order, s)
		}
	}
	return order
}

// SortHand returns a copy of hand ordered for display: trump first (right
// bower, left bower, then high-to-low), followed by the off suits each
// high-to-low. With no trump established, suits sort in canonical order.
// The input slice is never mutated; server-side hands stay authoritative.
func SortHand(hand []models.Card, trump *models.Suit) []models.Card {
	sorted := make([]models.Card, len(hand))
	copy(sorted, hand)

	order := displayOrder(trump)
	suitPos := make(map[models.Suit]int, len(order))
	for i, s := range order {
		suitPos[s] = i
	}

	key := func(c models.Card) (int, int) {
		if trump != nil {
			if IsRightBower(c, *trump) {
				return 0, 2
			}
			if IsLeftBower(c, *trump) {
				return 0, 1
			}
			if c.Suit == *trump {
				return 0, int(c.Rank) - 20 // below both bowers, high-to-low
			}
		}
		return suitPos[c.Suit], int(c.Rank)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		si, ri := key(sorted[i])
		sj, rj := key(sorted[j])
		if si != sj {
			return si < sj
		}
		return ri > rj
	})
	return sorted
}
