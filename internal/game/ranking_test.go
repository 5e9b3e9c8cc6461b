// internal/game/ranking_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SevWren/MuellerEuchre-sub001/internal/models"
)

func card(suit models.Suit, rank models.Rank) models.Card {
	return models.Card{Suit: suit, Rank: rank}
}

func TestBowers(t *testing.T) {
	trump := models.Hearts

	right := card(models.Hearts, models.Jack)
	left := card(models.Diamonds, models.Jack)
	black := card(models.Spades, models.Jack)

	assert.True(t, IsRightBower(right, trump))
	assert.False(t, IsRightBower(left, trump))

	assert.True(t, IsLeftBower(left, trump))
	assert.False(t, IsLeftBower(right, trump))
	assert.False(t, IsLeftBower(black, trump))

	// The left bower counts as trump, not as its printed suit.
	assert.True(t, IsTrump(left, trump))
	assert.Equal(t, trump, EffectiveSuit(left, trump))
	assert.Equal(t, models.Spades, EffectiveSuit(black, trump))
}

func TestTrickRankOrdering(t *testing.T) {
	trump := models.Spades
	led := models.Hearts

	right := card(models.Spades, models.Jack)
	left := card(models.Clubs, models.Jack)
	trumpAce := card(models.Spades, models.Ace)
	ledAce := card(models.Hearts, models.Ace)
	ledNine := card(models.Hearts, models.Nine)
	offAce := card(models.Diamonds, models.Ace)

	// Right bower > left bower > plain trump > led suit > off suit.
	assert.Greater(t, TrickRank(right, led, trump), TrickRank(left, led, trump))
	assert.Greater(t, TrickRank(left, led, trump), TrickRank(trumpAce, led, trump))
	assert.Greater(t, TrickRank(trumpAce, led, trump), TrickRank(ledAce, led, trump))
	assert.Greater(t, TrickRank(ledAce, led, trump), TrickRank(ledNine, led, trump))

	// An off-suit card can never win, whatever its face value.
	assert.Equal(t, rankDead, TrickRank(offAce, led, trump))
	assert.Greater(t, TrickRank(ledNine, led, trump), TrickRank(offAce, led, trump))
}

func TestTrickRankTrumpLed(t *testing.T) {
	trump := models.Clubs

	// When trump itself is led, the left bower still outranks every plain
	// trump card.
	left := card(models.Spades, models.Jack)
	trumpKing := card(models.Clubs, models.King)
	assert.Greater(t, TrickRank(left, trump, trump), TrickRank(trumpKing, trump, trump))
}

func TestSortHandWithTrump(t *testing.T) {
	trump := models.Hearts
	hand := []models.Card{
		card(models.Spades, models.Ten),
		card(models.Diamonds, models.Jack), // left bower
		card(models.Hearts, models.Ace),
		card(models.Hearts, models.Jack), // right bower
		card(models.Spades, models.Ace),
	}

	sorted := SortHand(hand, &trump)
	require.Len(t, sorted, len(hand))

	assert.Equal(t, card(models.Hearts, models.Jack), sorted[0])
	assert.Equal(t, card(models.Diamonds, models.Jack), sorted[1])
	assert.Equal(t, card(models.Hearts, models.Ace), sorted[2])
	assert.Equal(t, card(models.Spades, models.Ace), sorted[3])
	assert.Equal(t, card(models.Spades, models.Ten), sorted[4])

	// The input order is untouched.
	assert.Equal(t, card(models.Spades, models.Ten), hand[0])
}

func TestSortHandNoTrump(t *testing.T) {
	hand := []models.Card{
		card(models.Clubs, models.Nine),
		card(models.Hearts, models.Queen),
		card(models.Clubs, models.Ace),
	}

	sorted := SortHand(hand, nil)
	assert.Equal(t, card(models.Hearts, models.Queen), sorted[0])
	assert.Equal(t, card(models.Clubs, models.Ace), sorted[1])
	assert.Equal(t, card(models.Clubs, models.Nine), sorted[2])
}
