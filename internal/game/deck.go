// internal/game/deck.go
package game

import (
	"math/rand"

	"github.com/SevWren/MuellerEuchre-sub001/internal/models"
)

// DeckSize is the number of cards in a Euchre deck: 9-A in four suits.
const DeckSize = 24

// NewDeck returns the full 24-card deck in canonical suit-major order.
func NewDeck() []models.Card {
	deck := make([]models.Card, 0, DeckSize)
	for _, suit := range models.AllSuits() {
		for _, rank := range models.AllRanks() {
			deck = append(deck, models.Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// Shuffle permutes deck in place with a Fisher-Yates walk from the top
// index down, swapping each position with a uniform index at or below it.
func Shuffle(deck []models.Card, rng *rand.Rand) {
	for i := len(deck) - 1; i >= 1; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}
