// internal/models/card_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameColorSuit(t *testing.T) {
	assert.Equal(t, Diamonds, Hearts.SameColorSuit())
	assert.Equal(t, Hearts, Diamonds.SameColorSuit())
	assert.Equal(t, Spades, Clubs.SameColorSuit())
	assert.Equal(t, Clubs, Spades.SameColorSuit())
}

func TestParseSuit(t *testing.T) {
	for _, s := range AllSuits() {
		parsed, err := ParseSuit(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseSuit("stars")
	assert.Error(t, err)
}

func TestParseRank(t *testing.T) {
	for _, r := range AllRanks() {
		parsed, err := ParseRank(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	// Euchre decks have no cards below nine.
	_, err := ParseRank("7")
	assert.Error(t, err)
}

func TestCardJSON(t *testing.T) {
	card := Card{Suit: Hearts, Rank: Jack}
	data, err := json.Marshal(card)
	require.NoError(t, err)
	assert.JSONEq(t, `{"suit":"hearts","rank":"J"}`, string(data))

	var decoded Card
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, card, decoded)
}

func TestCardID(t *testing.T) {
	assert.Equal(t, "J-hearts", Card{Suit: Hearts, Rank: Jack}.ID())
	assert.Equal(t, "10-spades", Card{Suit: Spades, Rank: Ten}.ID())
}
