// internal/handlers/game_ws_test.go
package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SevWren/MuellerEuchre-sub001/internal/game"
	"github.com/SevWren/MuellerEuchre-sub001/internal/models"
)

func TestDecodeActionPlayCard(t *testing.T) {
	msg := GameMessage{
		Type: "play_card",
		Card: &wireCard{Suit: "hearts", Rank: "J"},
	}
	a, err := decodeAction(msg)
	require.NoError(t, err)
	assert.Equal(t, game.ActionPlayCard, a.Type)
	require.NotNil(t, a.Card)
	assert.Equal(t, models.Card{Suit: models.Hearts, Rank: models.Jack}, *a.Card)
}

func TestDecodeActionPlayCardRequiresCard(t *testing.T) {
	_, err := decodeAction(GameMessage{Type: "play_card"})
	assert.Error(t, err)

	_, err = decodeAction(GameMessage{Type: "dealer_discard"})
	assert.Error(t, err)
}

func TestDecodeActionCallTrump(t *testing.T) {
	a, err := decodeAction(GameMessage{Type: "call_trump", Suit: "clubs"})
	require.NoError(t, err)
	require.NotNil(t, a.Suit)
	assert.Equal(t, models.Clubs, *a.Suit)

	// An empty suit is a pass, not an error.
	a, err = decodeAction(GameMessage{Type: "call_trump"})
	require.NoError(t, err)
	assert.Nil(t, a.Suit)

	_, err = decodeAction(GameMessage{Type: "call_trump", Suit: "stars"})
	assert.Error(t, err)
}

func TestDecodeActionDecisions(t *testing.T) {
	a, err := decodeAction(GameMessage{Type: "order_up", Decision: true})
	require.NoError(t, err)
	assert.Equal(t, game.ActionOrderUp, a.Type)
	assert.True(t, a.Decision)

	a, err = decodeAction(GameMessage{Type: "go_alone", Decision: false})
	require.NoError(t, err)
	assert.Equal(t, game.ActionGoAlone, a.Type)
	assert.False(t, a.Decision)
}

func TestDecodeActionUnknownType(t *testing.T) {
	_, err := decodeAction(GameMessage{Type: "shoot_the_moon"})
	assert.Error(t, err)
}

func TestDecodeActionBadCard(t *testing.T) {
	_, err := decodeAction(GameMessage{
		Type: "play_card",
		Card: &wireCard{Suit: "hearts", Rank: "7"},
	})
	assert.Error(t, err)
}

func TestExtractCookieToken(t *testing.T) {
	header := "other=1; euchre_token=abc123; trailing=x"
	assert.Equal(t, "abc123", extractCookieToken(header, "euchre_token"))
	assert.Equal(t, "", extractCookieToken("other=1", "euchre_token"))
}
