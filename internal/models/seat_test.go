// internal/models/seat_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatNextCycles(t *testing.T) {
	assert.Equal(t, West, South.Next())
	assert.Equal(t, North, West.Next())
	assert.Equal(t, East, North.Next())
	assert.Equal(t, South, East.Next())
}

func TestSeatPartner(t *testing.T) {
	for _, s := range AllSeats() {
		partner := s.Partner()
		assert.NotEqual(t, s, partner)
		assert.Equal(t, s, partner.Partner())
		assert.Equal(t, s.Team(), partner.Team())
	}
}

func TestSeatTeams(t *testing.T) {
	assert.Equal(t, TeamNorthSouth, South.Team())
	assert.Equal(t, TeamNorthSouth, North.Team())
	assert.Equal(t, TeamEastWest, West.Team())
	assert.Equal(t, TeamEastWest, East.Team())

	assert.Equal(t, TeamEastWest, TeamNorthSouth.Opponent())
	assert.Equal(t, TeamNorthSouth, TeamEastWest.Opponent())
}
