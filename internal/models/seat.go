// internal/models/seat.go
package models

import (
	"encoding/json"
	"fmt"
)

// Seat is one of the four fixed table positions. Turn order is the cyclic
// sequence south -> west -> north -> east -> south.
type Seat int

const (
	South Seat = iota
	West
	North
	East
)

// AllSeats returns the seats in turn order starting from south.
func AllSeats() []Seat {
	return []Seat{South, West, North, East}
}

func (s Seat) String() string {
	switch s {
	case South:
		return "south"
	case West:
		return "west"
	case North:
		return "north"
	case East:
		return "east"
	default:
		return "unknown"
	}
}

// Next returns the seat immediately clockwise, ignoring any go-alone skip.
func (s Seat) Next() Seat {
	return (s + 1) % 4
}

// Partner returns the fixed partnership mapping: south<->north, west<->east.
func (s Seat) Partner() Seat {
	return (s + 2) % 4
}

// Team returns the partnership the seat belongs to.
func (s Seat) Team() Team {
	if s == South || s == North {
		return TeamNorthSouth
	}
	return TeamEastWest
}

// ParseSeat converts a wire-format seat name into a Seat.
func ParseSeat(str string) (Seat, error) {
	switch str {
	case "south":
		return South, nil
	case "west":
		return West, nil
	case "north":
		return North, nil
	case "east":
		return East, nil
	default:
		return 0, fmt.Errorf("invalid seat %q", str)
	}
}

func (s Seat) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Seat) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSeat(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Team identifies one of the two fixed partnerships.
type Team int

const (
	TeamNorthSouth Team = iota
	TeamEastWest
)

func (t Team) String() string {
	if t == TeamNorthSouth {
		return "north_south"
	}
	return "east_west"
}

// Opponent returns the other partnership.
func (t Team) Opponent() Team {
	if t == TeamNorthSouth {
		return TeamEastWest
	}
	return TeamNorthSouth
}

func (t Team) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Team) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "north_south":
		*t = TeamNorthSouth
	case "east_west":
		*t = TeamEastWest
	default:
		return fmt.Errorf("invalid team %q", str)
	}
	return nil
}
