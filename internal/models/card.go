// internal/models/card.go
package models

import (
	"encoding/json"
	"fmt"
)

// Suit is one of the four French suits of the 24-card Euchre deck.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// AllSuits returns the suits in canonical deck-building order.
func AllSuits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return "unknown"
	}
}

// SameColorSuit returns the other suit of the same color:
// hearts<->diamonds (red), clubs<->spades (black). The jack of this suit
// is the left bower when s is trump.
func (s Suit) SameColorSuit() Suit {
	switch s {
	case Hearts:
		return Diamonds
	case Diamonds:
		return Hearts
	case Clubs:
		return Spades
	default:
		return Clubs
	}
}

// ParseSuit converts a wire-format suit name into a Suit.
func ParseSuit(str string) (Suit, error) {
	switch str {
	case "hearts":
		return Hearts, nil
	case "diamonds":
		return Diamonds, nil
	case "clubs":
		return Clubs, nil
	case "spades":
		return Spades, nil
	default:
		return 0, fmt.Errorf("invalid suit %q", str)
	}
}

// MarshalJSON emits the suit as its lowercase name so clients never see
// internal enum ordinals.
func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Suit) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSuit(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Rank is a card face value. Euchre uses nine through ace only.
type Rank int

const (
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// AllRanks returns the ranks in ascending face order.
func AllRanks() []Rank {
	return []Rank{Nine, Ten, Jack, Queen, King, Ace}
}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// ParseRank converts a wire-format rank string into a Rank.
func ParseRank(str string) (Rank, error) {
	switch str {
	case "9":
		return Nine, nil
	case "10":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	default:
		return 0, fmt.Errorf("invalid rank %q", str)
	}
}

func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rank) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseRank(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Card is an immutable suit/rank pair. Two cards are equal iff both fields
// match, so Card values can be compared with == and used as map keys.
// A card carries no intrinsic strength; trick strength is contextual and
// lives in the game package.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// ID returns the stable identifier of the card within the 24-card deck,
// e.g. "J-hearts".
func (c Card) ID() string {
	return fmt.Sprintf("%s-%s", c.Rank, c.Suit)
}

func (c Card) String() string {
	return c.ID()
}
