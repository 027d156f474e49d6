// Package poker provides the card and deck primitives shared by the engine,
// the evaluators and every participant implementation.
//
// A Card is a small comparable value {Rank, Suit}. Its canonical textual form
// is two characters, rank then suit letter ("As", "Td", "2c"); that form is
// the only string encoding used on the wire and in hand histories.
package poker

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

const suitLetters = "shdc"

// String returns the suit letter used in the canonical encoding
func (s Suit) String() string {
	if s > Clubs {
		return "?"
	}
	return suitLetters[s : s+1]
}

// Symbol returns the display glyph for the suit
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank, Two (2) through Ace (14)
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankLetters = "23456789TJQKA"

// String returns the rank character used in the canonical encoding
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	i := int(r - Two)
	return rankLetters[i : i+1]
}

// Card is an immutable playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from a rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Valid reports whether the card is one of the 52 real cards
func (c Card) Valid() bool {
	return c.Rank >= Two && c.Rank <= Ace && c.Suit <= Clubs
}

// String returns the canonical two-character encoding, e.g. "As"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Symbol returns the display form, e.g. "A♠"
func (c Card) Symbol() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// index maps a card to 0..51 (suit major)
func (c Card) index() int {
	return int(c.Suit)*13 + int(c.Rank-Two)
}

// ParseCard parses the canonical two-character encoding
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want 2 characters", s)
	}
	r := strings.IndexByte(rankLetters, upper(s[0]))
	if r < 0 {
		return Card{}, fmt.Errorf("invalid card %q: unknown rank %q", s, s[0])
	}
	su := strings.IndexByte(suitLetters, lower(s[1]))
	if su < 0 {
		return Card{}, fmt.Errorf("invalid card %q: unknown suit %q", s, s[1])
	}
	return Card{Rank: Two + Rank(r), Suit: Suit(su)}, nil
}

// ParseCards parses a whitespace separated list of cards ("As Kd 7c")
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on malformed input
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards using their canonical encoding
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
