// Package evaluator adapts third-party 7-card hand evaluators to a single
// contract: lower scores are stronger and scores from one evaluator are
// comparable across seats. Cards are converted only at this boundary.
package evaluator

import (
	"fmt"
	"slices"

	treys "github.com/chehsunliu/poker"
	hankin "github.com/paulhankin/poker"

	"github.com/lox/holdemsim/poker"
)

const (
	NameTreys  = "treys"
	NameHankin = "hankin"
)

// Evaluator scores a board plus hole cards, lower is stronger
type Evaluator interface {
	Evaluate(board [5]poker.Card, hole [2]poker.Card) int
	// Describe names the made hand, e.g. "Full House"
	Describe(board [5]poker.Card, hole [2]poker.Card) string
}

// Names lists the evaluators ByName understands
func Names() []string {
	return []string{NameTreys, NameHankin}
}

// ByName returns the evaluator registered under name
func ByName(name string) (Evaluator, error) {
	switch name {
	case NameTreys, "":
		return NewTreys(), nil
	case NameHankin:
		return NewHankin(), nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q (want one of %v)", name, Names())
	}
}

// Known reports whether ByName accepts name
func Known(name string) bool {
	return name == "" || slices.Contains(Names(), name)
}

// Treys evaluates with github.com/chehsunliu/poker, a port of the Cactus Kev
// style evaluator whose ranks run from 1 (royal flush) to 7462 (worst high card).
type Treys struct{}

func NewTreys() *Treys {
	return &Treys{}
}

func (t *Treys) Evaluate(board [5]poker.Card, hole [2]poker.Card) int {
	return int(treys.Evaluate(toTreys(board, hole)))
}

func (t *Treys) Describe(board [5]poker.Card, hole [2]poker.Card) string {
	return treys.RankString(treys.Evaluate(toTreys(board, hole)))
}

func toTreys(board [5]poker.Card, hole [2]poker.Card) []treys.Card {
	cards := make([]treys.Card, 0, 7)
	for _, c := range hole {
		cards = append(cards, treys.NewCard(c.String()))
	}
	for _, c := range board {
		cards = append(cards, treys.NewCard(c.String()))
	}
	return cards
}

// Hankin evaluates with github.com/paulhankin/poker. Its native scores grow
// with hand strength, so they are negated.
type Hankin struct{}

func NewHankin() *Hankin {
	return &Hankin{}
}

func (h *Hankin) Evaluate(board [5]poker.Card, hole [2]poker.Card) int {
	cards := toHankin(board, hole)
	return -int(hankin.Eval7(&cards))
}

func (h *Hankin) Describe(board [5]poker.Card, hole [2]poker.Card) string {
	cards := toHankin(board, hole)
	desc, err := hankin.Describe(cards[:])
	if err != nil {
		return "unknown"
	}
	return desc
}

var hankinSuits = [...]hankin.Suit{
	poker.Spades:   hankin.Spade,
	poker.Hearts:   hankin.Heart,
	poker.Diamonds: hankin.Diamond,
	poker.Clubs:    hankin.Club,
}

func toHankin(board [5]poker.Card, hole [2]poker.Card) [7]hankin.Card {
	var out [7]hankin.Card
	for i, c := range append(board[:], hole[:]...) {
		out[i] = hankinCard(c)
	}
	return out
}

func hankinCard(c poker.Card) hankin.Card {
	rank := hankin.Rank(c.Rank)
	if c.Rank == poker.Ace {
		rank = 1
	}
	card, err := hankin.MakeCard(hankinSuits[c.Suit], rank)
	if err != nil {
		panic(fmt.Sprintf("evaluator: cannot convert %v: %v", c, err))
	}
	return card
}
