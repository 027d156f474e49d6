package game

import (
	"maps"
	"slices"

	"github.com/lox/holdemsim/poker"
)

// BetHistory records the raw bets submitted on each street, in action order.
// Index 0 is the deal street, then flop, turn and river.
type BetHistory [][]int

// Clone returns a deep copy so callers can never alias engine state
func (h BetHistory) Clone() BetHistory {
	if h == nil {
		return nil
	}
	out := make(BetHistory, len(h))
	for i, street := range h {
		out[i] = slices.Clone(street)
	}
	return out
}

// Reveal is the showdown payload sent to every participant at the end of a hand.
// Hands only contains seats that were still in the hand at showdown; it is empty
// when the hand was won because everyone else folded.
type Reveal struct {
	Board []poker.Card
	Hands map[int][2]poker.Card
}

func (r Reveal) clone() Reveal {
	return Reveal{
		Board: append([]poker.Card(nil), r.Board...),
		Hands: maps.Clone(r.Hands),
	}
}

// Participant is the capability set every player implementation provides,
// whether it is driven by a console, a script, a strategy or a remote process.
//
// The street methods return the participant's absolute target commitment for
// the current street, not an increment. A value at or above the street's
// running maximum calls or raises; anything else is treated as zero, which the
// engine reads as a check when nothing is owed and a fold otherwise. All
// arguments are copies.
type Participant interface {
	// NewGame is called once per hand before any cards are dealt
	NewGame(numPlayers, seat int)
	Deal(hole [2]poker.Card, history BetHistory, pot int) int
	Flop(board [3]poker.Card, history BetHistory, pot int) int
	Turn(card poker.Card, history BetHistory, pot int) int
	River(card poker.Card, history BetHistory, pot int) int
	// EndGame is called exactly once per hand on every participant, folded or not
	EndGame(history BetHistory, winner int, reveal Reveal)
}

// Evaluator scores a showdown hand. Lower scores are stronger and scores are
// comparable across every seat of a single showdown.
type Evaluator interface {
	Evaluate(board [5]poker.Card, hole [2]poker.Card) int
}

// Recorder receives every settled hand, e.g. to persist or export it
type Recorder interface {
	RecordHand(result *HandResult) error
}
