package participant

import (
	rand "math/rand/v2"

	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/poker"
)

// Random folds, calls or raises at random. Folding answers 0, which the
// engine reads as a check when nothing is owed.
type Random struct {
	tracker
	rng      *rand.Rand
	bigBlind int
}

func NewRandom(rng *rand.Rand, bigBlind int) *Random {
	return &Random{rng: rng, bigBlind: bigBlind}
}

func (r *Random) decide(history game.BetHistory, pot int) int {
	call := toCall(history, r.bigBlind)

	switch roll := r.rng.IntN(100); {
	case roll < 15:
		return 0
	case roll < 70:
		return call
	default:
		// Raise between a min-raise and a pot sized bet on top of the call
		minRaise := call + max(call, r.bigBlind)
		return minRaise + r.rng.IntN(max(pot, r.bigBlind)+1)
	}
}

func (r *Random) Deal(hole [2]poker.Card, history game.BetHistory, pot int) int {
	r.seeHole(hole)
	return r.decide(history, pot)
}

func (r *Random) Flop(board [3]poker.Card, history game.BetHistory, pot int) int {
	r.seeFlop(board)
	return r.decide(history, pot)
}

func (r *Random) Turn(card poker.Card, history game.BetHistory, pot int) int {
	r.seeCard(card, 4)
	return r.decide(history, pot)
}

func (r *Random) River(card poker.Card, history game.BetHistory, pot int) int {
	r.seeCard(card, 5)
	return r.decide(history, pot)
}
