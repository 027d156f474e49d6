package participant

import (
	rand "math/rand/v2"

	"github.com/lox/holdemsim/internal/evaluator"
	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/poker"
)

// equitySamples keeps each decision on the sequential estimator path
const equitySamples = 300

// Equity bets by estimated win probability against the rest of the table
// holding random cards.
type Equity struct {
	tracker
	ev       evaluator.Evaluator
	rng      *rand.Rand
	bigBlind int
}

func NewEquity(ev evaluator.Evaluator, rng *rand.Rand, bigBlind int) *Equity {
	return &Equity{ev: ev, rng: rng, bigBlind: bigBlind}
}

func (e *Equity) decide(history game.BetHistory, pot int) int {
	call := toCall(history, e.bigBlind)

	opponents := max(1, e.players-1)
	equity := evaluator.EstimateEquity(e.ev, e.hole, e.board, opponents, equitySamples, e.rng)
	fair := 1 / float64(opponents+1)

	switch {
	case equity >= min(0.75, 2*fair):
		// Value raise scaled to the pot
		return call + max(pot, e.bigBlind)
	case equity >= fair:
		return call
	case call > 0 && float64(call) <= float64(pot)*equity:
		// Pot odds justify a call
		return call
	default:
		return 0
	}
}

func (e *Equity) Deal(hole [2]poker.Card, history game.BetHistory, pot int) int {
	e.seeHole(hole)
	return e.decide(history, pot)
}

func (e *Equity) Flop(board [3]poker.Card, history game.BetHistory, pot int) int {
	e.seeFlop(board)
	return e.decide(history, pot)
}

func (e *Equity) Turn(card poker.Card, history game.BetHistory, pot int) int {
	e.seeCard(card, 4)
	return e.decide(history, pot)
}

func (e *Equity) River(card poker.Card, history game.BetHistory, pot int) int {
	e.seeCard(card, 5)
	return e.decide(history, pot)
}
