package evaluator

import (
	"context"
	rand "math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemsim/poker"
)

// equityWorkers is fixed so a seeded estimate does not depend on the host
const equityWorkers = 4

// parallelThreshold is the sample count below which workers are not worth it
const parallelThreshold = 500

// CardSet is a bitset of cards, bit index = suit*13 + rank-2
type CardSet uint64

func cardBit(c poker.Card) CardSet {
	return 1 << (uint(c.Suit)*13 + uint(c.Rank-poker.Two))
}

// Add adds a card to the set
func (cs *CardSet) Add(c poker.Card) {
	*cs |= cardBit(c)
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(c poker.Card) bool {
	return cs&cardBit(c) != 0
}

type workerResult struct {
	wins    int
	ties    int
	samples int
}

// EstimateEquity returns the share of pots hole would win against opponents
// holding random cards, completing the board by Monte Carlo sampling. Ties
// count as half a win. board may hold 0 to 5 cards.
func EstimateEquity(ev Evaluator, hole [2]poker.Card, board []poker.Card, opponents, samples int, rng *rand.Rand) float64 {
	if len(board) > 5 || opponents < 1 || samples < 1 {
		return 0
	}

	var used CardSet
	for _, c := range hole {
		used.Add(c)
	}
	for _, c := range board {
		used.Add(c)
	}
	available := make([]poker.Card, 0, poker.DeckSize)
	for suit := poker.Spades; suit <= poker.Clubs; suit++ {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			c := poker.NewCard(rank, suit)
			if !used.Contains(c) {
				available = append(available, c)
			}
		}
	}
	if len(available) < 2*opponents+5-len(board) {
		return 0
	}

	var r workerResult
	if samples < parallelThreshold {
		r = runEquityWorker(ev, hole, board, available, opponents, samples, rng)
	} else {
		r = estimateParallel(ev, hole, board, available, opponents, samples, rng)
	}
	if r.samples == 0 {
		return 0
	}
	return (float64(r.wins) + float64(r.ties)/2) / float64(r.samples)
}

func estimateParallel(ev Evaluator, hole [2]poker.Card, board, available []poker.Card, opponents, samples int, rng *rand.Rand) workerResult {
	g, ctx := errgroup.WithContext(context.Background())
	results := make([]workerResult, equityWorkers)

	per, remainder := samples/equityWorkers, samples%equityWorkers
	for w := range equityWorkers {
		n := per
		if w < remainder {
			n++
		}
		// Independent source per worker so results are reproducible
		seed1, seed2 := rng.Uint64(), rng.Uint64()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			workerRNG := rand.New(rand.NewPCG(seed1, seed2))
			results[w] = runEquityWorker(ev, hole, board, available, opponents, n, workerRNG)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return runEquityWorker(ev, hole, board, available, opponents, samples, rng)
	}

	var total workerResult
	for _, r := range results {
		total.wins += r.wins
		total.ties += r.ties
		total.samples += r.samples
	}
	return total
}

func runEquityWorker(ev Evaluator, hole [2]poker.Card, board, available []poker.Card, opponents, samples int, rng *rand.Rand) workerResult {
	var res workerResult
	candidates := make([]poker.Card, len(available))
	need := 5 - len(board)

	for range samples {
		copy(candidates, available)
		// Partial Fisher-Yates: opponent holes first, then the board runout
		draw := 2*opponents + need
		for i := 0; i < draw; i++ {
			j := i + rng.IntN(len(candidates)-i)
			candidates[i], candidates[j] = candidates[j], candidates[i]
		}

		var final [5]poker.Card
		copy(final[:], board)
		copy(final[len(board):], candidates[2*opponents:draw])

		hero := ev.Evaluate(final, hole)
		best, tied := true, false
		for o := range opponents {
			opp := ev.Evaluate(final, [2]poker.Card{candidates[2*o], candidates[2*o+1]})
			if opp < hero {
				best = false
				break
			}
			if opp == hero {
				tied = true
			}
		}

		switch {
		case best && tied:
			res.ties++
		case best:
			res.wins++
		}
		res.samples++
	}
	return res
}

// HandStrength maps equity against one random opponent onto a 0..100 scale
func HandStrength(ev Evaluator, hole [2]poker.Card, board []poker.Card, rng *rand.Rand) int {
	return int(EstimateEquity(ev, hole, board, 1, 1000, rng) * 100)
}
