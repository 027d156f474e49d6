package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/holdemsim/internal/randutil"
	"github.com/lox/holdemsim/poker"
)

func holeOf(s string) [2]poker.Card {
	return [2]poker.Card(poker.MustParseCards(s))
}

func TestEstimateEquity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		hole      string
		board     string
		opponents int
		min, max  float64
	}{
		{"aces preflop", "As Ad", "", 1, 0.78, 0.92},
		{"seven deuce preflop", "7h 2c", "", 1, 0.25, 0.42},
		{"aces three way", "As Ad", "", 2, 0.64, 0.80},
		{"flush draw", "As Ks", "Qs Js 2h", 1, 0.60, 0.85},
		{"ace high on dry board", "2h 3c", "As Kd Qh", 1, 0.05, 0.30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			eq := EstimateEquity(NewTreys(), holeOf(tt.hole), poker.MustParseCards(tt.board), tt.opponents, 4000, randutil.New(1))
			assert.GreaterOrEqual(t, eq, tt.min)
			assert.LessOrEqual(t, eq, tt.max)
		})
	}
}

func TestEstimateEquityLockedBoard(t *testing.T) {
	t.Parallel()

	board := poker.MustParseCards("Qs Js Ts 2c 3d")
	assert.Equal(t, 1.0, EstimateEquity(NewTreys(), holeOf("As Ks"), board, 3, 200, randutil.New(3)))
	assert.Equal(t, 1.0, EstimateEquity(NewHankin(), holeOf("As Ks"), board, 3, 800, randutil.New(3)))
}

func TestEstimateEquityDeterministic(t *testing.T) {
	t.Parallel()

	for _, samples := range []int{100, 2000} {
		a := EstimateEquity(NewTreys(), holeOf("Jh Tc"), nil, 2, samples, randutil.New(9))
		b := EstimateEquity(NewTreys(), holeOf("Jh Tc"), nil, 2, samples, randutil.New(9))
		assert.Equal(t, a, b, "samples %d", samples)
	}
}

func TestEstimateEquityInvalidInput(t *testing.T) {
	t.Parallel()

	rng := randutil.New(1)
	assert.Zero(t, EstimateEquity(NewTreys(), holeOf("As Ad"), nil, 0, 100, rng))
	assert.Zero(t, EstimateEquity(NewTreys(), holeOf("As Ad"), nil, 1, 0, rng))
	assert.Zero(t, EstimateEquity(NewTreys(), holeOf("As Ad"), poker.MustParseCards("2c 3c 4c 5c 6c 7c"), 1, 10, rng))
	assert.Zero(t, EstimateEquity(NewTreys(), holeOf("As Ad"), nil, 30, 10, rng), "not enough cards for everyone")
}

func TestCardSet(t *testing.T) {
	t.Parallel()

	var cs CardSet
	ace := poker.NewCard(poker.Ace, poker.Clubs)
	cs.Add(ace)
	assert.True(t, cs.Contains(ace))
	assert.False(t, cs.Contains(poker.NewCard(poker.Ace, poker.Spades)))
}
