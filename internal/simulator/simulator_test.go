package simulator

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/internal/participant"
)

func seats(specs ...participant.Spec) []participant.Spec { return specs }

func run(t *testing.T, config Config) *Stats {
	t.Helper()
	sim, err := New(config)
	require.NoError(t, err)
	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	return stats
}

func TestCallersAlwaysShowDown(t *testing.T) {
	t.Parallel()

	stats := run(t, Config{
		Hands:   50,
		Workers: 4,
		Seed:    1,
		BuyIn:   1000,
		Seats: seats(
			participant.Spec{Kind: participant.KindCall, Name: "a"},
			participant.Spec{Kind: participant.KindCall, Name: "b"},
		),
	})

	assert.Equal(t, 50, stats.Hands)
	assert.Equal(t, 50, stats.Showdowns)
	assert.Zero(t, stats.FoldWins)
	assert.Equal(t, 50, stats.Seats[0].Wins+stats.Seats[1].Wins)
	assert.Zero(t, stats.Seats[0].Net+stats.Seats[1].Net)
	for _, seat := range stats.Seats {
		assert.Equal(t, 50, seat.BB.Hands)
	}
}

func TestFolderLosesTheSmallBlind(t *testing.T) {
	t.Parallel()

	stats := run(t, Config{
		Hands:      20,
		Workers:    3,
		BuyIn:      1000,
		SmallBlind: 5,
		BigBlind:   10,
		Seats: seats(
			participant.Spec{Kind: participant.KindScripted, Name: "folder", Bets: participant.Bets{Deal: []int{0}}},
			participant.Spec{Kind: participant.KindRandom, Name: "random"},
		),
	})

	assert.Equal(t, 20, stats.FoldWins)
	assert.Equal(t, -100, stats.Seats[0].Net)
	assert.Equal(t, 100, stats.Seats[1].Net)
	assert.Equal(t, 20, stats.Seats[1].Wins)
	assert.InDelta(t, -0.5, stats.Seats[0].BB.Mean(), 1e-9)
}

func TestResultsDoNotDependOnWorkers(t *testing.T) {
	t.Parallel()

	config := Config{
		Hands: 60,
		Seed:  99,
		BuyIn: 2000,
		Seats: seats(
			participant.Spec{Kind: participant.KindRandom, Name: "r1"},
			participant.Spec{Kind: participant.KindRandom, Name: "r2"},
			participant.Spec{Kind: participant.KindCall, Name: "c"},
			participant.Spec{Kind: participant.KindEquity, Name: "e"},
		),
	}

	config.Workers = 1
	serial := run(t, config)
	config.Workers = 8
	parallel := run(t, config)

	assert.Equal(t, serial, parallel)
	require.NoError(t, parallel.Validate())
}

type countingRecorder struct{ n atomic.Int64 }

func (c *countingRecorder) RecordHand(*game.HandResult) error {
	c.n.Add(1)
	return nil
}

func TestRecordersSeeEveryHand(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	run(t, Config{
		Hands:     25,
		Workers:   5,
		BuyIn:     1000,
		Recorders: []game.Recorder{rec},
		Seats: seats(
			participant.Spec{Kind: participant.KindRandom, Name: "a"},
			participant.Spec{Kind: participant.KindRandom, Name: "b"},
		),
	})
	assert.Equal(t, int64(25), rec.n.Load())
}

func TestNewRejectsBadConfig(t *testing.T) {
	t.Parallel()

	two := seats(
		participant.Spec{Kind: participant.KindCall, Name: "a"},
		participant.Spec{Kind: participant.KindCall, Name: "b"},
	)

	_, err := New(Config{Hands: 0, BuyIn: 100, Seats: two})
	assert.ErrorContains(t, err, "hands must be positive")

	_, err = New(Config{Hands: 1, BuyIn: 100, Seats: two[:1]})
	assert.ErrorContains(t, err, "need between 2")

	_, err = New(Config{Hands: 1, Seats: two})
	assert.ErrorContains(t, err, "invalid buy-in")

	_, err = New(Config{Hands: 1, BuyIn: 100, Seats: two, Evaluator: "magic"})
	assert.Error(t, err)

	_, err = New(Config{Hands: 1, BuyIn: 100, Seats: seats(two[0], participant.Spec{Kind: participant.KindConsole, Name: "me"})})
	assert.ErrorIs(t, err, ErrConsoleSeat)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	t.Parallel()

	sim, err := New(Config{
		Hands: 10,
		BuyIn: 1000,
		Seats: seats(
			participant.Spec{Kind: participant.KindCall, Name: "a"},
			participant.Spec{Kind: participant.KindCall, Name: "b"},
		),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateCatchesLeaks(t *testing.T) {
	t.Parallel()

	s := &Stats{BigBlind: 100, Seats: make([]SeatStats, 2)}
	s.add(outcome{winner: 0, pot: 200, net: []int{100, -100}})
	require.NoError(t, s.Validate())

	s.Seats[1].Net += 5
	assert.ErrorContains(t, s.Validate(), "chips not conserved")
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	stats := run(t, Config{
		Hands: 5,
		BuyIn: 1000,
		Seats: seats(
			participant.Spec{Kind: participant.KindCall, Name: "alice"},
			participant.Spec{Kind: participant.KindRandom, Name: "bob"},
		),
	})

	var buf bytes.Buffer
	PrintSummary(&buf, stats)
	assert.Contains(t, buf.String(), "Hands played: 5")
	assert.Contains(t, buf.String(), "alice")
	assert.Contains(t, buf.String(), "bob")
}
