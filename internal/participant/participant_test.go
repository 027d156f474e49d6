package participant

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemsim/internal/evaluator"
	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/internal/randutil"
	"github.com/lox/holdemsim/poker"
)

func cards(s string) []poker.Card {
	return poker.MustParseCards(s)
}

func TestParseScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Bets
		wantErr bool
	}{
		{in: "100/0/0/0", want: Bets{Deal: []int{100}, Flop: []int{0}, Turn: []int{0}, River: []int{0}}},
		{in: "100,300/200", want: Bets{Deal: []int{100, 300}, Flop: []int{200}}},
		{in: "/ /50", want: Bets{Turn: []int{50}}},
		{in: "-1", want: Bets{Deal: []int{-1}}},
		{in: "1/2/3/4/5", wantErr: true},
		{in: "call", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseScript(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScriptedReplaysPerStreet(t *testing.T) {
	t.Parallel()

	s := NewScripted(Bets{Deal: []int{100, 400}, River: []int{250}})
	s.NewGame(3, 1)

	hole := [2]poker.Card(cards("As Kd"))
	assert.Equal(t, 100, s.Deal(hole, game.BetHistory{{}}, 150))
	assert.Equal(t, 400, s.Deal(hole, game.BetHistory{{100, 300}}, 550))
	assert.Equal(t, 0, s.Deal(hole, game.BetHistory{{100, 300, 500}}, 900), "queue exhausted")
	assert.Equal(t, 0, s.Flop([3]poker.Card(cards("2c 3c 4c")), nil, 0))
	assert.Equal(t, 250, s.River(poker.MustParseCards("5c")[0], nil, 0))

	// Queues restart each hand
	s.NewGame(3, 1)
	assert.Equal(t, 100, s.Deal(hole, nil, 150))
}

func TestTrackerRecordsBoardOnce(t *testing.T) {
	t.Parallel()

	c := NewCaller(100)
	c.NewGame(2, 0)
	flop := [3]poker.Card(cards("2c 3c 4c"))
	c.Flop(flop, nil, 0)
	c.Flop(flop, nil, 0)
	turn := cards("5d")[0]
	c.Turn(turn, nil, 0)
	c.Turn(turn, nil, 0)
	c.River(cards("9h")[0], nil, 0)

	assert.Equal(t, cards("2c 3c 4c 5d 9h"), c.board)

	c.NewGame(2, 1)
	assert.Empty(t, c.board)
	assert.Equal(t, 1, c.seat)
}

func TestCallerMatches(t *testing.T) {
	t.Parallel()

	c := NewCaller(100)
	c.NewGame(3, 0)
	hole := [2]poker.Card(cards("7h 2c"))

	assert.Equal(t, 100, c.Deal(hole, game.BetHistory{{}}, 150), "calls the big blind")
	assert.Equal(t, 300, c.Deal(hole, game.BetHistory{{100, 300, 0}}, 550))
	assert.Equal(t, 0, c.Flop([3]poker.Card(cards("2c 3c 4c")), game.BetHistory{{100, 100, 100}, {}}, 300), "checks when unopened")
	assert.Equal(t, 250, c.Turn(cards("5d")[0], game.BetHistory{{100}, {0}, {250, -4}}, 800))
}

func TestRandomIsSeededAndSane(t *testing.T) {
	t.Parallel()

	play := func() []int {
		r := NewRandom(randutil.New(5), 100)
		r.NewGame(4, 2)
		var out []int
		for range 200 {
			out = append(out, r.Deal([2]poker.Card(cards("As Kd")), game.BetHistory{{100, 300}}, 550))
		}
		return out
	}

	a, b := play(), play()
	assert.Equal(t, a, b)

	seen := map[string]bool{}
	for _, bet := range a {
		switch {
		case bet == 0:
			seen["fold"] = true
		case bet == 300:
			seen["call"] = true
		case bet >= 600:
			seen["raise"] = true
		default:
			t.Fatalf("unexpected bet %d", bet)
		}
	}
	assert.Len(t, seen, 3)
}

func TestEquityPlaysStrengthAndWeakness(t *testing.T) {
	t.Parallel()

	e := NewEquity(evaluator.NewTreys(), randutil.New(3), 100)
	e.NewGame(2, 0)

	strong := e.Deal([2]poker.Card(cards("As Ad")), game.BetHistory{{}}, 150)
	assert.Greater(t, strong, 100, "raises aces")

	e.NewGame(2, 0)
	e.Deal([2]poker.Card(cards("7h 2c")), game.BetHistory{{}}, 150)
	board := [3]poker.Card(cards("As Kd Qs"))
	weak := e.Flop(board, game.BetHistory{{100, 100}, {0, 900}}, 1100)
	assert.Equal(t, 0, weak, "folds air to a big bet")
}

func TestConsoleReadsBets(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	c := NewConsole("alice", strings.NewReader("250\nbanana\n"), &out)
	c.NewGame(3, 1)

	hole := [2]poker.Card(cards("Ah Kd"))
	assert.Equal(t, 250, c.Deal(hole, game.BetHistory{{100}}, 250))
	assert.Equal(t, -1, c.Flop([3]poker.Card(cards("2c 3c 4c")), game.BetHistory{{100, 250, 250}, {}}, 750))
	assert.Equal(t, -1, c.Turn(cards("5d")[0], nil, 750), "end of input")

	text := out.String()
	assert.Contains(t, text, "seat 1 of 3")
	assert.Contains(t, text, "A♥")
	assert.Contains(t, text, "deal[100]")
	assert.Contains(t, text, "Not a number")
	assert.Contains(t, text, "Premium")

	out.Reset()
	c.EndGame(game.BetHistory{{100}}, 1, game.Reveal{
		Board: cards("2c 3c 4c 5d 9h"),
		Hands: map[int][2]poker.Card{1: hole, 2: [2]poker.Card(cards("Qs Qd"))},
	})
	assert.Contains(t, out.String(), "You win")
	assert.Contains(t, out.String(), "Seat 2 shows")
	assert.Contains(t, out.String(), "Q♦")
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	deps := Deps{RNG: randutil.New(1), BigBlind: 20}

	for _, kind := range []string{KindScripted, KindCall, KindRandom, KindEquity} {
		p, err := New(ctx, Spec{Kind: kind, Name: kind}, deps)
		require.NoError(t, err, kind)
		assert.NotNil(t, p)
	}

	p, err := New(ctx, Spec{Kind: KindConsole, Name: "me"}, deps)
	require.NoError(t, err)
	assert.IsType(t, &Console{}, p)

	deps.Timeout = time.Second
	p, err = New(ctx, Spec{Kind: KindCall, Name: "slow"}, deps)
	require.NoError(t, err)
	assert.IsType(t, &Deadline{}, p)

	_, err = New(ctx, Spec{Kind: KindRemote, Name: "far"}, deps)
	assert.ErrorContains(t, err, "needs a url")

	_, err = New(ctx, Spec{Kind: "psychic", Name: "x"}, deps)
	assert.ErrorContains(t, err, "unknown participant kind")

	assert.True(t, Known(KindEquity))
	assert.False(t, Known("psychic"))
}

func TestParticipantsPlayFullHands(t *testing.T) {
	t.Parallel()

	rng := randutil.New(11)
	ps := []game.Participant{
		NewCaller(100),
		NewRandom(rng, 100),
		NewScripted(Bets{Deal: []int{100}, Flop: []int{0}, Turn: []int{0}, River: []int{0}}),
		NewEquity(evaluator.NewTreys(), rng, 100),
	}
	eng, err := game.NewEngine(ps, 2000, game.WithRNG(randutil.New(11)))
	require.NoError(t, err)

	for range 10 {
		if err := eng.NewGame(); err != nil {
			require.ErrorIs(t, err, game.ErrNotEnoughPlayers)
			break
		}
		_, err := eng.RunGame()
		require.NoError(t, err)
	}

	total := 0
	for _, s := range eng.Stacks() {
		total += s
	}
	assert.Equal(t, 8000, total)
}
