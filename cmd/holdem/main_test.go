package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemsim/internal/config"
	"github.com/lox/holdemsim/internal/evaluator"
	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/internal/randutil"
	"github.com/lox/holdemsim/poker"
)

func TestParseAgent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id      string
		want    config.SeatConfig
		wantErr bool
	}{
		{id: "call", want: config.SeatConfig{Name: "call-0", Kind: "call"}},
		{id: "bob=random", want: config.SeatConfig{Name: "bob", Kind: "random"}},
		{id: "equity", want: config.SeatConfig{Name: "equity-0", Kind: "equity"}},
		{id: "ws://127.0.0.1:9000/", want: config.SeatConfig{Name: "remote-0", Kind: "remote", URL: "ws://127.0.0.1:9000/"}},
		{id: "far=http://bots.local/x?y=1", want: config.SeatConfig{Name: "far", Kind: "remote", URL: "http://bots.local/x?y=1"}},
		{id: "scripted:100/0", want: config.SeatConfig{Name: "scripted-0", Kind: "scripted", Bets: &config.BetsConfig{Deal: []int{100}, Flop: []int{0}}}},
		{id: "scripted:a/b", wantErr: true},
		{id: "remote", wantErr: true},
		{id: "psychic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			got, err := parseAgent(tt.id, 0)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeatsFromArgs(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, seatsFromArgs(cfg, nil))
	assert.Equal(t, config.Default().Seats, cfg.Seats, "no agents keeps the configured seats")

	require.NoError(t, seatsFromArgs(cfg, []string{"call", "random", "console"}))
	assert.Equal(t, []string{"call-0", "random-1", "console-2"}, cfg.Names())
	assert.NoError(t, cfg.Validate())

	assert.Error(t, seatsFromArgs(cfg, []string{"call", "nope"}))
}

func TestParseHands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   []string
		want    int
		wantErr bool
	}{
		{"single hand", []string{"AcKh"}, 1, false},
		{"multiple hands", []string{"AcKh", "KdQs"}, 2, false},
		{"hand with spaces", []string{"Ac Kh"}, 1, false},
		{"too many cards", []string{"AcKhQd"}, 0, true},
		{"too few cards", []string{"Ac"}, 0, true},
		{"invalid card", []string{"AcXy"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hands, err := parseHands(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, hands, tt.want)
		})
	}
}

func TestValidateNoDuplicates(t *testing.T) {
	t.Parallel()

	hands, err := parseHands([]string{"AcKh", "QdQs"})
	require.NoError(t, err)
	board, err := parseCompact("Td7s8h")
	require.NoError(t, err)
	assert.NoError(t, validateNoDuplicates(hands, board))

	dupBoard, err := parseCompact("Ac 7s 8h")
	require.NoError(t, err)
	assert.ErrorContains(t, validateNoDuplicates(hands, dupBoard), "duplicate card found in hand 1")
}

func TestCalculateMatchup(t *testing.T) {
	t.Parallel()

	hands, err := parseHands([]string{"AsAh", "7c2d"})
	require.NoError(t, err)

	results := calculateMatchup(evaluator.NewTreys(), hands, nil, 2000, randutil.New(1))
	require.Len(t, results, 2)
	assert.Equal(t, 2000, results[0].Wins+results[0].Ties+results[1].Wins)
	assert.Greater(t, results[0].Wins, results[1].Wins*4, "aces crush seven-deuce")

	// A complete board leaves nothing to chance
	board, err := parseCompact("AdAc2s2h9d")
	require.NoError(t, err)
	locked := calculateMatchup(evaluator.NewHankin(), hands, board, 50, randutil.New(1))
	assert.Equal(t, 50, locked[0].Wins)
	assert.Zero(t, locked[1].Wins)
}

func TestPrintResult(t *testing.T) {
	t.Parallel()

	r := &game.HandResult{
		HandID:         "h1",
		Names:          []string{"alice", "bob"},
		StartingStacks: []int{1000, 1000},
		FinalStacks:    []int{1150, 850},
		Winner:         0,
		WinnerName:     "alice",
		Pot:            300,
		Board:          poker.MustParseCards("2c 3c 4c"),
		Hole:           map[int][2]poker.Card{0: [2]poker.Card(poker.MustParseCards("As Kd"))},
		History:        game.BetHistory{{100, 150}, {0}},
	}

	var buf bytes.Buffer
	printResult(&buf, r)
	out := buf.String()
	assert.Contains(t, out, "Hand h1")
	assert.Contains(t, out, "uncontested")
	assert.Contains(t, out, "Board: 2c 3c 4c")
	assert.Contains(t, out, "As Kd")
	assert.Contains(t, out, "--")
	assert.Contains(t, out, "deal[100 150] flop[0]")
}

func TestDisplayResults(t *testing.T) {
	t.Parallel()

	hands, err := parseHands([]string{"AsAh", "KsKh"})
	require.NoError(t, err)
	results := calculateMatchup(evaluator.NewTreys(), hands, nil, 200, randutil.New(3))

	var buf bytes.Buffer
	displayResults(&buf, results, nil, true)
	assert.Contains(t, buf.String(), "As Ah")
	assert.Contains(t, buf.String(), "Pair")
}
