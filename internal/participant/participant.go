// Package participant provides the built-in game.Participant kinds and a
// registry that builds them from configuration.
package participant

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdemsim/internal/evaluator"
	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/internal/remote"
	"github.com/lox/holdemsim/poker"
)

const (
	KindConsole  = "console"
	KindScripted = "scripted"
	KindCall     = "call"
	KindRandom   = "random"
	KindEquity   = "equity"
	KindRemote   = "remote"
)

// Kinds lists every participant kind New can build
func Kinds() []string {
	return []string{KindConsole, KindScripted, KindCall, KindRandom, KindEquity, KindRemote}
}

// Known reports whether kind is buildable
func Known(kind string) bool {
	return slices.Contains(Kinds(), kind)
}

// Bets are the scripted target commitments per street, consumed in order
type Bets struct {
	Deal  []int
	Flop  []int
	Turn  []int
	River []int
}

// Spec describes one seat
type Spec struct {
	Kind string
	Name string
	URL  string // remote only
	Bets Bets   // scripted only
}

// Deps are the shared collaborators a participant may need
type Deps struct {
	Logger    *log.Logger
	RNG       *rand.Rand
	In        io.Reader // console input, defaults to stdin
	Out       io.Writer // console output, defaults to stdout
	Clock     quartz.Clock
	Timeout   time.Duration // per-decision deadline, zero disables it
	BigBlind  int
	Evaluator evaluator.Evaluator
}

func (d *Deps) defaults() {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.RNG == nil {
		d.RNG = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Clock == nil {
		d.Clock = quartz.NewReal()
	}
	if d.BigBlind <= 0 {
		d.BigBlind = game.DefaultBigBlind
	}
	if d.Evaluator == nil {
		d.Evaluator = evaluator.NewTreys()
	}
}

// New builds the participant described by spec. Every kind except console is
// wrapped in a Deadline when deps.Timeout is set.
func New(ctx context.Context, spec Spec, deps Deps) (game.Participant, error) {
	deps.defaults()
	logger := deps.Logger.WithPrefix(spec.Name)

	var p game.Participant
	switch spec.Kind {
	case KindConsole:
		return NewConsole(spec.Name, deps.In, deps.Out), nil
	case KindScripted:
		p = NewScripted(spec.Bets)
	case KindCall:
		p = NewCaller(deps.BigBlind)
	case KindRandom:
		p = NewRandom(deps.RNG, deps.BigBlind)
	case KindEquity:
		p = NewEquity(deps.Evaluator, deps.RNG, deps.BigBlind)
	case KindRemote:
		if spec.URL == "" {
			return nil, fmt.Errorf("seat %q: remote participant needs a url", spec.Name)
		}
		client, err := remote.Dial(ctx, spec.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("seat %q: %w", spec.Name, err)
		}
		p = client
	default:
		return nil, fmt.Errorf("seat %q: unknown participant kind %q", spec.Name, spec.Kind)
	}

	if deps.Timeout > 0 {
		p = NewDeadline(p, deps.Timeout, deps.Clock, logger)
	}
	return p, nil
}

// Close releases any participants holding resources such as connections
func Close(ps []game.Participant) error {
	var firstErr error
	for _, p := range ps {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// tracker remembers what a participant has been shown during a hand. Street
// callbacks can fire more than once per street, so cards are only recorded
// the first time.
type tracker struct {
	seat    int
	players int
	hole    [2]poker.Card
	board   []poker.Card
}

func (t *tracker) NewGame(numPlayers, seat int) {
	t.players = numPlayers
	t.seat = seat
	t.hole = [2]poker.Card{}
	t.board = nil
}

func (t *tracker) EndGame(game.BetHistory, int, game.Reveal) {}

func (t *tracker) seeHole(hole [2]poker.Card) {
	t.hole = hole
}

func (t *tracker) seeFlop(board [3]poker.Card) {
	if len(t.board) == 0 {
		t.board = append(t.board, board[:]...)
	}
}

func (t *tracker) seeCard(card poker.Card, want int) {
	if len(t.board) == want-1 {
		t.board = append(t.board, card)
	}
}

// highestBet is the largest raw bet on the street in progress
func highestBet(history game.BetHistory) int {
	if len(history) == 0 {
		return 0
	}
	highest := 0
	for _, b := range history[len(history)-1] {
		highest = max(highest, b)
	}
	return highest
}

// toCall is the commitment needed to stay in: the highest visible bet, never
// less than the big blind before the flop
func toCall(history game.BetHistory, bigBlind int) int {
	bet := highestBet(history)
	if len(history) <= 1 {
		bet = max(bet, bigBlind)
	}
	return bet
}
