// Package simulator plays many independent hands concurrently and
// summarises how every seat fared.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemsim/internal/evaluator"
	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/internal/participant"
	"github.com/lox/holdemsim/internal/randutil"
)

// ErrConsoleSeat is returned when a seat would need a human
var ErrConsoleSeat = errors.New("console seats cannot be simulated")

// Config holds configuration for running simulations
type Config struct {
	Hands      int
	Workers    int
	Seed       int64 // Hand i is dealt from Seed+i
	BuyIn      int
	SmallBlind int
	BigBlind   int
	Seats      []participant.Spec
	Evaluator  string
	Recorders  []game.Recorder // Must be safe for concurrent use
	Logger     *log.Logger
}

// Simulator runs batches of hands. Every hand gets a fresh engine and fresh
// participants, so hands never share state and the outcome of hand i depends
// only on Seed+i.
type Simulator struct {
	config    Config
	evaluator evaluator.Evaluator
}

// New validates the configuration and creates a simulator
func New(config Config) (*Simulator, error) {
	if config.Hands <= 0 {
		return nil, fmt.Errorf("hands must be positive, got %d", config.Hands)
	}
	if len(config.Seats) < 2 || len(config.Seats) > game.MaxPlayers {
		return nil, fmt.Errorf("need between 2 and %d seats, got %d", game.MaxPlayers, len(config.Seats))
	}
	if config.BuyIn <= 0 {
		return nil, fmt.Errorf("invalid buy-in: %d", config.BuyIn)
	}
	for _, seat := range config.Seats {
		if seat.Kind == participant.KindConsole {
			return nil, fmt.Errorf("seat %q: %w", seat.Name, ErrConsoleSeat)
		}
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.SmallBlind == 0 && config.BigBlind == 0 {
		config.SmallBlind, config.BigBlind = game.DefaultSmallBlind, game.DefaultBigBlind
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	ev, err := evaluator.ByName(config.Evaluator)
	if err != nil {
		return nil, err
	}
	return &Simulator{config: config, evaluator: ev}, nil
}

// Run plays every hand and returns the aggregated statistics. Results are
// folded in hand order, so they do not depend on scheduling.
func (s *Simulator) Run(ctx context.Context) (*Stats, error) {
	outcomes := make([]outcome, s.config.Hands)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Hands {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := s.playHand(ctx, s.config.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("hand %d (seed %d): %w", i, s.config.Seed+int64(i), err)
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := newStats(s.config)
	for _, o := range outcomes {
		stats.add(o)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// outcome is what a finished hand contributes to the statistics
type outcome struct {
	winner   int
	showdown bool
	pot      int
	net      []int
}

func (s *Simulator) playHand(ctx context.Context, seed int64) (outcome, error) {
	deps := participant.Deps{
		Logger:    s.config.Logger,
		RNG:       randutil.New(^seed),
		BigBlind:  s.config.BigBlind,
		Evaluator: s.evaluator,
	}

	names := make([]string, len(s.config.Seats))
	ps := make([]game.Participant, 0, len(s.config.Seats))
	defer func() {
		if err := participant.Close(ps); err != nil {
			s.config.Logger.Warn("Failed to close participants", "error", err)
		}
	}()
	for i, spec := range s.config.Seats {
		p, err := participant.New(ctx, spec, deps)
		if err != nil {
			return outcome{}, err
		}
		ps = append(ps, p)
		names[i] = spec.Name
	}

	opts := []game.Option{
		game.WithRNG(randutil.New(seed)),
		game.WithBlinds(s.config.SmallBlind, s.config.BigBlind),
		game.WithNames(names),
		game.WithEvaluator(s.evaluator),
		game.WithLogger(s.config.Logger),
	}
	for _, r := range s.config.Recorders {
		opts = append(opts, game.WithRecorder(r))
	}

	eng, err := game.NewEngine(ps, s.config.BuyIn, opts...)
	if err != nil {
		return outcome{}, err
	}
	result, err := eng.Play()
	if err != nil {
		return outcome{}, err
	}

	o := outcome{
		winner:   result.Winner,
		showdown: result.Showdown,
		pot:      result.Pot,
		net:      make([]int, len(names)),
	}
	for seat := range names {
		o.net[seat] = result.Net(seat)
	}
	return o, nil
}
