package game

import (
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdemsim/internal/evaluator"
	"github.com/lox/holdemsim/internal/gameid"
	"github.com/lox/holdemsim/internal/randutil"
	"github.com/lox/holdemsim/poker"
)

const (
	DefaultSmallBlind = 50
	DefaultBigBlind   = 100

	// MaxPlayers keeps a full deal within one deck
	MaxPlayers = 10
)

// Option configures an Engine during creation.
type Option func(*engineConfig)

// engineConfig holds all configuration for creating an engine.
type engineConfig struct {
	smallBlind int
	bigBlind   int
	names      []string
	rng        *rand.Rand
	deckSource func() *poker.Deck
	evaluator  Evaluator
	logger     *log.Logger
	recorders  []Recorder
	handIDs    func() string
	clock      quartz.Clock
}

func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		smallBlind: DefaultSmallBlind,
		bigBlind:   DefaultBigBlind,
		evaluator:  evaluator.NewTreys(),
		logger:     log.New(io.Discard),
		handIDs:    gameid.Generate,
		clock:      quartz.NewReal(),
	}
}

// WithBlinds sets the forced bets posted by the two seats before seat 0.
func WithBlinds(small, big int) Option {
	return func(c *engineConfig) {
		c.smallBlind = small
		c.bigBlind = big
	}
}

// WithNames labels the seats for logs and hand histories.
// The length must match the number of participants.
func WithNames(names []string) Option {
	return func(c *engineConfig) {
		c.names = names
	}
}

// WithRNG sets the random source used to shuffle a fresh deck every hand.
func WithRNG(rng *rand.Rand) Option {
	return func(c *engineConfig) {
		c.rng = rng
	}
}

// WithDeckSource replaces the per-hand shuffled deck, typically with a
// stacked deck so a deal can be replayed exactly. It is called once per hand.
func WithDeckSource(source func() *poker.Deck) Option {
	return func(c *engineConfig) {
		c.deckSource = source
	}
}

// WithEvaluator sets the showdown evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(c *engineConfig) {
		c.evaluator = e
	}
}

// WithLogger sets the logger; the engine logs under the "engine" prefix.
func WithLogger(logger *log.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithRecorder adds a recorder that receives every settled hand.
func WithRecorder(r Recorder) Option {
	return func(c *engineConfig) {
		c.recorders = append(c.recorders, r)
	}
}

// WithHandIDs overrides hand id generation.
func WithHandIDs(next func() string) Option {
	return func(c *engineConfig) {
		c.handIDs = next
	}
}

// WithClock sets the clock used to timestamp hands.
func WithClock(clock quartz.Clock) Option {
	return func(c *engineConfig) {
		c.clock = clock
	}
}

func (c *engineConfig) finish() {
	if c.deckSource == nil {
		rng := c.rng
		if rng == nil {
			rng = randutil.New(time.Now().UnixNano())
		}
		deck := poker.NewDeck(rng)
		c.deckSource = func() *poker.Deck {
			deck.Shuffle()
			return deck
		}
	}
}
