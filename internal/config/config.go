// Package config loads table configuration from HCL with an environment
// overlay.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kelseyhightower/envconfig"

	"github.com/lox/holdemsim/internal/evaluator"
	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/internal/participant"
)

// EnvPrefix prefixes every environment override, e.g. HOLDEM_BUY_IN
const EnvPrefix = "holdem"

// Config describes one table
type Config struct {
	BuyIn           int            `hcl:"buy_in,optional"`
	SmallBlind      int            `hcl:"small_blind,optional"`
	BigBlind        int            `hcl:"big_blind,optional"`
	Evaluator       string         `hcl:"evaluator,optional"`
	DecisionTimeout string         `hcl:"decision_timeout,optional"`
	Seed            int64          `hcl:"seed,optional"`
	Seats           []SeatConfig   `hcl:"seat,block"`
	History         *HistoryConfig `hcl:"history,block"`
}

// SeatConfig defines a single seat in seat order
type SeatConfig struct {
	Name string      `hcl:"name,label"`
	Kind string      `hcl:"kind"`
	URL  string      `hcl:"url,optional"`
	Bets *BetsConfig `hcl:"bets,block"`
}

// BetsConfig is the per-street script of a scripted seat
type BetsConfig struct {
	Deal  []int `hcl:"deal,optional"`
	Flop  []int `hcl:"flop,optional"`
	Turn  []int `hcl:"turn,optional"`
	River []int `hcl:"river,optional"`
}

// HistoryConfig says where finished hands are kept. Empty values disable
// that output.
type HistoryConfig struct {
	PHHDir   string `hcl:"phh_dir,optional"`
	Database string `hcl:"database,optional"`
}

// env holds overrides; nil fields were not set
type env struct {
	BuyIn           *int    `envconfig:"BUY_IN"`
	SmallBlind      *int    `envconfig:"SMALL_BLIND"`
	BigBlind        *int    `envconfig:"BIG_BLIND"`
	Evaluator       *string `envconfig:"EVALUATOR"`
	DecisionTimeout *string `envconfig:"DECISION_TIMEOUT"`
	Seed            *int64  `envconfig:"SEED"`
}

// Default returns a heads-up table of two built-in bots
func Default() *Config {
	return &Config{
		BuyIn:           1000,
		SmallBlind:      game.DefaultSmallBlind,
		BigBlind:        game.DefaultBigBlind,
		Evaluator:       evaluator.NameTreys,
		DecisionTimeout: "30s",
		Seats: []SeatConfig{
			{Name: "caller", Kind: participant.KindCall},
			{Name: "random", Kind: participant.KindRandom},
		},
		History: &HistoryConfig{},
	}
}

// Load reads filename, falling back to Default when it does not exist, and
// applies environment overrides on top.
func Load(filename string) (*Config, error) {
	var cfg *Config
	src, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default()
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if cfg, err = Parse(src, filename); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes HCL source and fills in defaults for anything left out
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	if cfg.BuyIn == 0 {
		cfg.BuyIn = def.BuyIn
	}
	if cfg.SmallBlind == 0 {
		cfg.SmallBlind = def.SmallBlind
	}
	if cfg.BigBlind == 0 {
		cfg.BigBlind = def.BigBlind
	}
	if cfg.Evaluator == "" {
		cfg.Evaluator = def.Evaluator
	}
	if cfg.DecisionTimeout == "" {
		cfg.DecisionTimeout = def.DecisionTimeout
	}
	if len(cfg.Seats) == 0 {
		cfg.Seats = def.Seats
	}
	if cfg.History == nil {
		cfg.History = def.History
	}
	return &cfg, nil
}

// ApplyEnv overlays HOLDEM_* environment variables
func (c *Config) ApplyEnv() error {
	var e env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	if e.BuyIn != nil {
		c.BuyIn = *e.BuyIn
	}
	if e.SmallBlind != nil {
		c.SmallBlind = *e.SmallBlind
	}
	if e.BigBlind != nil {
		c.BigBlind = *e.BigBlind
	}
	if e.Evaluator != nil {
		c.Evaluator = *e.Evaluator
	}
	if e.DecisionTimeout != nil {
		c.DecisionTimeout = *e.DecisionTimeout
	}
	if e.Seed != nil {
		c.Seed = *e.Seed
	}
	return nil
}

// Validate checks the configuration can seat a table
func (c *Config) Validate() error {
	if len(c.Seats) < 2 || len(c.Seats) > game.MaxPlayers {
		return fmt.Errorf("need between 2 and %d seats, got %d", game.MaxPlayers, len(c.Seats))
	}
	if c.SmallBlind <= 0 || c.BigBlind <= 0 {
		return fmt.Errorf("blinds must be positive: %d/%d", c.SmallBlind, c.BigBlind)
	}
	if c.BigBlind < c.SmallBlind {
		return fmt.Errorf("big blind (%d) must be at least the small blind (%d)", c.BigBlind, c.SmallBlind)
	}
	if c.BuyIn <= 0 {
		return fmt.Errorf("invalid buy-in: %d", c.BuyIn)
	}
	if !evaluator.Known(c.Evaluator) {
		return fmt.Errorf("unknown evaluator %q (known: %v)", c.Evaluator, evaluator.Names())
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Seats))
	for _, seat := range c.Seats {
		if seen[seat.Name] {
			return fmt.Errorf("duplicate seat name %q", seat.Name)
		}
		seen[seat.Name] = true
		if !participant.Known(seat.Kind) {
			return fmt.Errorf("seat %q: unknown kind %q (known: %v)", seat.Name, seat.Kind, participant.Kinds())
		}
		if seat.Kind == participant.KindRemote && seat.URL == "" {
			return fmt.Errorf("seat %q: remote seats need a url", seat.Name)
		}
	}
	return nil
}

// Timeout is the parsed decision deadline; zero disables it
func (c *Config) Timeout() (time.Duration, error) {
	if c.DecisionTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid decision_timeout %q: %w", c.DecisionTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid decision_timeout %q: negative", c.DecisionTimeout)
	}
	return d, nil
}

// Specs converts the seats into participant specs, in seat order
func (c *Config) Specs() []participant.Spec {
	specs := make([]participant.Spec, len(c.Seats))
	for i, seat := range c.Seats {
		specs[i] = participant.Spec{Kind: seat.Kind, Name: seat.Name, URL: seat.URL}
		if seat.Bets != nil {
			specs[i].Bets = participant.Bets{
				Deal:  seat.Bets.Deal,
				Flop:  seat.Bets.Flop,
				Turn:  seat.Bets.Turn,
				River: seat.Bets.River,
			}
		}
	}
	return specs
}

// Names returns the seat names in seat order
func (c *Config) Names() []string {
	names := make([]string, len(c.Seats))
	for i, seat := range c.Seats {
		names[i] = seat.Name
	}
	return names
}
