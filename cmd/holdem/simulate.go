package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/internal/phh"
	"github.com/lox/holdemsim/internal/randutil"
	"github.com/lox/holdemsim/internal/simulator"
	"github.com/lox/holdemsim/internal/store"
)

type SimulateCmd struct {
	Config   string   `short:"c" default:"holdem.hcl" help:"Table configuration file (defaults apply when missing)"`
	Hands    int      `short:"n" default:"1000" help:"Number of independent hands"`
	Workers  int      `short:"w" help:"Hands played concurrently (default: number of CPUs)"`
	Seed     int64    `help:"Random seed (overrides config, 0 for time based)"`
	PHHDir   string   `name:"phh-dir" help:"Write every hand as PHH into this directory"`
	Database string   `help:"Record hands in this SQLite database"`
	Agents   []string `arg:"" optional:"" help:"Agents in seat order: call, random, equity, scripted:BETS or ws://URL"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger := newLogger(g.LogLevel)

	cfg, err := loadConfig(c.Config, c.Agents)
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	seed := randutil.Seed(cfg.Seed)

	var recorders []game.Recorder
	if dir := firstNonEmpty(c.PHHDir, cfg.History.PHHDir); dir != "" {
		recorders = append(recorders, phh.NewWriter(dir, "simulate"))
	}
	if path := firstNonEmpty(c.Database, cfg.History.Database); path != "" {
		db, err := store.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open hand database: %w", err)
		}
		defer db.Close()
		recorders = append(recorders, db)
	}

	sim, err := simulator.New(simulator.Config{
		Hands:      c.Hands,
		Workers:    c.Workers,
		Seed:       seed,
		BuyIn:      cfg.BuyIn,
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
		Seats:      cfg.Specs(),
		Evaluator:  cfg.Evaluator,
		Recorders:  recorders,
		Logger:     logger.WithPrefix("simulate"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation", "hands", c.Hands, "seats", len(cfg.Seats), "seed", seed)
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, stats)
	elapsed := time.Since(start)
	fmt.Printf("\n%d hands in %v (%.0f hands/sec), seed %d\n",
		stats.Hands, elapsed.Truncate(time.Millisecond), float64(stats.Hands)/elapsed.Seconds(), seed)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
