package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdemsim/internal/config"
	"github.com/lox/holdemsim/internal/evaluator"
	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/internal/participant"
	"github.com/lox/holdemsim/internal/phh"
	"github.com/lox/holdemsim/internal/randutil"
	"github.com/lox/holdemsim/internal/store"
	"github.com/lox/holdemsim/poker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

type PlayCmd struct {
	Config   string   `short:"c" default:"holdem.hcl" help:"Table configuration file (defaults apply when missing)"`
	Hands    int      `short:"n" default:"1" help:"Consecutive hands to play, stacks carry over"`
	BuyIn    int      `help:"Chips each seat starts with (overrides config)"`
	Seed     int64    `help:"Random seed (overrides config, 0 for time based)"`
	PHHDir   string   `name:"phh-dir" help:"Write every hand as PHH into this directory"`
	Database string   `help:"Record hands in this SQLite database"`
	Agents   []string `arg:"" optional:"" help:"Agents in seat order: console, call, random, equity, scripted:BETS or ws://URL"`
}

func (c *PlayCmd) Run(g *Globals) error {
	logger := newLogger(g.LogLevel)

	cfg, err := loadConfig(c.Config, c.Agents)
	if err != nil {
		return err
	}
	if c.BuyIn > 0 {
		cfg.BuyIn = c.BuyIn
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if c.PHHDir != "" {
		cfg.History.PHHDir = c.PHHDir
	}
	if c.Database != "" {
		cfg.History.Database = c.Database
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}
	ev, err := evaluator.ByName(cfg.Evaluator)
	if err != nil {
		return err
	}
	seed := randutil.Seed(cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting table",
		"seats", len(cfg.Seats),
		"buy_in", cfg.BuyIn,
		"blinds", fmt.Sprintf("%d/%d", cfg.SmallBlind, cfg.BigBlind),
		"evaluator", cfg.Evaluator,
		"seed", seed)

	ps, err := buildParticipants(ctx, cfg.Specs(), participant.Deps{
		Logger:    logger,
		RNG:       randutil.New(^seed),
		Timeout:   timeout,
		BigBlind:  cfg.BigBlind,
		Evaluator: ev,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := participant.Close(ps); err != nil {
			logger.Warn("Failed to close participants", "error", err)
		}
	}()

	opts := []game.Option{
		game.WithBlinds(cfg.SmallBlind, cfg.BigBlind),
		game.WithNames(cfg.Names()),
		game.WithRNG(randutil.New(seed)),
		game.WithEvaluator(ev),
		game.WithLogger(logger),
	}
	if cfg.History.PHHDir != "" {
		opts = append(opts, game.WithRecorder(phh.NewWriter(cfg.History.PHHDir, "holdem")))
	}
	if cfg.History.Database != "" {
		db, err := store.Open(cfg.History.Database)
		if err != nil {
			return fmt.Errorf("failed to open hand database: %w", err)
		}
		defer db.Close()
		opts = append(opts, game.WithRecorder(db))
	}

	eng, err := game.NewEngine(ps, cfg.BuyIn, opts...)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
	for hand := 0; hand < c.Hands; hand++ {
		if ctx.Err() != nil {
			logger.Info("Interrupted")
			break
		}
		if err := eng.NewGame(); err != nil {
			if errors.Is(err, game.ErrNotEnoughPlayers) {
				logger.Info("Only one player has chips left", "hands", hand)
				break
			}
			return err
		}
		result, err := eng.RunGame()
		if err != nil {
			return err
		}
		printResult(os.Stdout, result)
	}
	return nil
}

// loadConfig reads the table configuration; agents given on the command
// line replace the configured seats
func loadConfig(path string, agents []string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := seatsFromArgs(cfg, agents); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildParticipants(ctx context.Context, specs []participant.Spec, deps participant.Deps) ([]game.Participant, error) {
	ps := make([]game.Participant, 0, len(specs))
	for _, spec := range specs {
		p, err := participant.New(ctx, spec, deps)
		if err != nil {
			participant.Close(ps)
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func printResult(w io.Writer, r *game.HandResult) {
	outcome := "uncontested"
	if r.Showdown {
		outcome = "at showdown"
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Hand %s: %s wins %d %s\n", r.HandID, winnerStyle.Render(r.WinnerName), r.Pot, outcome)
	if len(r.Board) > 0 {
		fmt.Fprintf(w, "Board: %s\n", poker.FormatCards(r.Board))
	}

	for seat, name := range r.Names {
		hole := "--"
		if h, ok := r.Hole[seat]; ok {
			hole = poker.FormatCards(h[:])
		}
		net := fmt.Sprintf("%+d", r.Net(seat))
		switch {
		case r.Net(seat) > 0:
			net = winnerStyle.Render(net)
		case r.Net(seat) < 0:
			net = lossStyle.Render(net)
		}
		fmt.Fprintf(w, "  %-12s %s  %s  stack %d\n", name, hole, net, r.FinalStacks[seat])
	}
	fmt.Fprintln(w, mutedStyle.Render("  bets "+formatHistory(r.History)))
}

func formatHistory(history game.BetHistory) string {
	out := ""
	for i, street := range history {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s%v", game.Street(i), street)
	}
	return out
}
