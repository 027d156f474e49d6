package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lox/holdemsim/internal/evaluator"
	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/internal/participant"
	"github.com/lox/holdemsim/internal/randutil"
	"github.com/lox/holdemsim/internal/remote"
)

type BotCmd struct {
	Addr      string `default:":9000" help:"Address to listen on"`
	Kind      string `default:"random" enum:"call,random,equity,scripted" help:"Participant to serve (call|random|equity|scripted)"`
	Script    string `help:"Bets for the scripted kind, e.g. 100/0/0/0"`
	BigBlind  int    `default:"100" help:"Big blind the participant assumes"`
	Evaluator string `default:"treys" help:"Evaluator used by the equity kind"`
	Seed      int64  `help:"Random seed (0 for time based)"`
}

func (c *BotCmd) Run(g *Globals) error {
	logger := newLogger(g.LogLevel)

	spec := participant.Spec{Kind: c.Kind, Name: c.Kind}
	if c.Script != "" {
		bets, err := participant.ParseScript(c.Script)
		if err != nil {
			return err
		}
		spec.Bets = bets
	}
	ev, err := evaluator.ByName(c.Evaluator)
	if err != nil {
		return err
	}
	seed := randutil.Seed(c.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Each connection gets its own participant and random stream
	var connections atomic.Int64
	factory := func() game.Participant {
		n := connections.Add(1)
		p, err := participant.New(ctx, spec, participant.Deps{
			Logger:    logger,
			RNG:       randutil.New(seed + n),
			BigBlind:  c.BigBlind,
			Evaluator: ev,
		})
		if err != nil {
			logger.Error("Failed to build participant", "error", err)
			return participant.NewCaller(c.BigBlind)
		}
		return p
	}

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           remote.NewHandler(factory, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving participant", "kind", c.Kind, "addr", c.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
