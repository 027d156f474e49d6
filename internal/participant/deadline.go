package participant

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/poker"
)

// Deadline bounds how long a wrapped participant may take over a decision.
// A decision that misses the deadline answers 0 and the late answer is
// dropped. Calls into the wrapped participant are serialized, so a slow call
// delays the next one rather than overlapping it.
type Deadline struct {
	inner   game.Participant
	timeout time.Duration
	clock   quartz.Clock
	logger  *log.Logger
	mu      sync.Mutex
}

func NewDeadline(inner game.Participant, timeout time.Duration, clock quartz.Clock, logger *log.Logger) *Deadline {
	return &Deadline{inner: inner, timeout: timeout, clock: clock, logger: logger}
}

func (d *Deadline) run(what string, fn func() int) int {
	result := make(chan int, 1)
	go func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("Participant panicked", "call", what, "panic", r)
				result <- 0
			}
		}()
		result <- fn()
	}()

	// Wait for decision or timeout using quartz clock
	timeoutFired := make(chan struct{})
	timer := d.clock.AfterFunc(d.timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	select {
	case bet := <-result:
		return bet
	case <-timeoutFired:
		d.logger.Warn("Decision timeout, answering 0", "call", what, "timeout", d.timeout)
		return 0
	}
}

func (d *Deadline) NewGame(numPlayers, seat int) {
	d.run("new_game", func() int {
		d.inner.NewGame(numPlayers, seat)
		return 0
	})
}

func (d *Deadline) Deal(hole [2]poker.Card, history game.BetHistory, pot int) int {
	return d.run("deal", func() int { return d.inner.Deal(hole, history, pot) })
}

func (d *Deadline) Flop(board [3]poker.Card, history game.BetHistory, pot int) int {
	return d.run("flop", func() int { return d.inner.Flop(board, history, pot) })
}

func (d *Deadline) Turn(card poker.Card, history game.BetHistory, pot int) int {
	return d.run("turn", func() int { return d.inner.Turn(card, history, pot) })
}

func (d *Deadline) River(card poker.Card, history game.BetHistory, pot int) int {
	return d.run("river", func() int { return d.inner.River(card, history, pot) })
}

func (d *Deadline) EndGame(history game.BetHistory, winner int, reveal game.Reveal) {
	d.run("end_game", func() int {
		d.inner.EndGame(history, winner, reveal)
		return 0
	})
}

// Close closes the wrapped participant if it holds resources
func (d *Deadline) Close() error {
	if c, ok := d.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
