package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemsim/poker"
)

var (
	ErrTooFewPlayers    = errors.New("at least 2 participants required")
	ErrTooManyPlayers   = fmt.Errorf("at most %d participants supported", MaxPlayers)
	ErrInvalidBuyIn     = errors.New("buy-in must be positive")
	ErrInvalidBlinds    = errors.New("blinds must be positive with big blind >= small blind")
	ErrNotEnoughPlayers = errors.New("fewer than 2 seats have chips")
	ErrNoHand           = errors.New("no hand in progress, call NewGame first")
	ErrChipConservation = errors.New("chip conservation violation")
)

// table is the single owned aggregate of per-hand state. It never leaves the
// engine; participants only ever see copies.
type table struct {
	players        []*PlayerState
	pot            int
	board          []poker.Card
	history        BetHistory
	actions        []Action
	deck           *poker.Deck
	blinds         []int
	startingStacks []int
	handID         string
	startedAt      time.Time
	inProgress     bool
	totalChips     int
}

// Engine runs hands of No-Limit Hold'em between a fixed set of participants.
// It is not safe for concurrent use; one goroutine drives it and blocks on
// each participant decision in turn.
type Engine struct {
	cfg          *engineConfig
	participants []Participant
	table        *table
	logger       *log.Logger
}

// NewEngine seats the participants in order, each with buyIn chips.
func NewEngine(participants []Participant, buyIn int, opts ...Option) (*Engine, error) {
	if len(participants) < 2 {
		return nil, ErrTooFewPlayers
	}
	if len(participants) > MaxPlayers {
		return nil, ErrTooManyPlayers
	}
	if buyIn <= 0 {
		return nil, ErrInvalidBuyIn
	}

	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.smallBlind <= 0 || cfg.bigBlind < cfg.smallBlind {
		return nil, ErrInvalidBlinds
	}
	if cfg.names != nil && len(cfg.names) != len(participants) {
		return nil, fmt.Errorf("got %d names for %d participants", len(cfg.names), len(participants))
	}
	cfg.finish()

	players := make([]*PlayerState, len(participants))
	for i := range participants {
		name := fmt.Sprintf("seat%d", i)
		if cfg.names != nil {
			name = cfg.names[i]
		}
		players[i] = &PlayerState{Seat: i, Name: name, Stack: buyIn}
	}

	return &Engine{
		cfg:          cfg,
		participants: append([]Participant(nil), participants...),
		table: &table{
			players:    players,
			totalChips: buyIn * len(participants),
		},
		logger: cfg.logger.WithPrefix("engine"),
	}, nil
}

// Play runs one complete hand
func (e *Engine) Play() (*HandResult, error) {
	if err := e.NewGame(); err != nil {
		return nil, err
	}
	return e.RunGame()
}

// NewGame resets per-hand state, posts the blinds, takes a freshly shuffled
// deck and tells every participant a hand is starting.
func (e *Engine) NewGame() error {
	t := e.table
	if t.inProgress {
		e.abandon()
	}

	funded := 0
	for _, p := range t.players {
		if p.Stack > 0 {
			funded++
		}
	}
	if funded < 2 {
		return ErrNotEnoughPlayers
	}

	n := len(t.players)
	t.startingStacks = make([]int, n)
	for i, p := range t.players {
		t.startingStacks[i] = p.Stack
		p.resetForHand()
	}
	t.pot = 0
	t.board = nil
	t.history = nil
	t.actions = nil
	t.handID = e.cfg.handIDs()
	t.startedAt = e.cfg.clock.Now()

	e.postBlinds()
	t.deck = e.cfg.deckSource()
	t.inProgress = true

	for seat, part := range e.participants {
		e.notify(seat, func() { part.NewGame(n, seat) })
	}

	e.logger.Info("Starting hand", "hand", t.handID, "players", funded, "pot", t.pot)
	return t.checkConservation()
}

// postBlinds debits the two seats that precede seat 0 in the fixed order
func (e *Engine) postBlinds() {
	t := e.table
	n := len(t.players)
	t.blinds = make([]int, n)

	post := func(seat, amount int) {
		p := t.players[seat]
		amount = min(amount, p.Stack)
		p.commit(amount)
		t.pot += amount
		t.blinds[seat] = amount
	}
	post(n-2, e.cfg.smallBlind)
	post(n-1, e.cfg.bigBlind)
}

// abandon refunds an unfinished hand so the closed economy survives a restart
func (e *Engine) abandon() {
	t := e.table
	e.logger.Warn("Abandoning unfinished hand", "hand", t.handID, "pot", t.pot)
	for _, p := range t.players {
		p.Stack += p.TotalBet
		p.TotalBet = 0
		p.Committed = 0
	}
	t.pot = 0
	t.inProgress = false
}

// RunGame deals and plays the four streets of the hand started by NewGame,
// stopping early once a single seat remains, then settles the pot.
func (e *Engine) RunGame() (*HandResult, error) {
	t := e.table
	if !t.inProgress {
		return nil, ErrNoHand
	}

	for _, p := range t.players {
		if p.InHand {
			p.Hole = [2]poker.Card(t.deck.Deal(2))
		}
	}

	for street := Deal; street <= River; street++ {
		if street > Deal {
			if t.inHandCount() <= 1 {
				e.logger.Debug("Hand decided before showdown", "hand", t.handID, "street", street)
				break
			}
			e.dealBoard(street)
		}
		if err := e.runStreet(street); err != nil {
			return nil, err
		}
	}

	return e.settle()
}

func (e *Engine) dealBoard(street Street) {
	t := e.table
	n := 1
	if street == Flop {
		n = 3
	}
	t.board = append(t.board, t.deck.Deal(n)...)
	e.logger.Debug("Dealt board", "hand", t.handID, "street", street, "board", poker.FormatCards(t.board))
}

// runStreet drives one betting round to completion
func (e *Engine) runStreet(street Street) error {
	t := e.table
	round := newBettingRound(street, t.players)
	t.history = append(t.history, []int{})
	current := len(t.history) - 1

	n := len(t.players)
	for seat := 0; ; seat = (seat + 1) % n {
		if t.inHandCount() < 2 || seat == round.raisedPlayer || round.settled(t.players) {
			break
		}
		p := t.players[seat]
		if !p.CanAct() {
			continue
		}

		requested := e.ask(street, seat)
		action := round.apply(p, requested)
		t.history[current] = append(t.history[current], requested)
		t.pot += action.Added
		t.actions = append(t.actions, action)

		e.logger.Debug("Player action",
			"hand", t.handID,
			"street", street,
			"player", p.Name,
			"requested", requested,
			"action", action.Kind,
			"amount", action.Amount,
			"pot", t.pot)

		if err := t.checkConservation(); err != nil {
			return err
		}
	}

	for _, p := range t.players {
		p.Committed = 0
	}
	return nil
}

// ask requests a decision for the given street. A participant that panics is
// treated as having returned zero.
func (e *Engine) ask(street Street, seat int) (bet int) {
	t := e.table
	p := t.players[seat]
	part := e.participants[seat]
	history := t.history.Clone()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Participant panicked, treating decision as zero", "player", p.Name, "street", street, "panic", r)
			bet = 0
		}
	}()

	switch street {
	case Deal:
		return part.Deal(p.Hole, history, t.pot)
	case Flop:
		return part.Flop([3]poker.Card(t.board[:3]), history, t.pot)
	case Turn:
		return part.Turn(t.board[3], history, t.pot)
	case River:
		return part.River(t.board[4], history, t.pot)
	}
	return 0
}

// notify runs an informational callback, containing any panic
func (e *Engine) notify(seat int, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Participant panicked during notification", "player", e.table.players[seat].Name, "panic", r)
		}
	}()
	fn()
}

// Players returns a snapshot of every seat
func (e *Engine) Players() []PlayerState {
	out := make([]PlayerState, len(e.table.players))
	for i, p := range e.table.players {
		out[i] = *p
	}
	return out
}

// Stacks returns the chip stack of every seat
func (e *Engine) Stacks() []int {
	out := make([]int, len(e.table.players))
	for i, p := range e.table.players {
		out[i] = p.Stack
	}
	return out
}

// Pot returns the chips currently in the pot
func (e *Engine) Pot() int {
	return e.table.pot
}

// Board returns a copy of the community cards dealt so far
func (e *Engine) Board() []poker.Card {
	return append([]poker.Card(nil), e.table.board...)
}

// History returns a copy of the bet history of the current hand
func (e *Engine) History() BetHistory {
	return e.table.history.Clone()
}

// TotalChips returns the chips in play, which never changes
func (e *Engine) TotalChips() int {
	return e.table.totalChips
}

func (t *table) inHandCount() int {
	count := 0
	for _, p := range t.players {
		if p.InHand {
			count++
		}
	}
	return count
}

// checkConservation validates the closed economy: stacks plus pot always add
// up to the chips seated, and while a hand runs the pot is exactly what was
// committed.
func (t *table) checkConservation() error {
	total := t.pot
	committed := 0
	for _, p := range t.players {
		if p.Stack < 0 {
			return fmt.Errorf("%w: %s has negative stack %d", ErrChipConservation, p.Name, p.Stack)
		}
		total += p.Stack
		committed += p.TotalBet
	}
	if total != t.totalChips {
		return fmt.Errorf("%w: stacks plus pot is %d, expected %d", ErrChipConservation, total, t.totalChips)
	}
	if t.inProgress && committed != t.pot {
		return fmt.Errorf("%w: pot is %d but %d committed", ErrChipConservation, t.pot, committed)
	}
	return nil
}
