package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemsim/poker"
)

// mockParticipant replays fixed bets per street and records what it was shown
type mockParticipant struct {
	bets [4][]int
	next [4]int

	seat       int
	numPlayers int
	newGames   int
	hole       [2]poker.Card
	histories  []BetHistory
	pots       []int
	board      []poker.Card

	endGames   int
	endHistory BetHistory
	winner     int
	reveal     Reveal
}

func newMockParticipant(deal, flop, turn, river []int) *mockParticipant {
	return &mockParticipant{bets: [4][]int{deal, flop, turn, river}, winner: -1}
}

func (m *mockParticipant) decide(s Street, history BetHistory, pot int) int {
	m.histories = append(m.histories, history)
	m.pots = append(m.pots, pot)
	if m.next[s] >= len(m.bets[s]) {
		return 0
	}
	bet := m.bets[s][m.next[s]]
	m.next[s]++
	return bet
}

func (m *mockParticipant) NewGame(numPlayers, seat int) {
	m.numPlayers = numPlayers
	m.seat = seat
	m.newGames++
	m.next = [4]int{}
	m.board = nil
}

func (m *mockParticipant) Deal(hole [2]poker.Card, history BetHistory, pot int) int {
	m.hole = hole
	return m.decide(Deal, history, pot)
}

func (m *mockParticipant) Flop(board [3]poker.Card, history BetHistory, pot int) int {
	if len(m.board) == 0 {
		m.board = append(m.board, board[:]...)
	}
	return m.decide(Flop, history, pot)
}

func (m *mockParticipant) Turn(card poker.Card, history BetHistory, pot int) int {
	if len(m.board) == 3 {
		m.board = append(m.board, card)
	}
	return m.decide(Turn, history, pot)
}

func (m *mockParticipant) River(card poker.Card, history BetHistory, pot int) int {
	if len(m.board) == 4 {
		m.board = append(m.board, card)
	}
	return m.decide(River, history, pot)
}

func (m *mockParticipant) EndGame(history BetHistory, winner int, reveal Reveal) {
	m.endGames++
	m.endHistory = history
	m.winner = winner
	m.reveal = reveal
}

// randomParticipant picks arbitrary, often malformed, commitments
type randomParticipant struct {
	rng  *rand.Rand
	ends int
}

func (r *randomParticipant) bet(history BetHistory) int {
	current := 0
	if len(history) > 0 {
		for _, b := range history[len(history)-1] {
			current = max(current, b)
		}
	}
	switch r.rng.IntN(6) {
	case 0:
		return 0
	case 1:
		return -r.rng.IntN(50)
	case 2:
		return current
	case 3:
		return current + r.rng.IntN(300)
	case 4:
		return r.rng.IntN(100)
	default:
		return 100000
	}
}

func (r *randomParticipant) NewGame(int, int) {}
func (r *randomParticipant) Deal(_ [2]poker.Card, h BetHistory, _ int) int {
	return r.bet(h)
}
func (r *randomParticipant) Flop(_ [3]poker.Card, h BetHistory, _ int) int { return r.bet(h) }
func (r *randomParticipant) Turn(_ poker.Card, h BetHistory, _ int) int { return r.bet(h) }
func (r *randomParticipant) River(_ poker.Card, h BetHistory, _ int) int { return r.bet(h) }
func (r *randomParticipant) EndGame(BetHistory, int, Reveal) { r.ends++ }

// panicParticipant blows up whenever it is asked anything
type panicParticipant struct{ mockParticipant }

func (p *panicParticipant) Deal([2]poker.Card, BetHistory, int) int { panic("boom") }
func (p *panicParticipant) EndGame(BetHistory, int, Reveal) { panic("boom") }

// countingEvaluator scores by a fixed table and counts invocations
type countingEvaluator struct {
	scores map[[2]poker.Card]int
	calls  int
}

func (c *countingEvaluator) Evaluate(_ [5]poker.Card, hole [2]poker.Card) int {
	c.calls++
	if s, ok := c.scores[hole]; ok {
		return s
	}
	return 5000
}

type recordingRecorder struct {
	results []*HandResult
	err     error
}

func (r *recordingRecorder) RecordHand(result *HandResult) error {
	r.results = append(r.results, result)
	return r.err
}

func stackedDeck(cards string) func() *poker.Deck {
	deck, err := poker.NewStackedDeck(poker.MustParseCards(cards)...)
	if err != nil {
		panic(err)
	}
	return func() *poker.Deck {
		deck.Shuffle()
		return deck
	}
}

func hole(s string) [2]poker.Card {
	return [2]poker.Card(poker.MustParseCards(s))
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func participants(ps ...*mockParticipant) []Participant {
	out := make([]Participant, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}
