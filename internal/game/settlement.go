package game

import (
	"time"

	"github.com/lox/holdemsim/poker"
)

// HandResult is the record of a settled hand
type HandResult struct {
	HandID         string
	StartedAt      time.Time
	Names          []string
	SmallBlind     int
	BigBlind       int
	Blinds         []int // Forced bet posted by each seat
	StartingStacks []int
	FinalStacks    []int

	Winner     int
	WinnerName string
	Pot        int
	Showdown   bool
	Scores     map[int]int // Evaluator score per seat at showdown, lower wins

	Board   []poker.Card
	Hole    map[int][2]poker.Card // Every dealt seat, folded or not
	Reveal  Reveal
	History BetHistory
	Actions []Action
}

// Net returns the chips won or lost by a seat over the hand
func (r *HandResult) Net(seat int) int {
	return r.FinalStacks[seat] - r.StartingStacks[seat]
}

// settle awards the pot, notifies every participant and hands the result to
// the recorders.
func (e *Engine) settle() (*HandResult, error) {
	t := e.table

	winner, scores := e.pickWinner()
	showdown := scores != nil

	reveal := Reveal{
		Board: append([]poker.Card(nil), t.board...),
		Hands: map[int][2]poker.Card{},
	}
	if showdown {
		for seat := range scores {
			reveal.Hands[seat] = t.players[seat].Hole
		}
	}

	pot := t.pot
	t.players[winner].Stack += pot
	t.pot = 0
	t.inProgress = false

	if err := t.checkConservation(); err != nil {
		return nil, err
	}

	for seat, part := range e.participants {
		history := t.history.Clone()
		r := reveal.clone()
		e.notify(seat, func() { part.EndGame(history, winner, r) })
	}

	result := e.buildResult(winner, pot, scores, reveal)

	e.logger.Info("Hand complete",
		"hand", t.handID,
		"winner", result.WinnerName,
		"pot", pot,
		"showdown", showdown,
		"board", poker.FormatCards(t.board))

	for _, rec := range e.cfg.recorders {
		if err := rec.RecordHand(result); err != nil {
			e.logger.Error("Failed to record hand", "hand", t.handID, "error", err)
		}
	}

	return result, nil
}

// pickWinner returns the winning seat. A sole survivor wins without the
// evaluator being consulted and the returned scores are nil. At showdown the
// lowest score wins and ties go to the lowest seat index.
func (e *Engine) pickWinner() (int, map[int]int) {
	t := e.table
	if t.inHandCount() == 1 {
		for _, p := range t.players {
			if p.InHand {
				return p.Seat, nil
			}
		}
	}

	board := [5]poker.Card(t.board)
	scores := make(map[int]int)
	winner, best := -1, 0
	for _, p := range t.players {
		if !p.InHand {
			continue
		}
		score := e.cfg.evaluator.Evaluate(board, p.Hole)
		scores[p.Seat] = score
		e.logger.Debug("Showdown", "hand", t.handID, "player", p.Name, "hole", poker.FormatCards(p.Hole[:]), "score", score)
		if winner < 0 || score < best {
			winner, best = p.Seat, score
		}
	}
	return winner, scores
}

func (e *Engine) buildResult(winner, pot int, scores map[int]int, reveal Reveal) *HandResult {
	t := e.table
	n := len(t.players)

	names := make([]string, n)
	final := make([]int, n)
	hole := make(map[int][2]poker.Card)
	for i, p := range t.players {
		names[i] = p.Name
		final[i] = p.Stack
		if p.Hole[0].Valid() {
			hole[i] = p.Hole
		}
	}

	return &HandResult{
		HandID:         t.handID,
		StartedAt:      t.startedAt,
		Names:          names,
		SmallBlind:     e.cfg.smallBlind,
		BigBlind:       e.cfg.bigBlind,
		Blinds:         append([]int(nil), t.blinds...),
		StartingStacks: append([]int(nil), t.startingStacks...),
		FinalStacks:    final,
		Winner:         winner,
		WinnerName:     names[winner],
		Pot:            pot,
		Showdown:       scores != nil,
		Scores:         scores,
		Board:          append([]poker.Card(nil), t.board...),
		Hole:           hole,
		Reveal:         reveal.clone(),
		History:        t.history.Clone(),
		Actions:        append([]Action(nil), t.actions...),
	}
}
