package phh

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/poker"
)

// FromResult converts a settled hand into a PHH document. Blind posts are
// carried by blinds_or_straddles rather than as actions.
func FromResult(r *game.HandResult, table string) *HandHistory {
	n := len(r.Names)
	h := &HandHistory{
		Variant:           "NT",
		Table:             table,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: append([]int(nil), r.Blinds...),
		MinBet:            r.BigBlind,
		StartingStacks:    append([]int(nil), r.StartingStacks...),
		FinishingStacks:   append([]int(nil), r.FinalStacks...),
		Winnings:          make([]int, n),
		Players:           append([]string(nil), r.Names...),
		HandID:            r.HandID,
	}
	for i := range h.Seats {
		h.Seats[i] = i + 1
	}
	h.Winnings[r.Winner] = r.Pot

	if !r.StartedAt.IsZero() {
		ts := r.StartedAt.UTC()
		h.Time = ts.Format("15:04:05")
		h.TimeZone = "UTC"
		h.Day = ts.Day()
		h.Month = int(ts.Month())
		h.Year = ts.Year()
	}

	h.Actions = actions(r)
	return h
}

func actions(r *game.HandResult) []string {
	var out []string
	for seat := range r.Names {
		if hole, ok := r.Hole[seat]; ok {
			out = append(out, "d dh "+player(seat)+" "+cardString(hole[:]))
		}
	}

	street := game.Deal
	maxBet := 0
	for _, b := range r.Blinds {
		maxBet = max(maxBet, b)
	}

	for _, a := range r.Actions {
		for street < a.Street {
			street++
			maxBet = 0
			out = append(out, dealBoard(street, r.Board)...)
		}

		switch {
		case a.Kind == game.Fold:
			out = append(out, player(a.Seat)+" f")
		case a.Amount > maxBet:
			maxBet = a.Amount
			out = append(out, player(a.Seat)+" cbr "+strconv.Itoa(a.Amount))
		default:
			out = append(out, player(a.Seat)+" cc")
		}
	}

	// Streets dealt with nobody left to bet
	for street < game.River {
		street++
		out = append(out, dealBoard(street, r.Board)...)
	}

	if r.Showdown {
		seats := make([]int, 0, len(r.Reveal.Hands))
		for seat := range r.Reveal.Hands {
			seats = append(seats, seat)
		}
		sort.Ints(seats)
		for _, seat := range seats {
			hole := r.Reveal.Hands[seat]
			out = append(out, player(seat)+" sm "+cardString(hole[:]))
		}
	}
	return out
}

// dealBoard returns the dealer line for the cards that open street, or
// nothing if they were never dealt
func dealBoard(street game.Street, board []poker.Card) []string {
	var cards []poker.Card
	switch {
	case street == game.Flop && len(board) >= 3:
		cards = board[:3]
	case street == game.Turn && len(board) >= 4:
		cards = board[3:4]
	case street == game.River && len(board) >= 5:
		cards = board[4:5]
	default:
		return nil
	}
	return []string{"d db " + cardString(cards)}
}

func cardString(cards []poker.Card) string {
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(c.String())
	}
	return sb.String()
}
