// Package remote carries the participant contract over a websocket so an
// agent can run in another process. The engine side is Client, which is a
// game.Participant; the agent side is Handler, which serves any
// game.Participant.
package remote

import (
	"fmt"
	"strconv"

	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/poker"
)

// MessageType names a wire message
type MessageType string

const (
	MessageTypeNewGame MessageType = "new_game"
	MessageTypeDeal    MessageType = "deal"
	MessageTypeFlop    MessageType = "flop"
	MessageTypeTurn    MessageType = "turn"
	MessageTypeRiver   MessageType = "river"
	MessageTypeEndGame MessageType = "end_game"
	MessageTypeBet     MessageType = "bet"
)

// Message is the single JSON envelope used in both directions. Cards use the
// canonical two-character encoding.
type Message struct {
	Type    MessageType     `json:"type"`
	Seat    int             `json:"seat,omitempty"`
	Players int             `json:"players,omitempty"`
	Cards   []string        `json:"cards,omitempty"`
	History game.BetHistory `json:"history,omitempty"`
	Pot     int             `json:"pot,omitempty"`
	Winner  int             `json:"winner,omitempty"`
	Reveal  *RevealMessage  `json:"reveal,omitempty"`
	Bet     int             `json:"bet,omitempty"`
}

// RevealMessage is game.Reveal on the wire. JSON object keys are strings,
// so hands are keyed by seat number in decimal.
type RevealMessage struct {
	Board []string            `json:"board"`
	Hands map[string][]string `json:"hands"`
}

func encodeCards(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func decodeCards(in []string, want int) ([]poker.Card, error) {
	if want >= 0 && len(in) != want {
		return nil, fmt.Errorf("expected %d cards, got %d", want, len(in))
	}
	out := make([]poker.Card, len(in))
	for i, s := range in {
		c, err := poker.ParseCard(s)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func encodeReveal(r game.Reveal) *RevealMessage {
	msg := &RevealMessage{
		Board: encodeCards(r.Board),
		Hands: make(map[string][]string, len(r.Hands)),
	}
	for seat, hole := range r.Hands {
		msg.Hands[strconv.Itoa(seat)] = encodeCards(hole[:])
	}
	return msg
}

func decodeReveal(msg *RevealMessage) (game.Reveal, error) {
	r := game.Reveal{Hands: map[int][2]poker.Card{}}
	if msg == nil {
		return r, nil
	}
	board, err := decodeCards(msg.Board, -1)
	if err != nil {
		return r, fmt.Errorf("reveal board: %w", err)
	}
	r.Board = board
	for key, cards := range msg.Hands {
		seat, err := strconv.Atoi(key)
		if err != nil {
			return r, fmt.Errorf("reveal seat %q: %w", key, err)
		}
		hole, err := decodeCards(cards, 2)
		if err != nil {
			return r, fmt.Errorf("reveal seat %d: %w", seat, err)
		}
		r.Hands[seat] = [2]poker.Card(hole)
	}
	return r, nil
}
