package remote

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/poker"
)

// Factory builds the participant that serves one connection
type Factory func() game.Participant

// Handler serves participants over websocket, one per connection
type Handler struct {
	factory  Factory
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHandler(factory Factory, logger *log.Logger) *Handler {
	return &Handler{
		factory: factory,
		logger:  logger.WithPrefix("agent"),
		upgrader: websocket.Upgrader{
			// Agents are driven by an engine process, not a browser
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	h.logger.Info("Engine connected", "remote", r.RemoteAddr)
	p := h.factory()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("Connection lost", "remote", r.RemoteAddr, "error", err)
			} else {
				h.logger.Info("Engine disconnected", "remote", r.RemoteAddr)
			}
			return
		}

		bet, reply, err := dispatch(p, &msg)
		if err != nil {
			h.logger.Error("Bad message from engine", "type", msg.Type, "error", err)
		}
		if !reply {
			continue
		}
		if err := conn.WriteJSON(&Message{Type: MessageTypeBet, Bet: bet}); err != nil {
			h.logger.Error("Failed to send bet", "error", err)
			return
		}
	}
}

// dispatch hands one message to p. reply reports whether the engine is
// waiting for a bet.
func dispatch(p game.Participant, msg *Message) (bet int, reply bool, err error) {
	switch msg.Type {
	case MessageTypeNewGame:
		p.NewGame(msg.Players, msg.Seat)
		return 0, false, nil

	case MessageTypeEndGame:
		reveal, err := decodeReveal(msg.Reveal)
		if err != nil {
			return 0, false, err
		}
		p.EndGame(msg.History, msg.Winner, reveal)
		return 0, false, nil

	case MessageTypeDeal:
		cards, err := decodeCards(msg.Cards, 2)
		if err != nil {
			return 0, true, err
		}
		return p.Deal([2]poker.Card(cards), msg.History, msg.Pot), true, nil

	case MessageTypeFlop:
		cards, err := decodeCards(msg.Cards, 3)
		if err != nil {
			return 0, true, err
		}
		return p.Flop([3]poker.Card(cards), msg.History, msg.Pot), true, nil

	case MessageTypeTurn, MessageTypeRiver:
		cards, err := decodeCards(msg.Cards, 1)
		if err != nil {
			return 0, true, err
		}
		if msg.Type == MessageTypeTurn {
			return p.Turn(cards[0], msg.History, msg.Pot), true, nil
		}
		return p.River(cards[0], msg.History, msg.Pot), true, nil

	case "":
		return 0, false, errors.New("message without type")

	default:
		return 0, false, fmt.Errorf("unknown message type %q", msg.Type)
	}
}
