package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/poker"
)

var ErrDisconnected = errors.New("remote participant disconnected")

// Client is the engine-side stand-in for a participant running elsewhere.
// Transport problems never reach the engine: they are logged and the
// decision becomes 0. After the first failure the client stops talking to
// the remote end.
type Client struct {
	url    string
	conn   *websocket.Conn
	logger *log.Logger

	mu     sync.Mutex
	broken bool
}

// Dial connects to an agent served by Handler
func Dial(ctx context.Context, rawURL string, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid agent URL: %w", err)
	}

	// Ensure WebSocket scheme
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}

	logger.Info("Connecting to agent", "url", u.String())
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", u, err)
	}

	return &Client{url: u.String(), conn: conn, logger: logger}, nil
}

// send writes msg and, when reply is set, waits for the agent's bet
func (c *Client) send(msg *Message, reply bool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broken {
		return 0, ErrDisconnected
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		c.broken = true
		return 0, fmt.Errorf("write %s: %w", msg.Type, err)
	}
	if !reply {
		return 0, nil
	}

	var resp Message
	if err := c.conn.ReadJSON(&resp); err != nil {
		c.broken = true
		return 0, fmt.Errorf("read reply to %s: %w", msg.Type, err)
	}
	if resp.Type != MessageTypeBet {
		return 0, fmt.Errorf("expected %s reply to %s, got %q", MessageTypeBet, msg.Type, resp.Type)
	}
	return resp.Bet, nil
}

func (c *Client) decide(msg *Message) int {
	bet, err := c.send(msg, true)
	if err != nil {
		c.logger.Warn("Remote decision failed, answering 0", "url", c.url, "type", msg.Type, "error", err)
		return 0
	}
	return bet
}

func (c *Client) notify(msg *Message) {
	if _, err := c.send(msg, false); err != nil {
		c.logger.Warn("Failed to notify remote participant", "url", c.url, "type", msg.Type, "error", err)
	}
}

func (c *Client) NewGame(numPlayers, seat int) {
	c.notify(&Message{Type: MessageTypeNewGame, Players: numPlayers, Seat: seat})
}

func (c *Client) Deal(hole [2]poker.Card, history game.BetHistory, pot int) int {
	return c.decide(&Message{Type: MessageTypeDeal, Cards: encodeCards(hole[:]), History: history, Pot: pot})
}

func (c *Client) Flop(board [3]poker.Card, history game.BetHistory, pot int) int {
	return c.decide(&Message{Type: MessageTypeFlop, Cards: encodeCards(board[:]), History: history, Pot: pot})
}

func (c *Client) Turn(card poker.Card, history game.BetHistory, pot int) int {
	return c.decide(&Message{Type: MessageTypeTurn, Cards: []string{card.String()}, History: history, Pot: pot})
}

func (c *Client) River(card poker.Card, history game.BetHistory, pot int) int {
	return c.decide(&Message{Type: MessageTypeRiver, Cards: []string{card.String()}, History: history, Pot: pot})
}

func (c *Client) EndGame(history game.BetHistory, winner int, reveal game.Reveal) {
	c.notify(&Message{Type: MessageTypeEndGame, History: history, Winner: winner, Reveal: encodeReveal(reveal)})
}

// Close says goodbye and closes the connection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.broken = true
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
