package participant

import (
	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/poker"
)

// Caller is a calling station: it matches whatever it sees and never raises
type Caller struct {
	tracker
	bigBlind int
}

func NewCaller(bigBlind int) *Caller {
	return &Caller{bigBlind: bigBlind}
}

func (c *Caller) Deal(hole [2]poker.Card, history game.BetHistory, _ int) int {
	c.seeHole(hole)
	return toCall(history, c.bigBlind)
}

func (c *Caller) Flop(board [3]poker.Card, history game.BetHistory, _ int) int {
	c.seeFlop(board)
	return highestBet(history)
}

func (c *Caller) Turn(card poker.Card, history game.BetHistory, _ int) int {
	c.seeCard(card, 4)
	return highestBet(history)
}

func (c *Caller) River(card poker.Card, history game.BetHistory, _ int) int {
	c.seeCard(card, 5)
	return highestBet(history)
}
