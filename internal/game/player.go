package game

import (
	"github.com/lox/holdemsim/poker"
)

// PlayerState is the engine's view of one seat
type PlayerState struct {
	Seat      int
	Name      string
	Stack     int
	Committed int // Committed on the current street
	TotalBet  int // Committed over the whole hand
	InHand    bool
	AllIn     bool
	Hole      [2]poker.Card
}

// CanAct returns true if the player can still be asked for a decision
func (p *PlayerState) CanAct() bool {
	return p.InHand && !p.AllIn
}

// commit moves chips from the stack into the current street's commitment
func (p *PlayerState) commit(amount int) {
	p.Stack -= amount
	p.Committed += amount
	p.TotalBet += amount
	if p.Stack == 0 && p.InHand {
		p.AllIn = true
	}
}

func (p *PlayerState) resetForHand() {
	p.Committed = 0
	p.TotalBet = 0
	p.AllIn = false
	p.InHand = p.Stack > 0
	p.Hole = [2]poker.Card{}
}
