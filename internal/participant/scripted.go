package participant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/poker"
)

// Scripted replays fixed bets per street. Each time the seat is asked on a
// street it takes the next bet from that street's queue; an exhausted queue
// answers 0. The queues restart every hand.
type Scripted struct {
	tracker
	bets [4][]int
	next [4]int
}

func NewScripted(bets Bets) *Scripted {
	return &Scripted{bets: [4][]int{bets.Deal, bets.Flop, bets.Turn, bets.River}}
}

func (s *Scripted) NewGame(numPlayers, seat int) {
	s.tracker.NewGame(numPlayers, seat)
	s.next = [4]int{}
}

func (s *Scripted) take(street game.Street) int {
	queue := s.bets[street]
	if s.next[street] >= len(queue) {
		return 0
	}
	bet := queue[s.next[street]]
	s.next[street]++
	return bet
}

func (s *Scripted) Deal(hole [2]poker.Card, _ game.BetHistory, _ int) int {
	s.seeHole(hole)
	return s.take(game.Deal)
}

func (s *Scripted) Flop(board [3]poker.Card, _ game.BetHistory, _ int) int {
	s.seeFlop(board)
	return s.take(game.Flop)
}

func (s *Scripted) Turn(card poker.Card, _ game.BetHistory, _ int) int {
	s.seeCard(card, 4)
	return s.take(game.Turn)
}

func (s *Scripted) River(card poker.Card, _ game.BetHistory, _ int) int {
	s.seeCard(card, 5)
	return s.take(game.River)
}

// ParseScript reads the compact script form used on the command line:
// streets separated by "/" and repeated bets within a street by ",".
// "100,300/0/0/200" bets 100 then 300 pre-flop, checks the flop and turn and
// bets 200 on the river. Missing streets are empty.
func ParseScript(s string) (Bets, error) {
	var out [4][]int
	streets := strings.Split(s, "/")
	if len(streets) > 4 {
		return Bets{}, fmt.Errorf("script %q has %d streets, at most 4 allowed", s, len(streets))
	}
	for i, street := range streets {
		if strings.TrimSpace(street) == "" {
			continue
		}
		for _, field := range strings.Split(street, ",") {
			bet, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return Bets{}, fmt.Errorf("script %q: street %d: %w", s, i+1, err)
			}
			out[i] = append(out[i], bet)
		}
	}
	return Bets{Deal: out[0], Flop: out[1], Turn: out[2], River: out[3]}, nil
}
