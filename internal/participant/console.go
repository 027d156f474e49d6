package participant

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	redCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	blackCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// Console is a human at a terminal. It shows the cards and the bets so far
// and reads one integer per decision. Anything that is not an integer, and
// end of input, answers -1, which the engine treats as a check or fold.
type Console struct {
	tracker
	name string
	in   *bufio.Scanner
	out  io.Writer
}

func NewConsole(name string, in io.Reader, out io.Writer) *Console {
	return &Console{name: name, in: bufio.NewScanner(in), out: out}
}

func (c *Console) NewGame(numPlayers, seat int) {
	c.tracker.NewGame(numPlayers, seat)
	fmt.Fprintln(c.out, headerStyle.Render(fmt.Sprintf("New hand: you are seat %d of %d", seat, numPlayers)))
}

func (c *Console) Deal(hole [2]poker.Card, history game.BetHistory, pot int) int {
	c.seeHole(hole)
	return c.prompt(game.Deal, history, pot)
}

func (c *Console) Flop(board [3]poker.Card, history game.BetHistory, pot int) int {
	c.seeFlop(board)
	return c.prompt(game.Flop, history, pot)
}

func (c *Console) Turn(card poker.Card, history game.BetHistory, pot int) int {
	c.seeCard(card, 4)
	return c.prompt(game.Turn, history, pot)
}

func (c *Console) River(card poker.Card, history game.BetHistory, pot int) int {
	c.seeCard(card, 5)
	return c.prompt(game.River, history, pot)
}

func (c *Console) EndGame(history game.BetHistory, winner int, reveal game.Reveal) {
	if winner == c.seat {
		fmt.Fprintln(c.out, winStyle.Render("You win the pot"))
	} else {
		fmt.Fprintf(c.out, "Seat %d wins the pot\n", winner)
	}
	if len(reveal.Board) > 0 {
		fmt.Fprintf(c.out, "Board: %s\n", renderCards(reveal.Board))
	}
	for seat := range c.players {
		if hole, ok := reveal.Hands[seat]; ok {
			fmt.Fprintf(c.out, "Seat %d shows %s\n", seat, renderCards(hole[:]))
		}
	}
	fmt.Fprintln(c.out, dimStyle.Render("Bets: "+formatHistory(history)))
}

func (c *Console) prompt(street game.Street, history game.BetHistory, pot int) int {
	fmt.Fprintln(c.out, headerStyle.Render(fmt.Sprintf("%s %s, pot %d", c.name, street, pot)))
	if street == game.Deal {
		category := poker.CategorizeHoleCards(c.hole[0], c.hole[1])
		fmt.Fprintf(c.out, "Your cards: %s %s\n", renderCards(c.hole[:]), dimStyle.Render("("+string(category)+")"))
	} else {
		fmt.Fprintf(c.out, "Your cards: %s\n", renderCards(c.hole[:]))
	}
	if len(c.board) > 0 {
		fmt.Fprintf(c.out, "Board: %s\n", renderCards(c.board))
	}
	if len(history) > 0 {
		fmt.Fprintln(c.out, dimStyle.Render("Bets: "+formatHistory(history)))
	}
	fmt.Fprint(c.out, "Your total bet for this street (0 to check or fold): ")

	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return -1
	}
	bet, err := strconv.Atoi(strings.TrimSpace(c.in.Text()))
	if err != nil {
		fmt.Fprintln(c.out, warnStyle.Render("Not a number, treating it as check or fold"))
		return -1
	}
	return bet
}

func renderCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		style := blackCardStyle
		if card.Suit.IsRed() {
			style = redCardStyle
		}
		parts[i] = style.Render(card.Symbol())
	}
	return strings.Join(parts, " ")
}

func formatHistory(history game.BetHistory) string {
	streets := make([]string, len(history))
	for i, bets := range history {
		parts := make([]string, len(bets))
		for j, b := range bets {
			parts[j] = strconv.Itoa(b)
		}
		streets[i] = fmt.Sprintf("%s[%s]", game.Street(i), strings.Join(parts, " "))
	}
	return strings.Join(streets, " ")
}
