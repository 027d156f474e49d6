package main

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdemsim/internal/evaluator"
	"github.com/lox/holdemsim/internal/randutil"
	"github.com/lox/holdemsim/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

type OddsCmd struct {
	Hands         []string `arg:"" help:"Hole cards per player, e.g. 'AcKd' 'QhJs'"`
	Board         string   `short:"b" help:"Community cards (e.g. 'Td7s8h')"`
	Opponents     int      `short:"o" default:"1" help:"Random opponents when a single hand is given"`
	Iterations    int      `short:"i" default:"100000" help:"Number of Monte Carlo iterations"`
	Possibilities bool     `short:"p" help:"Show how often each made hand comes up"`
	Evaluator     string   `default:"treys" help:"Hand evaluator (treys|hankin)"`
	Seed          int64    `help:"Random seed for reproducible results (0 for time based)"`
}

func (c *OddsCmd) Run(g *Globals) error {
	ev, err := evaluator.ByName(c.Evaluator)
	if err != nil {
		return err
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be positive")
	}

	hands, err := parseHands(c.Hands)
	if err != nil {
		return err
	}
	board, err := parseCompact(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if len(board) > 5 {
		return fmt.Errorf("board cannot have more than 5 cards")
	}
	if err := validateNoDuplicates(hands, board); err != nil {
		return err
	}

	rng := randutil.New(randutil.Seed(c.Seed))
	start := time.Now()

	if len(hands) == 1 {
		equity := evaluator.EstimateEquity(ev, hands[0], board, c.Opponents, c.Iterations, rng)
		strength := evaluator.HandStrength(ev, hands[0], board, rng)
		displayEquity(os.Stdout, hands[0], board, c.Opponents, equity, strength)
	} else {
		results := calculateMatchup(ev, hands, board, c.Iterations, rng)
		displayResults(os.Stdout, results, board, c.Possibilities)
	}

	fmt.Printf("\n%d iterations in %v\n", c.Iterations, time.Since(start).Truncate(time.Millisecond))
	return nil
}

type playerResult struct {
	Hand          [2]poker.Card
	Wins          int
	Ties          int
	Total         int
	Possibilities map[string]int
}

// parseCompact parses cards written with or without spaces ("AsKd", "As Kd")
func parseCompact(s string) ([]poker.Card, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid cards %q", s)
	}
	cards := make([]poker.Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := poker.ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func parseHands(handStrings []string) ([][2]poker.Card, error) {
	hands := make([][2]poker.Card, 0, len(handStrings))
	for i, handStr := range handStrings {
		hand, err := parseCompact(handStr)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, [2]poker.Card(hand))
	}
	return hands, nil
}

func validateNoDuplicates(hands [][2]poker.Card, board []poker.Card) error {
	var seen evaluator.CardSet
	for _, card := range board {
		if seen.Contains(card) {
			return fmt.Errorf("duplicate card found: %s", card)
		}
		seen.Add(card)
	}
	for i, hand := range hands {
		for _, card := range hand {
			if seen.Contains(card) {
				return fmt.Errorf("duplicate card found in hand %d: %s", i+1, card)
			}
			seen.Add(card)
		}
	}
	return nil
}

// calculateMatchup deals out the rest of the board many times and counts who
// wins. Lower evaluator scores are stronger.
func calculateMatchup(ev evaluator.Evaluator, hands [][2]poker.Card, board []poker.Card, iterations int, rng *rand.Rand) []playerResult {
	results := make([]playerResult, len(hands))
	var used evaluator.CardSet
	for _, c := range board {
		used.Add(c)
	}
	for i, hand := range hands {
		results[i] = playerResult{Hand: hand, Total: iterations, Possibilities: map[string]int{}}
		used.Add(hand[0])
		used.Add(hand[1])
	}

	var available []poker.Card
	for suit := poker.Spades; suit <= poker.Clubs; suit++ {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			if card := poker.NewCard(rank, suit); !used.Contains(card) {
				available = append(available, card)
			}
		}
	}

	need := 5 - len(board)
	var full [5]poker.Card
	copy(full[:], board)
	scores := make([]int, len(hands))

	for range iterations {
		// Partial Fisher-Yates over the undealt cards
		for j := range need {
			k := j + rng.IntN(len(available)-j)
			available[j], available[k] = available[k], available[j]
			full[len(board)+j] = available[j]
		}

		best := 0
		for i, hand := range hands {
			scores[i] = ev.Evaluate(full, hand)
			if i == 0 || scores[i] < best {
				best = scores[i]
			}
			results[i].Possibilities[ev.Describe(full, hand)]++
		}

		winners := 0
		for _, s := range scores {
			if s == best {
				winners++
			}
		}
		for i, s := range scores {
			if s != best {
				continue
			}
			if winners == 1 {
				results[i].Wins++
			} else {
				results[i].Ties++
			}
		}
	}
	return results
}

func displayEquity(out io.Writer, hand [2]poker.Card, board []poker.Card, opponents int, equity float64, strength int) {
	if len(board) > 0 {
		fmt.Fprintf(out, "%s\n%s\n\n", headerStyle.Render("board"), poker.FormatCards(board))
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render(fmt.Sprintf("equity vs %d", opponents)),
		headerStyle.Render("strength"))
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		handStyle.Render(poker.FormatCards(hand[:])),
		winStyle.Render(fmt.Sprintf("%.1f%%", equity*100)),
		tieStyle.Render(fmt.Sprintf("%d/100", strength)))
	w.Flush()
}

func displayResults(out io.Writer, results []playerResult, board []poker.Card, showPossibilities bool) {
	if len(board) > 0 {
		fmt.Fprintf(out, "%s\n%s\n\n", headerStyle.Render("board"), poker.FormatCards(board))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"))
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			handStyle.Render(poker.FormatCards(r.Hand[:])),
			winStyle.Render(fmt.Sprintf("%.1f%%", pct(r.Wins, r.Total))),
			tieStyle.Render(fmt.Sprintf("%.1f%%", pct(r.Ties, r.Total))))
	}
	w.Flush()

	if showPossibilities && len(results) > 0 {
		fmt.Fprintln(out)
		displayPossibilities(out, results)
	}
}

func displayPossibilities(out io.Writer, results []playerResult) {
	totals := map[string]int{}
	for _, r := range results {
		for kind, n := range r.Possibilities {
			totals[kind] += n
		}
	}
	kinds := make([]string, 0, len(totals))
	for kind := range totals {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if totals[kinds[i]] != totals[kinds[j]] {
			return totals[kinds[i]] > totals[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s", categoryStyle.Render("hand"))
	for _, r := range results {
		fmt.Fprintf(w, "\t%s", handStyle.Render(poker.FormatCards(r.Hand[:])))
	}
	fmt.Fprintln(w)

	for _, kind := range kinds {
		fmt.Fprintf(w, "%s", categoryStyle.Render(kind))
		for _, r := range results {
			if n := r.Possibilities[kind]; n > 0 {
				fmt.Fprintf(w, "\t%s", percentStyle.Render(fmt.Sprintf("%.1f%%", pct(n, r.Total))))
			} else {
				fmt.Fprintf(w, "\t%s", percentStyle.Render("."))
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func pct(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}
