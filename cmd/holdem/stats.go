package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/holdemsim/internal/store"
)

type StatsCmd struct {
	Database string `arg:"" type:"existingfile" help:"SQLite hand database written by play or simulate"`
	Hand     string `help:"Show a single hand instead of the totals"`
}

func (c *StatsCmd) Run(g *Globals) error {
	db, err := store.Open(c.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if c.Hand != "" {
		return c.showHand(db)
	}

	hands, err := db.Hands()
	if err != nil {
		return err
	}
	results, err := db.NetResults()
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", headerStyle.Render(fmt.Sprintf("%d hands", hands)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "player\thands\twins\tnet\n")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%+d\n", r.Name, r.Hands, r.Wins, r.Net)
	}
	return w.Flush()
}

func (c *StatsCmd) showHand(db *store.Store) error {
	h, err := db.Hand(c.Hand)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", headerStyle.Render("Hand "+h.ID))
	fmt.Printf("Started %s, blinds %d/%d, pot %d\n", h.StartedAt.Format("2006-01-02 15:04:05"), h.SmallBlind, h.BigBlind, h.Pot)
	if h.Board != "" {
		fmt.Printf("Board: %s\n", h.Board)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range h.Seats {
		marker := ""
		if s.Won {
			marker = "winner"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%+d\t%s\n", s.Seat, s.Name, s.Hole, s.FinalStack, s.FinalStack-s.StartingStack, marker)
	}
	w.Flush()
	fmt.Printf("Bets: %s\n", formatHistory(h.History))
	return nil
}
