package simulator

import (
	"fmt"
	"io"

	"github.com/lox/holdemsim/internal/statistics"
)

// Stats summarises a batch of hands
type Stats struct {
	Hands     int
	Showdowns int
	FoldWins  int
	BigBlind  int
	Seats     []SeatStats
}

// SeatStats is one seat's record over the batch
type SeatStats struct {
	Name string
	Wins int
	Net  int // Chips won or lost
	BB   statistics.Statistics
}

func newStats(config Config) *Stats {
	s := &Stats{BigBlind: config.BigBlind, Seats: make([]SeatStats, len(config.Seats))}
	for i, spec := range config.Seats {
		s.Seats[i].Name = spec.Name
	}
	return s
}

func (s *Stats) add(o outcome) {
	s.Hands++
	if o.showdown {
		s.Showdowns++
	} else {
		s.FoldWins++
	}

	potBB := float64(o.pot) / float64(s.BigBlind)
	for seat, net := range o.net {
		st := &s.Seats[seat]
		if seat == o.winner {
			st.Wins++
		}
		st.Net += net
		st.BB.Add(statistics.Result{
			NetBB:    float64(net) / float64(s.BigBlind),
			Showdown: o.showdown,
			PotBB:    potBB,
		})
	}
}

// Validate checks chips were conserved across the batch
func (s *Stats) Validate() error {
	if s.Showdowns+s.FoldWins != s.Hands {
		return fmt.Errorf("showdowns (%d) and fold wins (%d) do not add up to %d hands", s.Showdowns, s.FoldWins, s.Hands)
	}

	net, wins := 0, 0
	for _, seat := range s.Seats {
		net += seat.Net
		wins += seat.Wins
		if err := seat.BB.Validate(); err != nil {
			return fmt.Errorf("seat %s: %w", seat.Name, err)
		}
	}
	if net != 0 {
		return fmt.Errorf("chips not conserved: seats are %+d overall", net)
	}
	if wins != s.Hands {
		return fmt.Errorf("%d wins recorded for %d hands", wins, s.Hands)
	}
	return nil
}

// PrintSummary writes a report of the batch
func PrintSummary(w io.Writer, s *Stats) {
	fmt.Fprintf(w, "\n=== RESULTS ===\n")
	fmt.Fprintf(w, "Hands played: %d\n", s.Hands)
	if s.Hands > 0 {
		fmt.Fprintf(w, "Showdowns: %d (%.1f%%), won by folds: %d (%.1f%%)\n",
			s.Showdowns, pct(s.Showdowns, s.Hands), s.FoldWins, pct(s.FoldWins, s.Hands))
	}

	fmt.Fprintf(w, "\n=== SEATS ===\n")
	for i, seat := range s.Seats {
		low, high := seat.BB.ConfidenceInterval95()
		fmt.Fprintf(w, "Seat %d %-12s wins %5d (%5.1f%%)  net %+8d  %+.3f bb/hand  95%% CI [%.3f, %.3f]\n",
			i, seat.Name, seat.Wins, pct(seat.Wins, s.Hands), seat.Net, seat.BB.Mean(), low, high)
	}
}

func pct(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}
