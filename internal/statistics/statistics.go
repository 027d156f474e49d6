// Package statistics summarises a seat's results over many hands in big
// blinds per hand.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Result is one seat's outcome of a single hand
type Result struct {
	NetBB    float64 // Chips won or lost, in big blinds
	Showdown bool    // The hand was decided by the evaluator
	PotBB    float64 // Final pot, in big blinds
}

// Statistics accumulates results for a single seat
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
	Values []float64

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // Wins and losses at showdown
	NonShowdownBB   float64 // Wins and losses in hands ended by folds
	AllBB           float64

	MaxPotBB float64
}

// Add incorporates a hand
func (s *Statistics) Add(r Result) {
	s.Hands++
	s.SumBB += r.NetBB
	s.SumBB2 += r.NetBB * r.NetBB
	s.Values = append(s.Values, r.NetBB)

	if r.NetBB > 0 {
		if r.Showdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if r.Showdown {
		s.ShowdownBB += r.NetBB
	} else {
		s.NonShowdownBB += r.NetBB
	}
	s.AllBB += r.NetBB

	s.MaxPotBB = max(s.MaxPotBB, r.PotBB)
}

// Mean returns big blinds won per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(0, s.Variance()))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the linearly interpolated value at p (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), s.Values...)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks the showdown and non-showdown buckets add up
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the accumulated figures are consistent
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands != len(s.Values) {
		return fmt.Errorf("hand count mismatch: Hands=%d, len(Values)=%d", s.Hands, len(s.Values))
	}
	if s.ShowdownWins+s.NonShowdownWins > s.Hands {
		return fmt.Errorf("more wins (%d) than hands (%d)", s.ShowdownWins+s.NonShowdownWins, s.Hands)
	}
	return nil
}
