package scoring

import (
	"math"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
)

// FIPScorer computes the Frog-in-Pan momentum quality signal:
// the fraction of positive days minus the fraction of negative days
// over the trailing lookback window. Days with exactly zero return
// count toward neither side. Lower values indicate a smoother path and
// are preferred.
type FIPScorer struct {
	lookback int
}

// NewFIPScorer creates a FIP scorer with the given lookback window,
// counted in daily returns.
func NewFIPScorer(lookback int) *FIPScorer {
	return &FIPScorer{lookback: lookback}
}

// Score computes the FIP value from an ordered close series. Returns
// ErrInsufficientHistory under the same minimum as the momentum scorer.
func (s *FIPScorer) Score(closes []float64) (float64, error) {
	returns := contracts.DailyReturns(closes)
	if len(returns) < s.lookback {
		return 0, contracts.ErrInsufficientHistory
	}

	window := returns[len(returns)-s.lookback:]

	positive := 0
	negative := 0
	for _, r := range window {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return 0, contracts.ErrInsufficientHistory
		}
		switch {
		case r > 0:
			positive++
		case r < 0:
			negative++
		}
	}

	n := float64(len(window))
	return float64(positive)/n - float64(negative)/n, nil
}
