package scoring

import (
	"math"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
)

const (
	// LookbackReturns is the number of trailing daily returns both
	// scorers require.
	LookbackReturns = 252

	// SkipRecentReturns is the number of most recent returns the
	// momentum scorer discards to avoid short-term reversal.
	SkipRecentReturns = 21
)

// MomentumScorer computes the generic momentum signal: the compounded
// 12-month return with the most recent month skipped.
type MomentumScorer struct {
	lookback int
	skip     int
}

// NewMomentumScorer creates a momentum scorer with the given lookback
// and skip windows, both counted in daily returns.
func NewMomentumScorer(lookback, skip int) *MomentumScorer {
	return &MomentumScorer{
		lookback: lookback,
		skip:     skip,
	}
}

// Score computes the momentum value from an ordered close series.
// Returns ErrInsufficientHistory when fewer than lookback trailing
// returns are available, or when the window contains an unusable value.
func (s *MomentumScorer) Score(closes []float64) (float64, error) {
	returns := contracts.DailyReturns(closes)
	if len(returns) < s.lookback {
		return 0, contracts.ErrInsufficientHistory
	}

	// Trailing lookback window, minus the most recent skip returns.
	window := returns[len(returns)-s.lookback : len(returns)-s.skip]

	momentum := 1.0
	for _, r := range window {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return 0, contracts.ErrInsufficientHistory
		}
		momentum *= 1 + r
	}

	return momentum - 1, nil
}
