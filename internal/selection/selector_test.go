package selection

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

func newTestSelector(cfg Config) *Selector {
	return NewSelector(cfg, NewRanker(logger.NewNop()), logger.NewNop())
}

// spreadScores builds n scores with strictly decreasing momentum and
// increasing FIP, so ordering is fully determined.
func spreadScores(n int) []contracts.InstrumentScore {
	scores := make([]contracts.InstrumentScore, n)
	for i := range scores {
		scores[i] = contracts.InstrumentScore{
			Symbol:    fmt.Sprintf("SYM%03d", i),
			Momentum:  1.0 - float64(i)*0.01,
			FIP:       -0.5 + float64(i)*0.01,
			LastPrice: 100,
		}
	}
	return scores
}

func TestSelector_GateAndSize(t *testing.T) {
	selector := newTestSelector(DefaultConfig())
	date := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	portfolio := selector.Select(spreadScores(100), date)

	require.False(t, portfolio.Empty())
	assert.Equal(t, date, portfolio.Date)

	// 100 candidates, gate 0.90 keeps 90, size caps at 40.
	assert.Equal(t, 40, portfolio.Size())

	for _, c := range portfolio.Candidates {
		assert.LessOrEqual(t, c.MomentumRank, 0.90)
	}

	// Best momentum with smoothest path must come first.
	assert.Equal(t, "SYM000", portfolio.Candidates[0].Symbol)

	// Ordered by combined score descending.
	for i := 1; i < portfolio.Size(); i++ {
		assert.GreaterOrEqual(t,
			portfolio.Candidates[i-1].CombinedScore,
			portfolio.Candidates[i].CombinedScore)
	}
}

func TestSelector_FewerCandidatesThanSize(t *testing.T) {
	selector := newTestSelector(DefaultConfig())

	portfolio := selector.Select(spreadScores(10), time.Now())

	// Gate keeps 9 of 10 (rank 1.0 is excluded); all of them fit.
	assert.Equal(t, 9, portfolio.Size())
}

func TestSelector_EmptyGate(t *testing.T) {
	cfg := DefaultConfig()
	// With 10 candidates the smallest rank is 0.1, so nothing passes.
	cfg.MomentumGate = 0.05
	selector := newTestSelector(cfg)

	portfolio := selector.Select(spreadScores(10), time.Now())
	assert.True(t, portfolio.Empty())
}

func TestSelector_EmptyInput(t *testing.T) {
	selector := newTestSelector(DefaultConfig())

	portfolio := selector.Select(nil, time.Now())
	assert.True(t, portfolio.Empty())
}

func TestSelector_CombinedScoreWeights(t *testing.T) {
	selector := newTestSelector(DefaultConfig())

	scores := []contracts.InstrumentScore{
		{Symbol: "HI-MOM", Momentum: 0.90, FIP: 0.20},
		{Symbol: "SMOOTH", Momentum: 0.60, FIP: -0.40},
		{Symbol: "MID", Momentum: 0.75, FIP: -0.10},
		{Symbol: "LAGGARD", Momentum: 0.10, FIP: 0.30},
	}

	portfolio := selector.Select(scores, time.Now())
	require.Equal(t, 3, portfolio.Size()) // gate drops the worst rank

	// Momentum ranks come from the full set of four; FIP ranks are
	// rebuilt within the three gated names.
	// HI-MOM: mom 0.25, fip 3/3 -> 0.7*0.75 + 0.3*0     = 0.525
	// MID:    mom 0.50, fip 2/3 -> 0.7*0.50 + 0.3*(1/3) = 0.450
	// SMOOTH: mom 0.75, fip 1/3 -> 0.7*0.25 + 0.3*(2/3) = 0.375
	assert.Equal(t, "HI-MOM", portfolio.Candidates[0].Symbol)
	assert.Equal(t, "MID", portfolio.Candidates[1].Symbol)
	assert.Equal(t, "SMOOTH", portfolio.Candidates[2].Symbol)

	assert.InDelta(t, 0.525, portfolio.Candidates[0].CombinedScore, 1e-9)
	assert.InDelta(t, 0.450, portfolio.Candidates[1].CombinedScore, 1e-9)
	assert.InDelta(t, 0.375, portfolio.Candidates[2].CombinedScore, 1e-9)
}

func TestSelector_StableOnTies(t *testing.T) {
	selector := newTestSelector(Config{
		MomentumGate:   1.0,
		PortfolioSize:  4,
		MomentumWeight: 0.70,
		FIPWeight:      0.30,
	})

	// Identical signals: combined scores tie, input order must hold.
	scores := []contracts.InstrumentScore{
		{Symbol: "FIRST", Momentum: 0.5, FIP: 0.1},
		{Symbol: "SECOND", Momentum: 0.5, FIP: 0.1},
		{Symbol: "THIRD", Momentum: 0.5, FIP: 0.1},
	}

	portfolio := selector.Select(scores, time.Now())
	require.Equal(t, 3, portfolio.Size())
	assert.Equal(t, "FIRST", portfolio.Candidates[0].Symbol)
	assert.Equal(t, "SECOND", portfolio.Candidates[1].Symbol)
	assert.Equal(t, "THIRD", portfolio.Candidates[2].Symbol)
}
