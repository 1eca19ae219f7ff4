package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

func TestFractionalRank_Descending(t *testing.T) {
	// Largest value gets the rank nearest zero.
	ranks := FractionalRank([]float64{0.10, 0.30, 0.20}, true)

	require.Len(t, ranks, 3)
	assert.InDelta(t, 3.0/3.0, ranks[0], 1e-12) // smallest, worst
	assert.InDelta(t, 1.0/3.0, ranks[1], 1e-12) // largest, best
	assert.InDelta(t, 2.0/3.0, ranks[2], 1e-12)
}

func TestFractionalRank_Ascending(t *testing.T) {
	ranks := FractionalRank([]float64{0.10, 0.30, 0.20}, false)

	require.Len(t, ranks, 3)
	assert.InDelta(t, 1.0/3.0, ranks[0], 1e-12) // smallest, best
	assert.InDelta(t, 3.0/3.0, ranks[1], 1e-12)
	assert.InDelta(t, 2.0/3.0, ranks[2], 1e-12)
}

func TestFractionalRank_AverageTies(t *testing.T) {
	// Descending over {30, 20, 20, 10}: the tied 20s take ordinal
	// ranks 2 and 3, averaged to 2.5.
	ranks := FractionalRank([]float64{10, 20, 20, 30}, true)

	require.Len(t, ranks, 4)
	assert.InDelta(t, 1.000, ranks[0], 1e-12)
	assert.InDelta(t, 0.625, ranks[1], 1e-12)
	assert.InDelta(t, 0.625, ranks[2], 1e-12)
	assert.InDelta(t, 0.250, ranks[3], 1e-12)
}

func TestFractionalRank_AllEqual(t *testing.T) {
	// Four identical values share the average ordinal (1+2+3+4)/4 = 2.5.
	ranks := FractionalRank([]float64{5, 5, 5, 5}, true)

	for _, r := range ranks {
		assert.InDelta(t, 0.625, r, 1e-12)
	}
}

func TestFractionalRank_Bounds(t *testing.T) {
	values := []float64{-0.5, 0.0, 0.1, 0.1, 2.4, -0.5, 1.0}
	ranks := FractionalRank(values, true)

	for _, r := range ranks {
		assert.Greater(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}

	assert.Nil(t, FractionalRank(nil, true))
}

func TestRanker_MomentumAndFIP(t *testing.T) {
	ranker := NewRanker(logger.NewNop())

	scores := []contracts.InstrumentScore{
		{Symbol: "AAA", Momentum: 0.80, FIP: -0.30},
		{Symbol: "BBB", Momentum: 0.20, FIP: 0.10},
		{Symbol: "CCC", Momentum: 0.50, FIP: -0.50},
	}

	candidates := ranker.RankMomentum(scores)
	require.Len(t, candidates, 3)

	// AAA has the best momentum, CCC next, BBB worst.
	assert.InDelta(t, 1.0/3.0, candidates[0].MomentumRank, 1e-12)
	assert.InDelta(t, 3.0/3.0, candidates[1].MomentumRank, 1e-12)
	assert.InDelta(t, 2.0/3.0, candidates[2].MomentumRank, 1e-12)

	ranker.RankFIP(candidates)

	// Lower FIP is smoother and ranks nearer zero: CCC, AAA, BBB.
	assert.InDelta(t, 2.0/3.0, candidates[0].FIPRank, 1e-12)
	assert.InDelta(t, 3.0/3.0, candidates[1].FIPRank, 1e-12)
	assert.InDelta(t, 1.0/3.0, candidates[2].FIPRank, 1e-12)
}
