package backtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
)

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, contracts.ErrNoTrades)

	_, err = Summarize([]contracts.Trade{})
	assert.ErrorIs(t, err, contracts.ErrNoTrades)
}

func TestSummarize_Statistics(t *testing.T) {
	trades := []contracts.Trade{
		{Symbol: "AAA", ReturnPct: 10, HoldingDays: 90},
		{Symbol: "BBB", ReturnPct: -5, HoldingDays: 90},
		{Symbol: "CCC", ReturnPct: 20, HoldingDays: 90},
		{Symbol: "DDD", ReturnPct: -1, HoldingDays: 90},
	}

	summary, err := Summarize(trades)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalTrades)
	assert.Equal(t, 2, summary.WinningTrades)
	assert.InDelta(t, 50.0, summary.WinRatePct, 1e-12)
	assert.InDelta(t, 6.0, summary.AvgReturnPct, 1e-12)
	assert.InDelta(t, -5.0, summary.WorstReturnPct, 1e-12)
	assert.InDelta(t, 90.0, summary.AvgHoldingDays, 1e-12)

	// Sample standard deviation of {10, -5, 20, -1}.
	expectedStd := math.Sqrt((16 + 121 + 196 + 49) / 3.0)
	assert.InDelta(t, expectedStd, summary.StdDevReturns, 1e-9)

	expectedAnnual := 6.0 * (252.0 / 90.0)
	assert.InDelta(t, expectedAnnual, summary.AnnualReturn, 1e-9)

	expectedSharpe := expectedAnnual / (expectedStd + 1e-6) * math.Sqrt(252)
	assert.InDelta(t, expectedSharpe, summary.SharpeRatio, 1e-9)
}

func TestSummarize_ZeroReturnIsNotWin(t *testing.T) {
	summary, err := Summarize([]contracts.Trade{
		{Symbol: "AAA", ReturnPct: 0, HoldingDays: 90},
		{Symbol: "BBB", ReturnPct: 1, HoldingDays: 90},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.WinningTrades)
	assert.InDelta(t, 50.0, summary.WinRatePct, 1e-12)
	assert.InDelta(t, 0.0, summary.WorstReturnPct, 1e-12)
}

func TestSummarize_IdenticalReturns(t *testing.T) {
	// Zero variance: the epsilon keeps the Sharpe denominator finite.
	summary, err := Summarize([]contracts.Trade{
		{ReturnPct: 5, HoldingDays: 90},
		{ReturnPct: 5, HoldingDays: 90},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, summary.StdDevReturns, 1e-12)
	assert.False(t, math.IsInf(summary.SharpeRatio, 0))
	assert.False(t, math.IsNaN(summary.SharpeRatio))
}
