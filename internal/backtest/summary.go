package backtest

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
)

const (
	tradingDaysPerYear = 252.0

	// sharpeEpsilon guards the Sharpe denominator when all returns are
	// identical.
	sharpeEpsilon = 1e-6
)

// Summarize aggregates a trade log into summary statistics. Returns
// ErrNoTrades on an empty log: every statistic would be undefined.
func Summarize(trades []contracts.Trade) (*contracts.BacktestSummary, error) {
	if len(trades) == 0 {
		return nil, contracts.ErrNoTrades
	}

	returns := make([]float64, len(trades))
	holdings := make([]float64, len(trades))
	wins := 0
	worst := trades[0].ReturnPct

	for i, t := range trades {
		returns[i] = t.ReturnPct
		holdings[i] = float64(t.HoldingDays)
		if t.Win() {
			wins++
		}
		if t.ReturnPct < worst {
			worst = t.ReturnPct
		}
	}

	mean := stat.Mean(returns, nil)
	std := stat.StdDev(returns, nil)
	meanHolding := stat.Mean(holdings, nil)

	summary := &contracts.BacktestSummary{
		TotalTrades:    len(trades),
		WinningTrades:  wins,
		WinRatePct:     float64(wins) / float64(len(trades)) * 100,
		AvgReturnPct:   mean,
		StdDevReturns:  std,
		WorstReturnPct: worst,
		AvgHoldingDays: meanHolding,
	}

	if meanHolding > 0 {
		summary.AnnualReturn = mean * (tradingDaysPerYear / meanHolding)
		summary.SharpeRatio = summary.AnnualReturn / (std + sharpeEpsilon) *
			math.Sqrt(tradingDaysPerYear)
	}

	return summary, nil
}
