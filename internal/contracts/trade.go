package contracts

import (
	"errors"
	"time"
)

// Sentinel errors shared across the pipeline.
var (
	// ErrInsufficientHistory marks an instrument with fewer trailing
	// bars than a scorer requires. Recovered per instrument, never
	// fatal to a batch.
	ErrInsufficientHistory = errors.New("insufficient price history")

	// ErrEmptyUniverse marks an evaluation date on which the momentum
	// gate left no candidates. The simulation treats it as a skipped
	// rebalance.
	ErrEmptyUniverse = errors.New("empty universe after momentum gate")

	// ErrNoTrades marks a backtest that produced no closed trades, so
	// summary statistics are undefined.
	ErrNoTrades = errors.New("no closed trades")
)

// Position is an open holding tracked by the simulation engine.
// CurrentPrice is refreshed whenever the symbol is scored on a later
// evaluation date.
type Position struct {
	Symbol       string    `json:"symbol"`
	EntryPrice   float64   `json:"entry_price"`
	CurrentPrice float64   `json:"current_price"`
	EntryDate    time.Time `json:"entry_date"`
	Shares       float64   `json:"shares"`
}

// Trade is an immutable record of one closed round-trip position.
type Trade struct {
	Symbol      string    `json:"symbol"`
	EntryDate   time.Time `json:"entry_date"`
	ExitDate    time.Time `json:"exit_date"`
	EntryPrice  float64   `json:"entry_price"`
	ExitPrice   float64   `json:"exit_price"`
	ReturnPct   float64   `json:"return_pct"`
	HoldingDays int       `json:"holding_days"`
}

// Win reports whether the trade closed with a positive return.
func (t *Trade) Win() bool {
	return t.ReturnPct > 0
}

// BacktestSummary aggregates the full trade log. Recomputable at any
// time from the trades; never stored as source of truth.
type BacktestSummary struct {
	TotalTrades    int     `json:"total_trades"`
	WinningTrades  int     `json:"winning_trades"`
	WinRatePct     float64 `json:"win_rate_pct"`
	AvgReturnPct   float64 `json:"avg_return_pct"`
	StdDevReturns  float64 `json:"std_dev_returns"`
	WorstReturnPct float64 `json:"worst_return_pct"`
	AvgHoldingDays float64 `json:"avg_holding_days"`
	AnnualReturn   float64 `json:"annual_return"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
}
