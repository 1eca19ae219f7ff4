// Package backtest replays the screening pipeline over historical
// rebalance dates and simulates the resulting trades.
package backtest

import (
	"context"
	"sort"
	"time"

	"github.com/niveshlabs/quantmomentum/internal/calendar"
	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/internal/scoring"
	"github.com/niveshlabs/quantmomentum/internal/selection"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// Config holds simulation parameters.
type Config struct {
	// InitialCapital is split equally across PortfolioSize slots to size
	// each position, regardless of how many names actually qualify.
	InitialCapital float64

	// PortfolioSize is the slot count used for position sizing. It
	// normally matches the selector's portfolio size.
	PortfolioSize int

	// CloseTailPositions forces positions still open after the final
	// rebalance to be closed at their last known price. When false they
	// are reported as open and excluded from trade statistics.
	CloseTailPositions bool
}

// Result is the full output of one simulation run.
type Result struct {
	Trades        []contracts.Trade      `json:"trades"`
	OpenPositions []contracts.Position   `json:"open_positions"`
	Portfolios    []*contracts.Portfolio `json:"portfolios"`
	Start         time.Time              `json:"start"`
	End           time.Time              `json:"end"`
}

// Engine runs the rebalance-by-rebalance simulation. Dates are
// processed strictly in order; each date's trades depend on the
// positions left by the previous one.
type Engine struct {
	config   Config
	schedule calendar.Schedule
	scorer   *scoring.UniverseScorer
	selector *selection.Selector
	universe contracts.MembershipProvider
	index    string
	logger   *logger.Logger
}

// NewEngine creates a simulation engine.
func NewEngine(
	config Config,
	schedule calendar.Schedule,
	scorer *scoring.UniverseScorer,
	selector *selection.Selector,
	universe contracts.MembershipProvider,
	index string,
	log *logger.Logger,
) *Engine {
	return &Engine{
		config:   config,
		schedule: schedule,
		scorer:   scorer,
		selector: selector,
		universe: universe,
		index:    index,
		logger:   log,
	}
}

// Run simulates every rebalance date in [start, end]. Dates on which
// the momentum gate leaves no candidates are skipped entirely: open
// positions are carried through untouched and no trades occur.
func (e *Engine) Run(ctx context.Context, start, end time.Time) (*Result, error) {
	dates := e.schedule.Dates(start, end)

	symbols, err := e.universe.Constituents(ctx, e.index)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(map[string]interface{}{
		"start":      start.Format("2006-01-02"),
		"end":        end.Format("2006-01-02"),
		"rebalances": len(dates),
		"universe":   len(symbols),
	}).Info("Backtest started")

	result := &Result{Start: start, End: end}
	positions := make(map[string]*contracts.Position)

	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scores := e.scorer.ScoreUniverse(ctx, symbols, date)
		portfolio := e.selector.Select(scores, date)

		if portfolio.Empty() {
			e.logger.WithFields(map[string]interface{}{
				"date": date.Format("2006-01-02"),
			}).Warn("Rebalance skipped: no qualifying candidates")
			continue
		}

		result.Portfolios = append(result.Portfolios, portfolio)

		// Refresh marks before closing so exits use this date's prices
		// wherever the instrument was scored.
		refreshPrices(positions, scores)

		for _, symbol := range sortedSymbols(positions) {
			result.Trades = append(result.Trades, closePosition(positions[symbol], date))
		}
		positions = make(map[string]*contracts.Position)

		slotCapital := e.config.InitialCapital / float64(e.config.PortfolioSize)
		for _, c := range portfolio.Candidates {
			positions[c.Symbol] = &contracts.Position{
				Symbol:       c.Symbol,
				EntryPrice:   c.LastPrice,
				CurrentPrice: c.LastPrice,
				EntryDate:    date,
				Shares:       slotCapital / c.LastPrice,
			}
		}

		e.logger.WithFields(map[string]interface{}{
			"date":   date.Format("2006-01-02"),
			"opened": len(positions),
			"trades": len(result.Trades),
		}).Info("Rebalance completed")
	}

	if e.config.CloseTailPositions {
		for _, symbol := range sortedSymbols(positions) {
			result.Trades = append(result.Trades, closePosition(positions[symbol], end))
		}
	} else {
		for _, symbol := range sortedSymbols(positions) {
			result.OpenPositions = append(result.OpenPositions, *positions[symbol])
		}
	}

	e.logger.WithFields(map[string]interface{}{
		"trades": len(result.Trades),
		"open":   len(result.OpenPositions),
	}).Info("Backtest completed")

	return result, nil
}

// sortedSymbols keeps trade-log order reproducible across runs; map
// iteration order would shuffle it.
func sortedSymbols(positions map[string]*contracts.Position) []string {
	symbols := make([]string, 0, len(positions))
	for symbol := range positions {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// refreshPrices updates each open position's mark from the scores of
// the current evaluation date. Symbols absent from the scored set keep
// their last known price.
func refreshPrices(positions map[string]*contracts.Position, scores []contracts.InstrumentScore) {
	for _, s := range scores {
		if pos, ok := positions[s.Symbol]; ok {
			pos.CurrentPrice = s.LastPrice
		}
	}
}

// closePosition converts an open position into a closed trade record
// at its last known price.
func closePosition(pos *contracts.Position, exitDate time.Time) contracts.Trade {
	return contracts.Trade{
		Symbol:      pos.Symbol,
		EntryDate:   pos.EntryDate,
		ExitDate:    exitDate,
		EntryPrice:  pos.EntryPrice,
		ExitPrice:   pos.CurrentPrice,
		ReturnPct:   (pos.CurrentPrice - pos.EntryPrice) / pos.EntryPrice * 100,
		HoldingDays: int(exitDate.Sub(pos.EntryDate).Hours() / 24),
	}
}
