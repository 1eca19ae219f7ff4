package scoring

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// WindowDays is the trailing calendar window fetched per instrument at
// each evaluation date. Wide enough to cover 252 trading days plus
// weekends and holidays.
const WindowDays = 730

// UniverseScorer scores every instrument in a universe for one
// evaluation date. The bar source is constructor-injected so the same
// scorer serves live screening and backtests.
type UniverseScorer struct {
	momentum *MomentumScorer
	fip      *FIPScorer
	bars     contracts.BarProvider
	workers  int
	logger   *logger.Logger
}

// NewUniverseScorer creates a universe scorer. workers bounds the
// per-date scoring fan-out; values below 1 fall back to 1.
func NewUniverseScorer(
	momentum *MomentumScorer,
	fip *FIPScorer,
	bars contracts.BarProvider,
	workers int,
	log *logger.Logger,
) *UniverseScorer {
	if workers < 1 {
		workers = 1
	}
	return &UniverseScorer{
		momentum: momentum,
		fip:      fip,
		bars:     bars,
		workers:  workers,
		logger:   log,
	}
}

// ScoreUniverse scores all symbols as of date and returns the valid
// scores in universe order. Instruments with insufficient history or a
// failed fetch are skipped; one instrument's failure never blocks or
// cancels its siblings. All workers are joined before returning, so the
// result is complete when ranking starts.
func (s *UniverseScorer) ScoreUniverse(ctx context.Context, symbols []string, date time.Time) []contracts.InstrumentScore {
	// Each worker writes only to its own slot; the join barrier below
	// gathers results without locking.
	slots := make([]*contracts.InstrumentScore, len(symbols))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)

	for i, symbol := range symbols {
		wg.Add(1)
		sem <- struct{}{}

		go func(slot int, symbol string) {
			defer wg.Done()
			defer func() { <-sem }()

			score, err := s.scoreInstrument(ctx, symbol, date)
			if err != nil {
				if !errors.Is(err, contracts.ErrInsufficientHistory) {
					s.logger.WithFields(map[string]interface{}{
						"symbol": symbol,
						"date":   date.Format("2006-01-02"),
						"error":  err.Error(),
					}).Warn("Instrument scoring failed")
				}
				return
			}
			slots[slot] = score
		}(i, symbol)
	}

	wg.Wait()

	scores := make([]contracts.InstrumentScore, 0, len(symbols))
	for _, slot := range slots {
		if slot != nil {
			scores = append(scores, *slot)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"date":    date.Format("2006-01-02"),
		"total":   len(symbols),
		"scored":  len(scores),
		"skipped": len(symbols) - len(scores),
	}).Info("Universe scoring completed")

	return scores
}

// scoreInstrument fetches the trailing window for one symbol and
// computes both signals.
func (s *UniverseScorer) scoreInstrument(ctx context.Context, symbol string, date time.Time) (*contracts.InstrumentScore, error) {
	from := date.AddDate(0, 0, -WindowDays)

	bars, err := s.bars.GetDailyBars(ctx, symbol, from, date)
	if err != nil {
		return nil, err
	}
	if err := contracts.ValidateBars(bars); err != nil {
		return nil, err
	}

	closes := contracts.Closes(bars)

	momentum, err := s.momentum.Score(closes)
	if err != nil {
		return nil, err
	}

	fip, err := s.fip.Score(closes)
	if err != nil {
		return nil, err
	}

	last := bars[len(bars)-1]
	return &contracts.InstrumentScore{
		Symbol:     symbol,
		Momentum:   momentum,
		FIP:        fip,
		LastPrice:  last.Close,
		LastVolume: last.Volume,
		EvalDate:   date,
	}, nil
}
