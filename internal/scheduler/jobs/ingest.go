package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// BarIngestJob pulls daily bars from the remote chart API into the
// local price store. Incremental: each symbol resumes from its latest
// stored bar.
type BarIngestJob struct {
	source   contracts.BarProvider
	store    contracts.PriceRepository
	universe contracts.MembershipProvider
	index    string
	schedule string
	workers  int
	logger   *logger.Logger
}

// NewBarIngestJob creates a bar ingest job.
func NewBarIngestJob(
	source contracts.BarProvider,
	store contracts.PriceRepository,
	universe contracts.MembershipProvider,
	index, schedule string,
	workers int,
	log *logger.Logger,
) *BarIngestJob {
	if workers < 1 {
		workers = 1
	}
	return &BarIngestJob{
		source:   source,
		store:    store,
		universe: universe,
		index:    index,
		schedule: schedule,
		workers:  workers,
		logger:   log,
	}
}

// Name returns the job name.
func (j *BarIngestJob) Name() string { return "bar-ingest" }

// Schedule returns the cron expression.
func (j *BarIngestJob) Schedule() string { return j.schedule }

// Run ingests bars up to today for every universe symbol.
func (j *BarIngestJob) Run(ctx context.Context) error {
	return j.RunRange(ctx, time.Time{}, time.Now().UTC())
}

// RunRange ingests bars within [from, to]. A zero from resumes each
// symbol from the day after its latest stored bar, falling back to
// three years of history for new symbols.
func (j *BarIngestJob) RunRange(ctx context.Context, from, to time.Time) error {
	symbols, err := j.universe.Constituents(ctx, j.index)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, j.workers)

	var mu sync.Mutex
	ingested, failed := 0, 0

	for _, symbol := range symbols {
		wg.Add(1)
		sem <- struct{}{}

		go func(symbol string) {
			defer wg.Done()
			defer func() { <-sem }()

			count, err := j.ingestSymbol(ctx, symbol, from, to)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				j.logger.WithFields(map[string]interface{}{
					"symbol": symbol,
					"error":  err.Error(),
				}).Warn("Bar ingest failed for symbol")
				return
			}
			ingested += count
		}(symbol)
	}

	wg.Wait()

	j.logger.WithFields(map[string]interface{}{
		"symbols":  len(symbols),
		"ingested": ingested,
		"failed":   failed,
	}).Info("Bar ingest completed")

	return nil
}

func (j *BarIngestJob) ingestSymbol(ctx context.Context, symbol string, from, to time.Time) (int, error) {
	if from.IsZero() {
		latest, err := j.store.GetLatestBar(ctx, symbol)
		if err == nil && latest != nil {
			from = latest.Date.AddDate(0, 0, 1)
		} else {
			from = to.AddDate(-3, 0, 0)
		}
	}
	if !from.Before(to) {
		return 0, nil
	}

	bars, err := j.source.GetDailyBars(ctx, symbol, from, to)
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, nil
	}

	if err := j.store.SaveBatch(ctx, symbol, bars); err != nil {
		return 0, err
	}
	return len(bars), nil
}
