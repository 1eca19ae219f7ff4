// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"
	"time"

	"github.com/niveshlabs/quantmomentum/internal/calendar"
	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/internal/scoring"
	"github.com/niveshlabs/quantmomentum/internal/selection"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// ScreeningJob runs the full screening pipeline after the close of a
// rebalance date: score the universe, select the portfolio, persist
// the snapshot and report turnover against the previous one.
type ScreeningJob struct {
	scorer     *scoring.UniverseScorer
	selector   *selection.Selector
	universe   contracts.MembershipProvider
	portfolios contracts.PortfolioRepository
	rebalances calendar.Schedule
	index      string
	schedule   string
	logger     *logger.Logger
}

// NewScreeningJob creates a screening job. schedule is a cron
// expression with seconds, typically the evening of every day; the
// job itself skips non-rebalance dates.
func NewScreeningJob(
	scorer *scoring.UniverseScorer,
	selector *selection.Selector,
	universe contracts.MembershipProvider,
	portfolios contracts.PortfolioRepository,
	rebalances calendar.Schedule,
	index string,
	schedule string,
	log *logger.Logger,
) *ScreeningJob {
	return &ScreeningJob{
		scorer:     scorer,
		selector:   selector,
		universe:   universe,
		portfolios: portfolios,
		rebalances: rebalances,
		index:      index,
		schedule:   schedule,
		logger:     log,
	}
}

// Name returns the job name.
func (j *ScreeningJob) Name() string { return "screening" }

// Schedule returns the cron expression.
func (j *ScreeningJob) Schedule() string { return j.schedule }

// Run executes the screening pipeline for today. Non-rebalance dates
// are a no-op.
func (j *ScreeningJob) Run(ctx context.Context) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	if !j.rebalances.Contains(today) {
		j.logger.WithField("date", today.Format("2006-01-02")).
			Debug("Not a rebalance date, skipping screening")
		return nil
	}

	return j.RunForDate(ctx, today)
}

// RunForDate executes the pipeline for an explicit date. Used by the
// scheduled run and by the CLI screen command.
func (j *ScreeningJob) RunForDate(ctx context.Context, date time.Time) error {
	symbols, err := j.universe.Constituents(ctx, j.index)
	if err != nil {
		return err
	}
	if len(symbols) == 0 {
		return contracts.ErrEmptyUniverse
	}

	scores := j.scorer.ScoreUniverse(ctx, symbols, date)
	portfolio := j.selector.Select(scores, date)

	if portfolio.Empty() {
		j.logger.WithField("date", date.Format("2006-01-02")).
			Warn("Screening produced an empty portfolio, snapshot not saved")
		return nil
	}

	previous, err := j.portfolios.GetLatest(ctx)
	if err != nil {
		return err
	}

	if err := j.portfolios.SaveSnapshot(ctx, portfolio); err != nil {
		return err
	}

	turnover := selection.ComputeTurnover(previous, portfolio)
	j.logger.WithFields(map[string]interface{}{
		"date":         date.Format("2006-01-02"),
		"selected":     portfolio.Size(),
		"entering":     len(turnover.Entering),
		"exiting":      len(turnover.Exiting),
		"continuing":   len(turnover.Continuing),
		"turnover_pct": turnover.TurnoverPct,
	}).Info("Screening snapshot saved")

	return nil
}
