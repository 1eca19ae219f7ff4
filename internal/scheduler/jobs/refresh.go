package jobs

import (
	"context"

	"github.com/niveshlabs/quantmomentum/internal/universe"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// MembershipRefreshJob re-scrapes the index constituent list so the
// universe tracks additions and deletions between rebalances.
type MembershipRefreshJob struct {
	provider *universe.Provider
	index    string
	schedule string
	logger   *logger.Logger
}

// NewMembershipRefreshJob creates a membership refresh job.
func NewMembershipRefreshJob(provider *universe.Provider, index, schedule string, log *logger.Logger) *MembershipRefreshJob {
	return &MembershipRefreshJob{
		provider: provider,
		index:    index,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name.
func (j *MembershipRefreshJob) Name() string { return "membership-refresh" }

// Schedule returns the cron expression.
func (j *MembershipRefreshJob) Schedule() string { return j.schedule }

// Run refreshes the constituent list.
func (j *MembershipRefreshJob) Run(ctx context.Context) error {
	symbols, err := j.provider.Refresh(ctx, j.index)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"index":   j.index,
		"symbols": len(symbols),
	}).Info("Membership refresh completed")

	return nil
}
