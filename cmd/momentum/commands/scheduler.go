package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/niveshlabs/quantmomentum/internal/scheduler"
	"github.com/niveshlabs/quantmomentum/internal/scheduler/jobs"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the job scheduler",
	Long: `Starts the cron scheduler with the standard jobs:

  bar-ingest           daily bar ingest after market close
  screening            portfolio screening on rebalance dates
  membership-refresh   weekly constituent list refresh

Example:
  go run ./cmd/momentum scheduler`,
	RunE: runScheduler,
}

var (
	ingestSchedule     string
	screeningSchedule  string
	membershipSchedule string
)

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().StringVar(&ingestSchedule, "ingest-schedule", "0 30 18 * * MON-FRI", "bar ingest cron")
	schedulerCmd.Flags().StringVar(&screeningSchedule, "screening-schedule", "0 0 19 * * MON-FRI", "screening cron")
	schedulerCmd.Flags().StringVar(&membershipSchedule, "membership-schedule", "0 0 7 * * SAT", "membership refresh cron")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	index := a.strategy.Universe.Index

	sched := scheduler.New(a.log)

	ingestJob := jobs.NewBarIngestJob(
		a.yahoo, a.prices, a.universe, index, ingestSchedule, scoringWorkers, a.log,
	)
	screeningJob := jobs.NewScreeningJob(
		a.scorer, a.selector, a.universe, a.portfolios, a.schedule, index, screeningSchedule, a.log,
	)
	refreshJob := jobs.NewMembershipRefreshJob(a.universe, index, membershipSchedule, a.log)

	for _, job := range []scheduler.Job{ingestJob, screeningJob, refreshJob} {
		if err := sched.AddJob(job); err != nil {
			return fmt.Errorf("register job: %w", err)
		}
	}

	sched.Start()
	fmt.Println("⏰ Scheduler running. Press Ctrl+C to stop.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
