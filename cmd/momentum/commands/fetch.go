package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/niveshlabs/quantmomentum/internal/scheduler/jobs"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch universe membership and daily bars",
	Long: `Refreshes the index constituent list and ingests daily bars into
the local price store. Incremental by default: each symbol resumes
from its latest stored bar.

Example:
  go run ./cmd/momentum fetch
  go run ./cmd/momentum fetch --from 2015-01-01
  go run ./cmd/momentum fetch --membership-only`,
	RunE: runFetch,
}

var (
	fetchFrom           string
	fetchMembershipOnly bool
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchFrom, "from", "", "history start (YYYY-MM-DD, default: incremental)")
	fetchCmd.Flags().BoolVar(&fetchMembershipOnly, "membership-only", false, "refresh constituents only")
}

func runFetch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	index := a.strategy.Universe.Index

	fmt.Printf("🌐 Refreshing %s constituents...\n", index)
	symbols, err := a.universe.Refresh(ctx, index)
	if err != nil {
		return fmt.Errorf("refresh membership: %w", err)
	}
	fmt.Printf("✅ %d constituents\n", len(symbols))

	if fetchMembershipOnly {
		return nil
	}

	var from time.Time
	if fetchFrom != "" {
		from, err = time.Parse("2006-01-02", fetchFrom)
		if err != nil {
			return fmt.Errorf("invalid from date: %w", err)
		}
	}

	fmt.Println("\n📥 Ingesting daily bars...")
	ingest := jobs.NewBarIngestJob(
		a.yahoo, a.prices, a.universe, index, "", scoringWorkers, a.log,
	)
	if err := ingest.RunRange(ctx, from, time.Now().UTC()); err != nil {
		return fmt.Errorf("ingest bars: %w", err)
	}
	fmt.Println("✅ Ingest completed")

	return nil
}
