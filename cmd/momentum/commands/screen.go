package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/niveshlabs/quantmomentum/internal/selection"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run the momentum screen and print the portfolio",
	Long: `Scores the full index universe as of a date, applies the momentum
gate and quality blend, and prints the selected portfolio. With
--save the snapshot is persisted and turnover against the previous
snapshot is reported.

Example:
  go run ./cmd/momentum screen
  go run ./cmd/momentum screen --date 2025-05-31 --save`,
	RunE: runScreen,
}

var (
	screenDate string
	screenSave bool
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&screenDate, "date", "", "evaluation date (YYYY-MM-DD, default: today)")
	screenCmd.Flags().BoolVar(&screenSave, "save", false, "persist the snapshot and report turnover")
}

func runScreen(cmd *cobra.Command, args []string) error {
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if screenDate != "" {
		var err error
		date, err = time.Parse("2006-01-02", screenDate)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()

	symbols, err := a.universe.Constituents(ctx, a.strategy.Universe.Index)
	if err != nil {
		return fmt.Errorf("resolve universe: %w", err)
	}

	fmt.Printf("🔍 Screening %s (%d symbols) as of %s\n\n",
		a.strategy.Universe.Index, len(symbols), date.Format("2006-01-02"))

	scores := a.scorer.ScoreUniverse(ctx, symbols, date)
	portfolio := a.selector.Select(scores, date)

	if portfolio.Empty() {
		fmt.Println("⚠️  No candidates passed the momentum gate")
		return nil
	}

	printDoubleSeparator()
	fmt.Printf("  Momentum Portfolio %s\n", date.Format("2006-01-02"))
	printDoubleSeparator()

	rules := a.entryRules()

	widths := []int{4, 12, 10, 8, 8, 10, 7}
	printTableHeader([]string{"#", "Symbol", "Momentum", "FIP", "Score", "Price", "Entry"}, widths)
	for i, c := range portfolio.Candidates {
		entry := ""
		if rules.Signal(c) {
			entry = "✓"
		}
		printTableRow([]string{
			fmt.Sprintf("%d", i+1),
			c.Symbol,
			fmt.Sprintf("%+.1f%%", c.Momentum*100),
			fmt.Sprintf("%+.3f", c.FIP),
			fmt.Sprintf("%.4f", c.CombinedScore),
			fmt.Sprintf("%.2f", c.LastPrice),
			entry,
		}, widths)
	}
	printSeparator()
	fmt.Printf("Scored %d / selected %d\n", len(scores), portfolio.Size())

	if !screenSave {
		return nil
	}

	previous, err := a.portfolios.GetLatest(ctx)
	if err != nil {
		return fmt.Errorf("load previous snapshot: %w", err)
	}
	if err := a.portfolios.SaveSnapshot(ctx, portfolio); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	turnover := selection.ComputeTurnover(previous, portfolio)
	fmt.Println()
	fmt.Println("🔄 Turnover vs previous snapshot")
	fmt.Printf("   Entering:   %d\n", len(turnover.Entering))
	fmt.Printf("   Exiting:    %d\n", len(turnover.Exiting))
	fmt.Printf("   Continuing: %d\n", len(turnover.Continuing))
	fmt.Printf("   Turnover:   %.1f%%\n", turnover.TurnoverPct)
	fmt.Println("\n✅ Snapshot saved")

	return nil
}
