package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/niveshlabs/quantmomentum/internal/backtest"
	"github.com/niveshlabs/quantmomentum/internal/contracts"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Simulate the strategy over history",
	Long: `Replays the screening pipeline at every rebalance date in the
period and simulates the resulting trades.

Example:
  go run ./cmd/momentum backtest --from 2018-01-01 --to 2024-12-31
  go run ./cmd/momentum backtest --from 2020-01-01 --save`,
	RunE: runBacktest,
}

var (
	backtestFrom string
	backtestTo   string
	backtestSave bool
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVar(&backtestFrom, "from", "", "start date (YYYY-MM-DD, required)")
	backtestCmd.Flags().StringVar(&backtestTo, "to", "", "end date (YYYY-MM-DD, default: today)")
	backtestCmd.Flags().BoolVar(&backtestSave, "save", false, "persist the trade log")

	backtestCmd.MarkFlagRequired("from")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	start, err := time.Parse("2006-01-02", backtestFrom)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	if backtestTo != "" {
		end, err = time.Parse("2006-01-02", backtestTo)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Printf("🚀 Backtest %s ~ %s (%s, %d names, capital %s)\n\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"),
		a.strategy.Universe.Index,
		a.strategy.Selection.PortfolioSize,
		formatNumber(a.strategy.Backtest.InitialCapital))

	engine := a.newEngine()
	result, err := engine.Run(cmd.Context(), start, end)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	printBacktestResult(result)

	if backtestSave && len(result.Trades) > 0 {
		runID := uuid.NewString()
		if err := a.trades.SaveRun(cmd.Context(), runID, start, end, a.snapshot); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		if err := a.trades.SaveBatch(cmd.Context(), runID, result.Trades); err != nil {
			return fmt.Errorf("save trades: %w", err)
		}
		fmt.Printf("\n✅ Trade log saved (run %s, config %s)\n", runID, a.snapshot.ConfigHash[:12])
	}

	return nil
}

func printBacktestResult(result *backtest.Result) {
	fmt.Println("✅ Backtest Completed")
	printDoubleSeparator()

	summary, err := backtest.Summarize(result.Trades)
	if errors.Is(err, contracts.ErrNoTrades) {
		fmt.Println("⚠️  No closed trades in the period")
		if len(result.OpenPositions) > 0 {
			fmt.Printf("   Open positions: %d\n", len(result.OpenPositions))
		}
		return
	}
	if err != nil {
		fmt.Printf("❌ Summary failed: %v\n", err)
		return
	}

	fmt.Println("\n📊 Trade Statistics")
	fmt.Printf("Total Trades:    %d\n", summary.TotalTrades)
	fmt.Printf("Winning Trades:  %d (%.1f%%)\n", summary.WinningTrades, summary.WinRatePct)
	fmt.Printf("Avg Return:      %+.2f%%\n", summary.AvgReturnPct)
	fmt.Printf("Std Dev:         %.2f%%\n", summary.StdDevReturns)
	fmt.Printf("Worst Trade:     %+.2f%%\n", summary.WorstReturnPct)
	fmt.Printf("Avg Holding:     %.0f days\n", summary.AvgHoldingDays)

	fmt.Println("\n💰 Performance")
	fmt.Printf("Annual Return:   %+.2f%%\n", summary.AnnualReturn)
	fmt.Printf("Sharpe Ratio:    %.2f", summary.SharpeRatio)
	switch {
	case summary.SharpeRatio > 2.0:
		fmt.Print(" 🌟 (Excellent)")
	case summary.SharpeRatio > 1.0:
		fmt.Print(" ✅ (Good)")
	default:
		fmt.Print(" ⚠️  (Weak)")
	}
	fmt.Println()

	if len(result.OpenPositions) > 0 {
		fmt.Printf("\nOpen positions at end: %d (excluded from statistics)\n",
			len(result.OpenPositions))
	}
	fmt.Printf("Rebalances executed: %d\n", len(result.Portfolios))
}
