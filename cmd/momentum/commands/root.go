package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyFile string
	verbose      bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "momentum",
	Short: "Quantitative momentum screening and backtesting",
	Long: `Quantitative momentum CLI

Screens an equity index for intermediate-term momentum with
frog-in-the-pan quality, builds the quarterly portfolio and
simulates it over history.

Usage:
  go run ./cmd/momentum [command]

Examples:
  go run ./cmd/momentum screen
  go run ./cmd/momentum backtest --from 2018-01-01 --to 2024-12-31
  go run ./cmd/momentum calendar --year 2025
  go run ./cmd/momentum fetch --index NIFTY500
  go run ./cmd/momentum api`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy YAML (default from STRATEGY_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
