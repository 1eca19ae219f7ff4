package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/niveshlabs/quantmomentum/internal/api"
	"github.com/niveshlabs/quantmomentum/internal/api/handlers"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the HTTP API server",
	Long: `Serves the persisted portfolio snapshots, saved backtest runs
and the rebalance calendar over HTTP.

Endpoints:
  GET /health
  GET /api/portfolio/latest
  GET /api/portfolio/{date}
  GET /api/turnover
  GET /api/calendar/rebalances
  GET /api/calendar/next
  GET /api/backtest/{run_id}

Example:
  go run ./cmd/momentum api`,
	RunE: runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	router := api.NewRouter(
		handlers.NewPortfolioHandler(a.portfolios, a.schedule, a.log),
		handlers.NewCalendarHandler(a.schedule, a.log),
		handlers.NewBacktestHandler(a.trades, a.log),
		a.log,
	)
	server := api.New(a.cfg, a.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
