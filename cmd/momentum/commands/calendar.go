package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/niveshlabs/quantmomentum/internal/calendar"
	"github.com/niveshlabs/quantmomentum/internal/strategyconfig"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Print the rebalance schedule",
	Long: `Prints the month-end rebalance dates for a year, and the next
upcoming one.

Example:
  go run ./cmd/momentum calendar
  go run ./cmd/momentum calendar --year 2026`,
	RunE: runCalendar,
}

var calendarYear int

func init() {
	rootCmd.AddCommand(calendarCmd)

	calendarCmd.Flags().IntVar(&calendarYear, "year", 0, "year (default: current)")
}

// loadSchedule reads the rebalance months from the strategy file when
// one is available, so the printed calendar matches what the engine
// and scheduler use. Falls back to the standard schedule.
func loadSchedule() calendar.Schedule {
	path := strategyFile
	if path == "" {
		path = os.Getenv("STRATEGY_PATH")
	}
	if path == "" {
		path = "config/strategy/nifty_momentum.yaml"
	}

	strategy, _, err := strategyconfig.Load(path)
	if err != nil {
		return calendar.Default()
	}
	schedule, err := calendar.NewSchedule(strategy.Rebalance.Months)
	if err != nil {
		return calendar.Default()
	}
	return schedule
}

func runCalendar(cmd *cobra.Command, args []string) error {
	now := time.Now().UTC()
	year := calendarYear
	if year == 0 {
		year = now.Year()
	}

	schedule := loadSchedule()

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	dates := schedule.Dates(from, to)

	next := schedule.Next(now)

	fmt.Printf("📅 Rebalance calendar %d\n", year)
	printSeparator()
	for _, d := range dates {
		marker := ""
		if d.Equal(next) {
			marker = "  ← next"
		}
		fmt.Printf("  %s (%s)%s\n", d.Format("2006-01-02"), d.Weekday(), marker)
	}
	printSeparator()
	fmt.Printf("Next rebalance: %s\n", next.Format("2006-01-02"))

	return nil
}
