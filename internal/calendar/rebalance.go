// Package calendar produces the rebalance schedule. The default
// follows the seasonality rule from the quantitative momentum
// framework: rebalance at the end of February, May, August and
// November, avoiding quarter-end window dressing and year-end
// tax-loss selling.
package calendar

import (
	"fmt"
	"sort"
	"time"
)

// DefaultMonths are the months whose last day is a rebalance date.
var DefaultMonths = []time.Month{
	time.February,
	time.May,
	time.August,
	time.November,
}

// Schedule generates month-end rebalance dates for a fixed month set.
type Schedule struct {
	months []time.Month
}

// NewSchedule creates a schedule from month numbers (1-12). Months are
// deduplicated and sorted.
func NewSchedule(months []int) (Schedule, error) {
	if len(months) == 0 {
		return Schedule{}, fmt.Errorf("schedule needs at least one month")
	}

	seen := make(map[time.Month]bool)
	var out []time.Month
	for _, m := range months {
		if m < 1 || m > 12 {
			return Schedule{}, fmt.Errorf("invalid month: %d", m)
		}
		month := time.Month(m)
		if !seen[month] {
			seen[month] = true
			out = append(out, month)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })

	return Schedule{months: out}, nil
}

// Default returns the standard quarterly schedule.
func Default() Schedule {
	return Schedule{months: DefaultMonths}
}

// Dates returns the ordered month-end rebalance dates within
// [start, end]. February's end day follows the standard leap rules,
// century exceptions included.
func (s Schedule) Dates(start, end time.Time) []time.Time {
	if end.Before(start) {
		return nil
	}

	dates := make([]time.Time, 0, len(s.months)*(end.Year()-start.Year()+1))
	for year := start.Year(); year <= end.Year(); year++ {
		for _, month := range s.months {
			// Day zero of the following month normalizes to the last
			// day of this month, leap years included.
			d := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
			if d.Before(start) || d.After(end) {
				continue
			}
			dates = append(dates, d)
		}
	}

	return dates
}

// Next returns the first rebalance date strictly after t.
func (s Schedule) Next(t time.Time) time.Time {
	for _, d := range s.Dates(t, t.AddDate(1, 0, 0)) {
		if d.After(t) {
			return d
		}
	}
	// Unreachable: any 1-year window contains every scheduled month.
	return time.Time{}
}

// Contains reports whether t falls on a rebalance date.
func (s Schedule) Contains(t time.Time) bool {
	for _, month := range s.months {
		if t.Month() != month {
			continue
		}
		last := time.Date(t.Year(), month+1, 0, 0, 0, 0, 0, t.Location())
		return t.Day() == last.Day()
	}
	return false
}
