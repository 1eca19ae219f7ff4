package contracts

import (
	"fmt"
	"time"
)

// Bar represents one daily price observation for an instrument.
type Bar struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// ValidateBars checks the price series invariant: dates strictly
// increasing, no duplicates, positive close prices.
func ValidateBars(bars []Bar) error {
	for i, b := range bars {
		if b.Close <= 0 {
			return fmt.Errorf("bar %d: non-positive close %.4f", i, b.Close)
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return fmt.Errorf("bar %d: date %s not after %s",
				i, b.Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// Closes extracts the close price series.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// DailyReturns computes simple daily returns from a close series.
// The result has len(closes)-1 entries.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (closes[i]-prev)/prev)
	}
	return returns
}
