package contracts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bar(y int, m time.Month, d int, close float64) Bar {
	return Bar{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Close: close}
}

func TestValidateBars(t *testing.T) {
	valid := []Bar{
		bar(2024, time.May, 29, 100),
		bar(2024, time.May, 30, 101),
		bar(2024, time.May, 31, 102),
	}
	assert.NoError(t, ValidateBars(valid))
	assert.NoError(t, ValidateBars(nil))

	duplicate := []Bar{
		bar(2024, time.May, 30, 100),
		bar(2024, time.May, 30, 101),
	}
	assert.Error(t, ValidateBars(duplicate))

	outOfOrder := []Bar{
		bar(2024, time.May, 31, 100),
		bar(2024, time.May, 30, 101),
	}
	assert.Error(t, ValidateBars(outOfOrder))

	nonPositive := []Bar{bar(2024, time.May, 30, 0)}
	assert.Error(t, ValidateBars(nonPositive))
}

func TestDailyReturns(t *testing.T) {
	returns := DailyReturns([]float64{100, 110, 99})

	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-12)
	assert.InDelta(t, -0.10, returns[1], 1e-12)

	assert.Nil(t, DailyReturns([]float64{100}))
	assert.Nil(t, DailyReturns(nil))
}
