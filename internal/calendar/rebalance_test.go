package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewSchedule(t *testing.T) {
	s, err := NewSchedule([]int{5, 2, 11, 8})
	require.NoError(t, err)
	assert.Equal(t,
		Default().Dates(date(2024, time.January, 1), date(2024, time.December, 31)),
		s.Dates(date(2024, time.January, 1), date(2024, time.December, 31)))

	// Duplicates collapse.
	s, err = NewSchedule([]int{3, 3, 3})
	require.NoError(t, err)
	assert.Len(t, s.Dates(date(2024, time.January, 1), date(2024, time.December, 31)), 1)

	_, err = NewSchedule(nil)
	assert.Error(t, err)

	_, err = NewSchedule([]int{0})
	assert.Error(t, err)

	_, err = NewSchedule([]int{13})
	assert.Error(t, err)
}

func TestSchedule_Dates_LeapYear(t *testing.T) {
	dates := Default().Dates(date(2024, time.January, 1), date(2024, time.December, 31))
	require.Len(t, dates, 4)
	assert.Equal(t, date(2024, time.February, 29), dates[0])
	assert.Equal(t, date(2024, time.May, 31), dates[1])
	assert.Equal(t, date(2024, time.August, 31), dates[2])
	assert.Equal(t, date(2024, time.November, 30), dates[3])
}

func TestSchedule_Dates_NonLeapYear(t *testing.T) {
	dates := Default().Dates(date(2023, time.January, 1), date(2023, time.December, 31))
	require.Len(t, dates, 4)
	assert.Equal(t, date(2023, time.February, 28), dates[0])
}

func TestSchedule_Dates_PartialWindow(t *testing.T) {
	// Window opens after February and closes before November.
	dates := Default().Dates(date(2024, time.March, 1), date(2024, time.September, 30))
	require.Len(t, dates, 2)
	assert.Equal(t, date(2024, time.May, 31), dates[0])
	assert.Equal(t, date(2024, time.August, 31), dates[1])
}

func TestSchedule_Dates_InclusiveBounds(t *testing.T) {
	dates := Default().Dates(date(2024, time.February, 29), date(2024, time.February, 29))
	require.Len(t, dates, 1)
	assert.Equal(t, date(2024, time.February, 29), dates[0])
}

func TestSchedule_Dates_EmptyWindow(t *testing.T) {
	assert.Nil(t, Default().Dates(date(2024, time.June, 1), date(2024, time.May, 1)))
	assert.Empty(t, Default().Dates(date(2024, time.March, 1), date(2024, time.April, 30)))
}

func TestSchedule_Next(t *testing.T) {
	s := Default()
	assert.Equal(t, date(2024, time.February, 29), s.Next(date(2024, time.January, 15)))
	assert.Equal(t, date(2024, time.May, 31), s.Next(date(2024, time.February, 29)))
	assert.Equal(t, date(2025, time.February, 28), s.Next(date(2024, time.November, 30)))
}

func TestSchedule_Contains(t *testing.T) {
	s := Default()
	assert.True(t, s.Contains(date(2024, time.February, 29)))
	assert.True(t, s.Contains(date(2023, time.February, 28)))
	assert.True(t, s.Contains(date(2024, time.November, 30)))

	assert.False(t, s.Contains(date(2024, time.February, 28))) // leap year
	assert.False(t, s.Contains(date(2024, time.March, 31)))
	assert.False(t, s.Contains(date(2024, time.May, 30)))
}

func TestSchedule_CustomMonths(t *testing.T) {
	s, err := NewSchedule([]int{6, 12})
	require.NoError(t, err)

	dates := s.Dates(date(2024, time.January, 1), date(2024, time.December, 31))
	require.Len(t, dates, 2)
	assert.Equal(t, date(2024, time.June, 30), dates[0])
	assert.Equal(t, date(2024, time.December, 31), dates[1])

	assert.True(t, s.Contains(date(2024, time.June, 30)))
	assert.False(t, s.Contains(date(2024, time.February, 29)))
	assert.Equal(t, date(2024, time.December, 31), s.Next(date(2024, time.June, 30)))
}
