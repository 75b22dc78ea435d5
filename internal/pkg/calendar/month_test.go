package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthKey(t *testing.T) {
	m, err := ParseMonthKey("2026-03")
	require.NoError(t, err)
	assert.Equal(t, MonthKey("2026-03"), m)
	assert.Equal(t, 2026, m.Year())
	assert.Equal(t, time.March, m.Month())
	assert.Equal(t, 31, m.Days())

	for _, bad := range []string{"", "2026-13", "2026/03", "26-03", "2026-3-01"} {
		_, err := ParseMonthKey(bad)
		assert.ErrorIs(t, err, ErrInvalidMonthKey, bad)
	}
}

func TestMonthKeyNavigation(t *testing.T) {
	assert.Equal(t, MonthKey("2026-01"), MonthKey("2025-12").Next())
	assert.Equal(t, MonthKey("2025-12"), MonthKey("2026-01").Prev())
	assert.True(t, MonthKey("2025-12").Before("2026-01"))
	assert.True(t, MonthKey("2026-02").After("2026-01"))
	assert.Equal(t, 28, MonthKey("2026-02").Days())
	assert.Equal(t, 29, MonthKey("2024-02").Days())
}

func TestMonthKeyContains(t *testing.T) {
	m := MonthKey("2026-03")
	assert.True(t, m.Contains(time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "01", DayKey(1))
	assert.Equal(t, "31", DayKey(31))

	day, err := ParseDayKey("09")
	require.NoError(t, err)
	assert.Equal(t, 9, day)

	_, err = ParseDayKey("32")
	assert.Error(t, err)
	_, err = ParseDayKey("x")
	assert.Error(t, err)
}

func TestMonthsOfYear(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, []MonthKey{"2026-01", "2026-02", "2026-03"}, MonthsOfYear(2026, now))
	assert.Len(t, MonthsOfYear(2025, now), 12)
	assert.Empty(t, MonthsOfYear(2027, now))
}
