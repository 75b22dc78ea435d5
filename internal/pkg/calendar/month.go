package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidMonthKey = errors.New("invalid month key, expected YYYY-MM")

const monthKeyLayout = "2006-01"

// MonthKey is a calendar month in "YYYY-MM" form.
type MonthKey string

// ParseMonthKey validates s and returns it as a MonthKey.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(monthKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthKey, s)
	}
	return MonthKey(t.Format(monthKeyLayout)), nil
}

// MonthKeyOf returns the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format(monthKeyLayout))
}

// NewMonthKey builds a key from a year and month.
func NewMonthKey(year int, month time.Month) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", year, int(month)))
}

func (m MonthKey) String() string {
	return string(m)
}

// Start returns midnight of the first day of the month in loc.
func (m MonthKey) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(monthKeyLayout, string(m), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (m MonthKey) Year() int {
	return m.Start(time.UTC).Year()
}

func (m MonthKey) Month() time.Month {
	return m.Start(time.UTC).Month()
}

// Days returns the number of days in the month.
func (m MonthKey) Days() int {
	return DaysIn(m.Start(time.UTC))
}

func (m MonthKey) Next() MonthKey {
	return MonthKeyOf(m.Start(time.UTC).AddDate(0, 1, 0))
}

func (m MonthKey) Prev() MonthKey {
	return MonthKeyOf(m.Start(time.UTC).AddDate(0, -1, 0))
}

// Before reports whether m is an earlier month than other. Keys are
// zero-padded so lexical order equals chronological order.
func (m MonthKey) Before(other MonthKey) bool {
	return m < other
}

func (m MonthKey) After(other MonthKey) bool {
	return m > other
}

// Contains reports whether the date falls inside the month.
func (m MonthKey) Contains(date time.Time) bool {
	return MonthKeyOf(date) == m
}

// IsValid reports whether m parses as a month key.
func (m MonthKey) IsValid() bool {
	_, err := ParseMonthKey(string(m))
	return err == nil
}

// DaysIn returns the number of days in the month of t.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayKey formats a day-of-month as the two-digit key used in progress sheets.
func DayKey(day int) string {
	return fmt.Sprintf("%02d", day)
}

// ParseDayKey converts "01".."31" back to an int.
func ParseDayKey(key string) (int, error) {
	var day int
	if _, err := fmt.Sscanf(key, "%d", &day); err != nil {
		return 0, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	if day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day key %q", key)
	}
	return day, nil
}

// MonthsOfYear returns the months of year that have started as of now:
// all twelve for past years, January through the current month for the
// current year and none for future years.
func MonthsOfYear(year int, now time.Time) []MonthKey {
	last := 12
	switch {
	case year > now.Year():
		return nil
	case year == now.Year():
		last = int(now.Month())
	}
	months := make([]MonthKey, 0, last)
	for m := 1; m <= last; m++ {
		months = append(months, NewMonthKey(year, time.Month(m)))
	}
	return months
}
