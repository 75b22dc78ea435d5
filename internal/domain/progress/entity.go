package progress

import (
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
)

// DailyProgress is one stored completion mark.
type DailyProgress struct {
	EmployeeID  string
	MonthKey    string
	DayKey      string
	ActivityID  string
	CompletedAt time.Time
}

// Sheet maps monthKey -> dayKey -> activityID -> completed. Only true
// values are ever stored; a missing key means not completed.
type Sheet map[string]map[string]map[string]bool

// Mark records a completion.
func (s Sheet) Mark(month, day, activityID string) {
	days, ok := s[month]
	if !ok {
		days = make(map[string]map[string]bool)
		s[month] = days
	}
	acts, ok := days[day]
	if !ok {
		acts = make(map[string]bool)
		days[day] = acts
	}
	acts[activityID] = true
}

// Has reports whether the activity is marked on that day.
func (s Sheet) Has(month, day, activityID string) bool {
	return s[month][day][activityID]
}

// Merge copies every mark from other into s. Marks are never removed.
func (s Sheet) Merge(other Sheet) Sheet {
	for month, days := range other {
		for day, acts := range days {
			for id, done := range acts {
				if done {
					s.Mark(month, day, id)
				}
			}
		}
	}
	return s
}

// Month returns only the marks of one month.
func (s Sheet) Month(month string) Sheet {
	out := Sheet{}
	if days, ok := s[month]; ok {
		out[month] = days
	}
	return out
}

// Count returns the number of days in month on which the activity is
// marked. When days is non-empty only those days are counted.
func (s Sheet) Count(month, activityID string, days []int) int {
	monthDays, ok := s[month]
	if !ok {
		return 0
	}
	if len(days) > 0 {
		n := 0
		for _, d := range days {
			if monthDays[calendar.DayKey(d)][activityID] {
				n++
			}
		}
		return n
	}
	n := 0
	for _, acts := range monthDays {
		if acts[activityID] {
			n++
		}
	}
	return n
}

// FromRecords builds a sheet from stored rows.
func FromRecords(records []DailyProgress) Sheet {
	s := Sheet{}
	for _, r := range records {
		s.Mark(r.MonthKey, r.DayKey, r.ActivityID)
	}
	return s
}
