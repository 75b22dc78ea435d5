package calendar

import "time"

// WeekBucket is a group of consecutive days of one month.
type WeekBucket struct {
	WeekIndex int   `json:"week_index"`
	Days      []int `json:"days"`
}

// Len returns the number of days in the bucket.
func (b WeekBucket) Len() int {
	return len(b.Days)
}

// Contains reports whether day belongs to the bucket.
func (b WeekBucket) Contains(day int) bool {
	for _, d := range b.Days {
		if d == day {
			return true
		}
	}
	return false
}

// minBucketDays is the size at or below which an edge bucket is folded
// into its neighbour.
const minBucketDays = 2

// WeekBuckets splits the month containing t into week buckets. A bucket
// closes on Sunday or at the end of the month. A leading bucket of at
// most two days is merged into the second bucket and a trailing bucket of
// at most two days into the one before it.
func WeekBuckets(t time.Time) []WeekBucket {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	total := DaysIn(first)

	var buckets [][]int
	var current []int
	for day := 1; day <= total; day++ {
		current = append(current, day)
		weekday := first.AddDate(0, 0, day-1).Weekday()
		if weekday == time.Sunday || day == total {
			buckets = append(buckets, current)
			current = nil
		}
	}

	if len(buckets) > 1 && len(buckets[0]) <= minBucketDays {
		merged := append(append([]int{}, buckets[0]...), buckets[1]...)
		buckets = append([][]int{merged}, buckets[2:]...)
	}
	if n := len(buckets); n > 1 && len(buckets[n-1]) <= minBucketDays {
		buckets[n-2] = append(buckets[n-2], buckets[n-1]...)
		buckets = buckets[:n-1]
	}

	result := make([]WeekBucket, len(buckets))
	for i, days := range buckets {
		result[i] = WeekBucket{WeekIndex: i + 1, Days: days}
	}
	return result
}

// MonthWeeks is WeekBuckets for a month key.
func MonthWeeks(m MonthKey) []WeekBucket {
	return WeekBuckets(m.Start(time.UTC))
}

// WeekOf returns the bucket that holds day.
func WeekOf(buckets []WeekBucket, day int) (WeekBucket, bool) {
	for _, b := range buckets {
		if b.Contains(day) {
			return b, true
		}
	}
	return WeekBucket{}, false
}

// WeekByIndex returns the bucket with the given 1-based index.
func WeekByIndex(buckets []WeekBucket, index int) (WeekBucket, bool) {
	if index < 1 || index > len(buckets) {
		return WeekBucket{}, false
	}
	return buckets[index-1], true
}
