package performance

import "errors"

var (
	ErrWeekNotFound = errors.New("Week does not exist in this month")
	ErrFuturePeriod = errors.New("Period has not started yet")
)
