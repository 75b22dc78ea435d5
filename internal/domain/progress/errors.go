package progress

import "errors"

var (
	ErrMonthNotActivated = errors.New("Month is not activated for this employee")
	ErrMonthLocked       = errors.New("Month is locked because its report has been approved")
	ErrDayOutOfRange     = errors.New("Day is outside the month")
	ErrFutureDay         = errors.New("Cannot fill progress for a future day")
	ErrNotChecklist      = errors.New("Activity is filled automatically and cannot be checked manually")
)
