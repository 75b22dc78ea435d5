package activityreport

import "errors"

var (
	ErrDuplicateDate     = errors.New("A report for this date already exists")
	ErrEntryNotFound     = errors.New("Report entry not found")
	ErrWrongActivityKind = errors.New("Activity does not accept this kind of report")
	ErrVersionConflict   = errors.New("Report document was modified by another request")

	// ErrWriteTimeout leaves the payload queued for background retries, so a
	// manual retry of the same date may answer ErrDuplicateDate.
	ErrWriteTimeout = errors.New("Saving the report timed out and is being retried. Reload your reports before sending it again: a date that is already listed has been saved")
)
