package progress

import (
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
)

type MarkCompletedRequest struct {
	EmployeeID string `json:"-"`
	MonthKey   string `json:"-"`
	Day        int    `json:"-"`
	ActivityID string `json:"-"`
}

func (r *MarkCompletedRequest) Validate() error {
	var errs validator.ValidationErrors
	if !calendar.MonthKey(r.MonthKey).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}
	if r.Day < 1 || r.Day > 31 {
		errs = append(errs, validator.ValidationError{Field: "day", Message: "must be between 1 and 31"})
	}
	if validator.IsEmpty(r.ActivityID) {
		errs = append(errs, validator.ValidationError{Field: "activity_id", Message: "activity_id is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthView is the merged progress of one employee for one month.
type MonthView struct {
	EmployeeID       string                `json:"employee_id"`
	MonthKey         string                `json:"month_key"`
	Progress         Sheet                 `json:"progress"`
	Weeks            []calendar.WeekBucket `json:"weeks"`
	SubmissionStatus string                `json:"submission_status"`
	Locked           bool                  `json:"locked"`
}

type ResetMonthResponse struct {
	MonthKey string `json:"month_key"`
	Removed  int64  `json:"removed"`
}
