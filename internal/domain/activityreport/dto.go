package activityreport

import (
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
)

type AddManualReportRequest struct {
	EmployeeID string  `json:"-"`
	MonthKey   string  `json:"-"`
	ActivityID string  `json:"-"`
	Date       string  `json:"date"`
	Note       *string `json:"note,omitempty"`
}

func (r *AddManualReportRequest) Validate() error {
	var errs validator.ValidationErrors
	validateTarget(&errs, r.MonthKey, r.ActivityID)
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "must be in YYYY-MM-DD format")
	} else if validator.IsValidMonth(r.MonthKey) && !validator.IsDateInMonth(r.Date, r.MonthKey) {
		errs.Add("date", "must be inside the reported month")
	}
	if r.Note != nil && len(*r.Note) > 500 {
		errs.Add("note", "must be at most 500 characters")
	}
	return errs.Err()
}

type AddBookReportRequest struct {
	EmployeeID    string `json:"-"`
	MonthKey      string `json:"-"`
	ActivityID    string `json:"-"`
	BookTitle     string `json:"book_title"`
	PagesRead     int    `json:"pages_read"`
	DateCompleted string `json:"date_completed"`
}

func (r *AddBookReportRequest) Validate() error {
	var errs validator.ValidationErrors
	validateTarget(&errs, r.MonthKey, r.ActivityID)
	if validator.IsEmpty(r.BookTitle) {
		errs.Add("book_title", "book_title is required")
	}
	if r.PagesRead < 1 {
		errs.Add("pages_read", "must be at least 1")
	}
	if _, ok := validator.IsValidDate(r.DateCompleted); !ok {
		errs.Add("date_completed", "must be in YYYY-MM-DD format")
	} else if validator.IsValidMonth(r.MonthKey) && !validator.IsDateInMonth(r.DateCompleted, r.MonthKey) {
		errs.Add("date_completed", "must be inside the reported month")
	}
	return errs.Err()
}

type RemoveEntryRequest struct {
	EmployeeID string
	MonthKey   string
	ActivityID string
	Date       string
}

func (r *RemoveEntryRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	validateTarget(&errs, r.MonthKey, r.ActivityID)
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "must be in YYYY-MM-DD format")
	}
	return errs.Err()
}

func validateTarget(errs *validator.ValidationErrors, month, activityID string) {
	if !validator.IsValidMonth(month) {
		errs.Add("month", "must be in YYYY-MM format")
	}
	if validator.IsEmpty(activityID) {
		errs.Add("activity_id", "activity_id is required")
	}
}
