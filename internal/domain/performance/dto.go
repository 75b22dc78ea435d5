package performance

import (
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
)

type MonthlyRequest struct {
	EmployeeID string
	MonthKey   string
}

func (r *MonthlyRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(r.MonthKey) {
		errs.Add("month", "must be in YYYY-MM format")
	}
	return errs.Err()
}

type WeeklyRequest struct {
	EmployeeID string
	MonthKey   string
	WeekIndex  int
}

func (r *WeeklyRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(r.MonthKey) {
		errs.Add("month", "must be in YYYY-MM format")
	}
	if r.WeekIndex < 1 || r.WeekIndex > 6 {
		errs.Add("week", "must be between 1 and 6")
	}
	return errs.Err()
}

type YearlyRequest struct {
	EmployeeID string
	Year       int
}

func (r *YearlyRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Year < 2000 || r.Year > 2100 {
		errs.Add("year", "must be a four digit year")
	}
	return errs.Err()
}
