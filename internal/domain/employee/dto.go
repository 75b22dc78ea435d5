package employee

import (
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID               string   `json:"id"`
	EmployeeCode     string   `json:"employee_code"`
	FullName         string   `json:"full_name"`
	Unit             *string  `json:"unit,omitempty"`
	Position         *string  `json:"position,omitempty"`
	EmploymentStatus string   `json:"employment_status"`
	MentorID         *string  `json:"mentor_id,omitempty"`
	SupervisorID     *string  `json:"supervisor_id,omitempty"`
	KaUnitID         *string  `json:"ka_unit_id,omitempty"`
	ManagerID        *string  `json:"manager_id,omitempty"`
	ActivatedMonths  []string `json:"activated_months"`
}

func ToResponse(e Employee) EmployeeResponse {
	months := e.ActivatedMonths
	if months == nil {
		months = []string{}
	}
	return EmployeeResponse{
		ID:               e.ID,
		EmployeeCode:     e.EmployeeCode,
		FullName:         e.FullName,
		Unit:             e.Unit,
		Position:         e.Position,
		EmploymentStatus: string(e.EmploymentStatus),
		MentorID:         e.MentorID,
		SupervisorID:     e.SupervisorID,
		KaUnitID:         e.KaUnitID,
		ManagerID:        e.ManagerID,
		ActivatedMonths:  months,
	}
}

type ActivateMonthRequest struct {
	EmployeeID string `json:"-"`
	MonthKey   string `json:"month_key"`
}

func (r *ActivateMonthRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if !validator.IsValidMonth(r.MonthKey) {
		errs.Add("month_key", "must be in YYYY-MM format")
	}
	return errs.Err()
}

type AddReadingRequest struct {
	EmployeeID string `json:"-"`
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Amount     int    `json:"amount"`
	ReadOn     string `json:"read_on"`
}

func (r *AddReadingRequest) Validate() error {
	var errs validator.ValidationErrors
	if !ReadingKind(r.Kind).IsValid() {
		errs.Add("kind", "must be one of: quran, book")
	}
	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	} else if len(r.Title) > 255 {
		errs.Add("title", "title must not exceed 255 characters")
	}
	if r.Amount < 1 {
		errs.Add("amount", "must be at least 1")
	}
	if _, ok := validator.IsValidDate(r.ReadOn); !ok {
		errs.Add("read_on", "must be in YYYY-MM-DD format")
	}
	return errs.Err()
}

type ReadingResponse struct {
	ID     string    `json:"id"`
	Kind   string    `json:"kind"`
	Title  string    `json:"title"`
	Amount int       `json:"amount"`
	ReadOn string    `json:"read_on"`
	Logged time.Time `json:"logged_at"`
}

func ToReadingResponse(h ReadingHistory) ReadingResponse {
	return ReadingResponse{
		ID:     h.ID,
		Kind:   string(h.Kind),
		Title:  h.Title,
		Amount: h.Amount,
		ReadOn: h.ReadOn.Format("2006-01-02"),
		Logged: h.CreatedAt,
	}
}
