package document

import (
	"context"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// File is a rendered document ready to be served as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type TranscriptRequest struct {
	EmployeeID string
	Year       int
}

func (r *TranscriptRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Year < 2000 || r.Year > 2100 {
		errs.Add("year", "must be a four digit year")
	}
	return errs.Err()
}

type ChecklistRequest struct {
	EmployeeID string
	MonthKey   string
}

func (r *ChecklistRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(r.MonthKey) {
		errs.Add("month", "must be in YYYY-MM format")
	}
	return errs.Err()
}

// Service renders employee documents. An empty EmployeeID means the caller.
type Service interface {
	Transcript(ctx context.Context, req TranscriptRequest) (File, error)
	Checklist(ctx context.Context, req ChecklistRequest) (File, error)
}
