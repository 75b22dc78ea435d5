package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	// ActivateMonth adds month to activated_months; activating twice is a no-op.
	ActivateMonth(ctx context.Context, id string, month string) (Employee, error)
	// ListActivatedForMonth returns active employees that activated month.
	ListActivatedForMonth(ctx context.Context, month string) ([]Employee, error)
	// ListAwaitingSubmission returns active employees that activated month
	// and have no submission for it, or only a rejected one.
	ListAwaitingSubmission(ctx context.Context, month string) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}

type ReadingHistoryRepository interface {
	Create(ctx context.Context, h ReadingHistory) (ReadingHistory, error)
	// ListBetween returns entries with from <= read_on < to.
	ListBetween(ctx context.Context, employeeID string, from, to time.Time) ([]ReadingHistory, error)
}
