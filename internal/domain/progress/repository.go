package progress

import (
	"context"
	"time"
)

type Repository interface {
	// MarkCompleted stores a mark; marking twice is a no-op.
	MarkCompleted(ctx context.Context, employeeID, monthKey, dayKey, activityID string, at time.Time) error
	ResetMonth(ctx context.Context, employeeID, monthKey string) (int64, error)
	GetMonth(ctx context.Context, employeeID, monthKey string) (Sheet, error)
	// GetRange returns marks for months in [fromMonth, toMonth].
	GetRange(ctx context.Context, employeeID, fromMonth, toMonth string) (Sheet, error)
}
