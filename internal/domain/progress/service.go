package progress

import "context"

type Service interface {
	MarkCompleted(ctx context.Context, req MarkCompletedRequest) error
	ResetMonth(ctx context.Context, employeeID, monthKey string) (ResetMonthResponse, error)
	MonthView(ctx context.Context, employeeID, monthKey string) (MonthView, error)
}
