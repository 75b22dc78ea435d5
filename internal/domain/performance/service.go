package performance

import "context"

// Service computes scorecards. An empty EmployeeID means the caller.
type Service interface {
	Monthly(ctx context.Context, req MonthlyRequest) (Scorecard, error)
	Weekly(ctx context.Context, req WeeklyRequest) (Scorecard, error)
	Yearly(ctx context.Context, req YearlyRequest) (Scorecard, error)
}
