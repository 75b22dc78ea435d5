package dashboard

import (
	"context"
)

// StatusCounts holds, for one month, the activated employee count and the
// number of those employees per stored submission status.
type StatusCounts struct {
	Activated int64
	ByStatus  map[string]int64
}

// UnitStats is the submission progress of one unit for a month.
type UnitStats struct {
	Unit      string
	Activated int64
	Submitted int64
	Approved  int64
	Rejected  int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetSubmissionStatusCounts counts activated employees by submission status in a single query
	GetSubmissionStatusCounts(ctx context.Context, month string) (*StatusCounts, error)

	// GetUnitStats groups the same counts by unit
	GetUnitStats(ctx context.Context, month string) ([]UnitStats, error)

	// GetRecentSubmissions returns the latest submissions of the month
	GetRecentSubmissions(ctx context.Context, month string, limit int) ([]RecentSubmissionItem, error)
}
