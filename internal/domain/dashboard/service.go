package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns combined dashboard data using goroutines
	GetDashboard(ctx context.Context, month string) (*DashboardResponse, error)

	// SubmissionStats counts activated employees per submission status for a month
	SubmissionStats(ctx context.Context, month string) (*SubmissionStatsResponse, error)
}
