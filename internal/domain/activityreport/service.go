package activityreport

import (
	"context"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
)

type Service interface {
	AddManualReportByDate(ctx context.Context, req AddManualReportRequest) (Record, error)
	AddBookReadingReport(ctx context.Context, req AddBookReportRequest) (Record, error)
	GetMonthlyReports(ctx context.Context, employeeID string) (ReportsByMonth, error)
	RemoveEntry(ctx context.Context, req RemoveEntryRequest) (Record, error)
	// ProjectedProgress returns the report marks in progress-sheet shape.
	ProjectedProgress(ctx context.Context, employeeID string) (progress.Sheet, error)
}
