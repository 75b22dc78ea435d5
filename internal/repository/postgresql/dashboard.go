package postgresql

import (
	"context"
	"fmt"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/dashboard"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetSubmissionStatusCounts counts activated employees per status; employees
// without a row fall under "none".
func (r *dashboardRepositoryImpl) GetSubmissionStatusCounts(ctx context.Context, month string) (*dashboard.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(s.status, 'none') AS status, COUNT(*)
		FROM employees e
		LEFT JOIN monthly_report_submissions s ON s.employee_id = e.id AND s.month_key = $1
		WHERE e.employment_status = 'active' AND $1::text = ANY(e.activated_months)
		GROUP BY 1
	`
	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission status counts: %w", err)
	}
	defer rows.Close()

	stats := &dashboard.StatusCounts{ByStatus: map[string]int64{}}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = n
		stats.Activated += n
	}
	return stats, rows.Err()
}

// GetUnitStats returns the per-unit breakdown in a single query
func (r *dashboardRepositoryImpl) GetUnitStats(ctx context.Context, month string) ([]dashboard.UnitStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(e.unit, '-') AS unit,
			COUNT(*) AS activated,
			COALESCE(SUM(CASE WHEN s.status IS NOT NULL AND s.status NOT LIKE 'rejected_%' THEN 1 ELSE 0 END), 0) AS submitted,
			COALESCE(SUM(CASE WHEN s.status = 'approved' THEN 1 ELSE 0 END), 0) AS approved,
			COALESCE(SUM(CASE WHEN s.status LIKE 'rejected_%' THEN 1 ELSE 0 END), 0) AS rejected
		FROM employees e
		LEFT JOIN monthly_report_submissions s ON s.employee_id = e.id AND s.month_key = $1
		WHERE e.employment_status = 'active' AND $1::text = ANY(e.activated_months)
		GROUP BY 1
		ORDER BY 1
	`
	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit stats: %w", err)
	}
	defer rows.Close()

	var units []dashboard.UnitStats
	for rows.Next() {
		var u dashboard.UnitStats
		if err := rows.Scan(&u.Unit, &u.Activated, &u.Submitted, &u.Approved, &u.Rejected); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// GetRecentSubmissions returns the latest submissions for the month
func (r *dashboardRepositoryImpl) GetRecentSubmissions(ctx context.Context, month string, limit int) ([]dashboard.RecentSubmissionItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, e.full_name, e.employee_code, e.unit, s.status, s.submitted_at
		FROM monthly_report_submissions s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.month_key = $1
		ORDER BY s.updated_at DESC
		LIMIT $2
	`
	rows, err := q.Query(ctx, query, month, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent submissions: %w", err)
	}
	defer rows.Close()

	var items []dashboard.RecentSubmissionItem
	for rows.Next() {
		item := dashboard.RecentSubmissionItem{No: len(items) + 1}
		if err := rows.Scan(&item.SubmissionID, &item.EmployeeName, &item.EmployeeCode, &item.Unit, &item.Status, &item.SubmittedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
