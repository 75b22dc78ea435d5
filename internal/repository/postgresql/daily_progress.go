package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/database"
)

type dailyProgressRepositoryImpl struct {
	db *database.DB
}

func NewDailyProgressRepository(db *database.DB) progress.Repository {
	return &dailyProgressRepositoryImpl{db: db}
}

// MarkCompleted implements progress.Repository.
func (r *dailyProgressRepositoryImpl) MarkCompleted(ctx context.Context, employeeID, monthKey, dayKey, activityID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	day, err := calendar.ParseDayKey(dayKey)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO daily_progress (employee_id, month_key, day, activity_id, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, month_key, day, activity_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, employeeID, monthKey, day, activityID, at); err != nil {
		return fmt.Errorf("mark daily progress: %w", err)
	}
	return nil
}

// ResetMonth implements progress.Repository.
func (r *dailyProgressRepositoryImpl) ResetMonth(ctx context.Context, employeeID, monthKey string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM daily_progress WHERE employee_id = $1 AND month_key = $2`, employeeID, monthKey)
	if err != nil {
		return 0, fmt.Errorf("reset daily progress: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetMonth implements progress.Repository.
func (r *dailyProgressRepositoryImpl) GetMonth(ctx context.Context, employeeID, monthKey string) (progress.Sheet, error) {
	return r.GetRange(ctx, employeeID, monthKey, monthKey)
}

// GetRange implements progress.Repository. Month keys sort lexically.
func (r *dailyProgressRepositoryImpl) GetRange(ctx context.Context, employeeID, fromMonth, toMonth string) (progress.Sheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT month_key, day, activity_id, completed_at
		FROM daily_progress
		WHERE employee_id = $1 AND month_key >= $2 AND month_key <= $3
	`
	rows, err := q.Query(ctx, query, employeeID, fromMonth, toMonth)
	if err != nil {
		return nil, fmt.Errorf("get daily progress: %w", err)
	}
	defer rows.Close()

	var records []progress.DailyProgress
	for rows.Next() {
		rec := progress.DailyProgress{EmployeeID: employeeID}
		var day int
		if err := rows.Scan(&rec.MonthKey, &day, &rec.ActivityID, &rec.CompletedAt); err != nil {
			return nil, err
		}
		rec.DayKey = calendar.DayKey(day)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return progress.FromRecords(records), nil
}
