package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
)

type progressKey struct {
	employeeID, month, day, activityID string
}

type ProgressRepository struct {
	mu    sync.Mutex
	marks map[progressKey]time.Time
}

func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{marks: make(map[progressKey]time.Time)}
}

func (r *ProgressRepository) MarkCompleted(_ context.Context, employeeID, monthKey, dayKey, activityID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := progressKey{employeeID, monthKey, dayKey, activityID}
	if _, ok := r.marks[k]; !ok {
		r.marks[k] = at
	}
	return nil
}

func (r *ProgressRepository) ResetMonth(_ context.Context, employeeID, monthKey string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k := range r.marks {
		if k.employeeID == employeeID && k.month == monthKey {
			delete(r.marks, k)
			n++
		}
	}
	return n, nil
}

func (r *ProgressRepository) GetMonth(ctx context.Context, employeeID, monthKey string) (progress.Sheet, error) {
	return r.GetRange(ctx, employeeID, monthKey, monthKey)
}

func (r *ProgressRepository) GetRange(_ context.Context, employeeID, fromMonth, toMonth string) (progress.Sheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []progress.DailyProgress
	for k, at := range r.marks {
		if k.employeeID == employeeID && k.month >= fromMonth && k.month <= toMonth {
			records = append(records, progress.DailyProgress{
				EmployeeID:  k.employeeID,
				MonthKey:    k.month,
				DayKey:      k.day,
				ActivityID:  k.activityID,
				CompletedAt: at,
			})
		}
	}
	return progress.FromRecords(records), nil
}

var _ progress.Repository = (*ProgressRepository)(nil)
