package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activityreport"
)

// ActivityReportRepository keeps one versioned document per employee.
// PutHook, when set, runs before every Put and may fail it.
type ActivityReportRepository struct {
	mu      sync.Mutex
	docs    map[string]activityreport.Document
	puts    int
	PutHook func(ctx context.Context, doc activityreport.Document) error
}

func NewActivityReportRepository() *ActivityReportRepository {
	return &ActivityReportRepository{docs: make(map[string]activityreport.Document)}
}

func (r *ActivityReportRepository) Get(_ context.Context, employeeID string) (activityreport.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[employeeID]
	if !ok {
		return activityreport.Document{EmployeeID: employeeID, Reports: activityreport.ReportsByMonth{}}, nil
	}
	return doc.Clone(), nil
}

func (r *ActivityReportRepository) Put(ctx context.Context, doc activityreport.Document) (activityreport.Document, error) {
	if r.PutHook != nil {
		if err := r.PutHook(ctx, doc); err != nil {
			return activityreport.Document{}, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.docs[doc.EmployeeID]
	if stored.Version != doc.Version {
		return activityreport.Document{}, activityreport.ErrVersionConflict
	}
	doc = doc.Clone()
	doc.Version++
	doc.UpdatedAt = time.Now()
	r.docs[doc.EmployeeID] = doc
	r.puts++
	return doc.Clone(), nil
}

// Puts counts successful stores.
func (r *ActivityReportRepository) Puts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.puts
}

var _ activityreport.Repository = (*ActivityReportRepository)(nil)
