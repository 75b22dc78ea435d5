package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
)

type EmployeeRepository struct {
	mu          sync.Mutex
	employees   map[string]employee.Employee
	submissions *SubmissionRepository
}

// NewEmployeeRepository seeds the store. submissions may be nil; it is
// consulted by ListAwaitingSubmission.
func NewEmployeeRepository(submissions *SubmissionRepository, seed ...employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]employee.Employee), submissions: submissions}
	for _, e := range seed {
		r.Put(e)
	}
	return r
}

// Put inserts or replaces an employee.
func (r *EmployeeRepository) Put(e employee.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.EmploymentStatus == "" {
		e.EmploymentStatus = employee.EmploymentStatusActive
	}
	e.ActivatedMonths = append([]string{}, e.ActivatedMonths...)
	r.employees[e.ID] = e
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepository) ActivateMonth(_ context.Context, id string, month string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if !validator.IsInSlice(month, e.ActivatedMonths) {
		e.ActivatedMonths = append(e.ActivatedMonths, month)
		e.UpdatedAt = time.Now()
		r.employees[id] = e
	}
	return e, nil
}

func (r *EmployeeRepository) ListActivatedForMonth(_ context.Context, month string) ([]employee.Employee, error) {
	return r.filter(func(e employee.Employee) bool { return e.IsMonthActivated(month) }), nil
}

func (r *EmployeeRepository) ListAwaitingSubmission(ctx context.Context, month string) ([]employee.Employee, error) {
	return r.filter(func(e employee.Employee) bool {
		if !e.IsMonthActivated(month) {
			return false
		}
		if r.submissions == nil {
			return true
		}
		s, _ := r.submissions.GetByEmployeeMonth(ctx, e.ID, month)
		return s == nil || s.Status.IsRejected()
	}), nil
}

func (r *EmployeeRepository) ListActive(_ context.Context) ([]employee.Employee, error) {
	return r.filter(func(employee.Employee) bool { return true }), nil
}

func (r *EmployeeRepository) filter(keep func(employee.Employee) bool) []employee.Employee {
	r.mu.Lock()
	all := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if e.EmploymentStatus == employee.EmploymentStatusActive {
			all = append(all, e)
		}
	}
	r.mu.Unlock()

	var out []employee.Employee
	for _, e := range all {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

type ReadingHistoryRepository struct {
	mu      sync.Mutex
	entries []employee.ReadingHistory
	// Err, when set, is returned by every call.
	Err error
}

func NewReadingHistoryRepository() *ReadingHistoryRepository {
	return &ReadingHistoryRepository{}
}

func (r *ReadingHistoryRepository) Create(_ context.Context, h employee.ReadingHistory) (employee.ReadingHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return employee.ReadingHistory{}, r.Err
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	h.CreatedAt = time.Now()
	r.entries = append(r.entries, h)
	return h, nil
}

func (r *ReadingHistoryRepository) ListBetween(_ context.Context, employeeID string, from, to time.Time) ([]employee.ReadingHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []employee.ReadingHistory
	for _, h := range r.entries {
		if h.EmployeeID == employeeID && !h.ReadOn.Before(from) && h.ReadOn.Before(to) {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReadOn.Before(out[j].ReadOn) })
	return out, nil
}

var (
	_ employee.EmployeeRepository       = (*EmployeeRepository)(nil)
	_ employee.ReadingHistoryRepository = (*ReadingHistoryRepository)(nil)
	_ submission.Repository             = (*SubmissionRepository)(nil)
)
