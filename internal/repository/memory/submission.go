package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
)

type SubmissionRepository struct {
	mu          sync.Mutex
	submissions map[string]submission.Submission
	events      []submission.Event
	// Names resolves employee ids for inbox items.
	Names map[string]string
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{
		submissions: make(map[string]submission.Submission),
		Names:       make(map[string]string),
	}
}

func (r *SubmissionRepository) GetByID(_ context.Context, id string) (*submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok {
		return nil, submission.ErrSubmissionNotFound
	}
	return &s, nil
}

func (r *SubmissionRepository) GetByEmployeeMonth(_ context.Context, employeeID, monthKey string) (*submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.find(employeeID, monthKey); ok {
		return &s, nil
	}
	return nil, nil
}

func (r *SubmissionRepository) find(employeeID, monthKey string) (submission.Submission, bool) {
	for _, s := range r.submissions {
		if s.EmployeeID == employeeID && s.MonthKey == monthKey {
			return s, true
		}
	}
	return submission.Submission{}, false
}

func (r *SubmissionRepository) ListByEmployeeMonths(_ context.Context, employeeID string, monthKeys []string) ([]submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []submission.Submission
	for _, m := range monthKeys {
		if s, ok := r.find(employeeID, m); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SubmissionRepository) Upsert(_ context.Context, s *submission.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existing, ok := r.find(s.EmployeeID, s.MonthKey); ok {
		if !existing.Status.IsRejected() {
			return submission.ErrInvalidTransition
		}
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	} else {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	r.submissions[s.ID] = *s
	return nil
}

func (r *SubmissionRepository) UpdateReview(_ context.Context, s *submission.Submission, from submission.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.submissions[s.ID]
	if !ok || stored.Status != from {
		return submission.ErrInvalidTransition
	}
	s.UpdatedAt = time.Now()
	r.submissions[s.ID] = *s
	return nil
}

func (r *SubmissionRepository) AppendEvent(_ context.Context, e submission.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.events = append(r.events, e)
	return nil
}

func (r *SubmissionRepository) ListEvents(_ context.Context, submissionID string) ([]submission.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []submission.Event
	for _, e := range r.events {
		if e.SubmissionID == submissionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *SubmissionRepository) ListPendingForReviewer(_ context.Context, reviewerID string) ([]submission.InboxItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []submission.InboxItem
	for _, s := range r.submissions {
		role, ok := s.Status.PendingRole()
		if !ok {
			continue
		}
		stage := s.Stage(role)
		if stage == nil || stage.ReviewerID == nil || *stage.ReviewerID != reviewerID {
			continue
		}
		out = append(out, submission.InboxItem{Submission: s, EmployeeName: r.Names[s.EmployeeID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Submission.MonthKey < out[j].Submission.MonthKey })
	return out, nil
}

// Events returns every stored event.
func (r *SubmissionRepository) Events() []submission.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]submission.Event(nil), r.events...)
}
