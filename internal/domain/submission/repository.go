package submission

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (*Submission, error)
	// GetByEmployeeMonth returns nil without error when the month was never submitted.
	GetByEmployeeMonth(ctx context.Context, employeeID, monthKey string) (*Submission, error)
	ListByEmployeeMonths(ctx context.Context, employeeID string, monthKeys []string) ([]Submission, error)
	// Upsert creates the row or, when the stored row is rejected, overwrites
	// it for resubmission. Any other stored status yields ErrInvalidTransition.
	Upsert(ctx context.Context, s *Submission) error
	// UpdateReview persists s only while the stored status still equals from.
	UpdateReview(ctx context.Context, s *Submission, from Status) error
	AppendEvent(ctx context.Context, e Event) error
	ListEvents(ctx context.Context, submissionID string) ([]Event, error)
	// ListPendingForReviewer returns submissions whose current stage is
	// assigned to reviewerID.
	ListPendingForReviewer(ctx context.Context, reviewerID string) ([]InboxItem, error)
}
