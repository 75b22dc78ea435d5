package submission

import "context"

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (SubmissionResponse, error)
	Review(ctx context.Context, req ReviewRequest) (SubmissionResponse, error)
	GetByID(ctx context.Context, id string) (SubmissionDetailResponse, error)
	// GetForMonth returns nil when the month has not been submitted.
	GetForMonth(ctx context.Context, employeeID, monthKey string) (*SubmissionResponse, error)
	Inbox(ctx context.Context) ([]InboxItemResponse, error)
}
