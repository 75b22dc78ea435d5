package activityreport

import "context"

type Repository interface {
	// Get returns the employee's document, or an empty document with
	// version 0 when nothing has been stored yet.
	Get(ctx context.Context, employeeID string) (Document, error)
	// Put stores doc if the stored version still equals doc.Version and
	// returns the document with its new version. A stale version yields
	// ErrVersionConflict.
	Put(ctx context.Context, doc Document) (Document, error)
}
