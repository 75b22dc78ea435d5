package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetEmployee retrieves an employee visible to the caller (self, reviewer or admin)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ActivateMonth opens a month for progress recording (self or admin)
	ActivateMonth(ctx context.Context, req ActivateMonthRequest) (EmployeeResponse, error)

	// AddReading logs a Quran or book reading session
	AddReading(ctx context.Context, req AddReadingRequest) (ReadingResponse, error)

	// ListReadings lists reading history for a calendar year
	ListReadings(ctx context.Context, employeeID string, year int) ([]ReadingResponse, error)
}
