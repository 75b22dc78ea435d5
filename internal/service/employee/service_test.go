package employee

import (
	"context"
	"testing"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (employee.EmployeeService, *memory.ReadingHistoryRepository) {
	t.Helper()
	mentor := "e-m"
	employees := memory.NewEmployeeRepository(nil,
		employee.Employee{ID: "e-1", EmployeeCode: "2019-0042", FullName: "Siti", MentorID: &mentor, ActivatedMonths: []string{"2026-02"}},
		employee.Employee{ID: "e-2", EmployeeCode: "2020-0001", FullName: "Budi"},
		employee.Employee{ID: "e-m", EmployeeCode: "2010-0007", FullName: "Mentor"},
	)
	readings := memory.NewReadingHistoryRepository()
	now := func() time.Time { return time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC) }
	return NewEmployeeService(employees, readings, now), readings
}

func as(employeeID string) context.Context {
	return auth.ContextWithActor(context.Background(), auth.Actor{UserID: "u-" + employeeID, EmployeeID: employeeID, Role: user.RoleEmployee})
}

func asAdmin() context.Context {
	return auth.ContextWithActor(context.Background(), auth.Actor{UserID: "u-admin", Role: user.RoleAdmin})
}

func TestGetEmployee(t *testing.T) {
	svc, _ := setup(t)

	resp, err := svc.GetEmployee(as("e-1"), "e-1")
	require.NoError(t, err)
	assert.Equal(t, "2019-0042", resp.EmployeeCode)
	assert.Equal(t, "active", resp.EmploymentStatus)

	_, err = svc.GetEmployee(as("e-m"), "e-1")
	assert.NoError(t, err, "mentor")

	_, err = svc.GetEmployee(as("e-2"), "e-1")
	assert.ErrorIs(t, err, employee.ErrUnauthorized)

	_, err = svc.GetEmployee(asAdmin(), "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.GetEmployee(context.Background(), "e-1")
	assert.Error(t, err, "no caller")
}

func TestActivateMonth(t *testing.T) {
	svc, _ := setup(t)

	resp, err := svc.ActivateMonth(as("e-1"), employee.ActivateMonthRequest{EmployeeID: "e-1", MonthKey: "2026-03"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02", "2026-03"}, resp.ActivatedMonths)

	resp, err = svc.ActivateMonth(as("e-1"), employee.ActivateMonthRequest{EmployeeID: "e-1", MonthKey: "2026-03"})
	require.NoError(t, err)
	assert.Len(t, resp.ActivatedMonths, 2, "idempotent")

	_, err = svc.ActivateMonth(as("e-1"), employee.ActivateMonthRequest{EmployeeID: "e-1", MonthKey: "2026-04"})
	assert.ErrorIs(t, err, employee.ErrInvalidActivation)

	_, err = svc.ActivateMonth(as("e-m"), employee.ActivateMonthRequest{EmployeeID: "e-1", MonthKey: "2026-01"})
	assert.ErrorIs(t, err, employee.ErrUnauthorized, "reviewers cannot act for the employee")

	resp, err = svc.ActivateMonth(asAdmin(), employee.ActivateMonthRequest{EmployeeID: "e-2", MonthKey: "2026-01"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01"}, resp.ActivatedMonths)

	_, err = svc.ActivateMonth(as("e-1"), employee.ActivateMonthRequest{EmployeeID: "e-1", MonthKey: "March"})
	assert.Error(t, err)
}

func TestReadings(t *testing.T) {
	svc, readings := setup(t)

	resp, err := svc.AddReading(as("e-1"), employee.AddReadingRequest{
		EmployeeID: "e-1", Kind: "quran", Title: "  Al-Kahfi ", Amount: 4, ReadOn: "2026-03-13",
	})
	require.NoError(t, err)
	assert.Equal(t, "Al-Kahfi", resp.Title)
	assert.Equal(t, "2026-03-13", resp.ReadOn)

	_, err = svc.AddReading(as("e-1"), employee.AddReadingRequest{
		EmployeeID: "e-1", Kind: "book", Title: "Sirah", Amount: 30, ReadOn: "2025-12-30",
	})
	require.NoError(t, err)

	_, err = svc.AddReading(as("e-1"), employee.AddReadingRequest{
		EmployeeID: "e-1", Kind: "book", Title: "Sirah", Amount: 30, ReadOn: "2026-03-16",
	})
	assert.ErrorIs(t, err, employee.ErrReadingOutsideRange)

	_, err = svc.AddReading(as("e-1"), employee.AddReadingRequest{EmployeeID: "e-1", Kind: "podcast", Title: "x", Amount: 1, ReadOn: "2026-03-01"})
	assert.Error(t, err)

	_, err = svc.AddReading(as("e-2"), employee.AddReadingRequest{EmployeeID: "e-1", Kind: "quran", Title: "x", Amount: 1, ReadOn: "2026-03-01"})
	assert.ErrorIs(t, err, employee.ErrUnauthorized)

	list, err := svc.ListReadings(as("e-m"), "e-1", 0)
	require.NoError(t, err)
	require.Len(t, list, 1, "defaults to the current year")
	assert.Equal(t, "quran", list[0].Kind)

	list, err = svc.ListReadings(as("e-1"), "e-1", 2025)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sirah", list[0].Title)

	_, err = svc.ListReadings(as("e-2"), "e-1", 2026)
	assert.ErrorIs(t, err, employee.ErrUnauthorized)

	readings.Err = assert.AnError
	_, err = svc.ListReadings(as("e-1"), "e-1", 2026)
	assert.ErrorIs(t, err, assert.AnError)
}
