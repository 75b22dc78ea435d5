package progress

import (
	"context"
	"fmt"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
)

// MonthGate decides whether an employee's month may still be written.
// Both the daily progress store and the report store go through it.
type MonthGate struct {
	employeeRepo   employee.EmployeeRepository
	submissionRepo submission.Repository
}

func NewMonthGate(employeeRepo employee.EmployeeRepository, submissionRepo submission.Repository) *MonthGate {
	return &MonthGate{employeeRepo: employeeRepo, submissionRepo: submissionRepo}
}

// Writable loads the employee and checks that the caller may act for them,
// the month is activated and its report is not approved.
func (g *MonthGate) Writable(ctx context.Context, employeeID, monthKey string) (employee.Employee, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	if !actor.CanActFor(employeeID) {
		return employee.Employee{}, employee.ErrUnauthorized
	}

	emp, err := g.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsMonthActivated(monthKey) {
		return employee.Employee{}, progress.ErrMonthNotActivated
	}

	locked, err := g.Locked(ctx, employeeID, monthKey)
	if err != nil {
		return employee.Employee{}, err
	}
	if locked {
		return employee.Employee{}, progress.ErrMonthLocked
	}
	return emp, nil
}

// Locked reports whether the month's report has been approved.
func (g *MonthGate) Locked(ctx context.Context, employeeID, monthKey string) (bool, error) {
	sub, err := g.submissionRepo.GetByEmployeeMonth(ctx, employeeID, monthKey)
	if err != nil {
		return false, fmt.Errorf("check month lock: %w", err)
	}
	return sub != nil && sub.Status == submission.StatusApproved, nil
}
