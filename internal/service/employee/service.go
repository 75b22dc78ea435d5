package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	readingRepo  employee.ReadingHistoryRepository
	now          func() time.Time
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	readingRepo employee.ReadingHistoryRepository,
	now func() time.Time,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		readingRepo:  readingRepo,
		now:          now,
	}
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	// Self, reviewers in the chain and admins only
	if !emp.VisibleTo(actor.EmployeeID, actor.IsAdmin()) {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}

	return employee.ToResponse(emp), nil
}

// ActivateMonth implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ActivateMonth(ctx context.Context, req employee.ActivateMonthRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !actor.CanActFor(req.EmployeeID) {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}

	if calendar.MonthKey(req.MonthKey).After(calendar.MonthKeyOf(s.now())) {
		return employee.EmployeeResponse{}, employee.ErrInvalidActivation
	}

	emp, err := s.employeeRepo.ActivateMonth(ctx, req.EmployeeID, req.MonthKey)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("month activated", "employee_id", req.EmployeeID, "month", req.MonthKey, "by_user_id", actor.UserID)
	return employee.ToResponse(emp), nil
}

// AddReading implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AddReading(ctx context.Context, req employee.AddReadingRequest) (employee.ReadingResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ReadingResponse{}, err
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return employee.ReadingResponse{}, err
	}
	if !actor.CanActFor(req.EmployeeID) {
		return employee.ReadingResponse{}, employee.ErrUnauthorized
	}

	readOn, _ := time.Parse("2006-01-02", req.ReadOn)
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if readOn.After(today) {
		return employee.ReadingResponse{}, employee.ErrReadingOutsideRange
	}

	h, err := s.readingRepo.Create(ctx, employee.ReadingHistory{
		EmployeeID: req.EmployeeID,
		Kind:       employee.ReadingKind(req.Kind),
		Title:      strings.TrimSpace(req.Title),
		Amount:     req.Amount,
		ReadOn:     readOn,
	})
	if err != nil {
		return employee.ReadingResponse{}, err
	}
	return employee.ToReadingResponse(h), nil
}

// ListReadings implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListReadings(ctx context.Context, employeeID string, year int) ([]employee.ReadingResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !emp.VisibleTo(actor.EmployeeID, actor.IsAdmin()) {
		return nil, employee.ErrUnauthorized
	}

	if year == 0 {
		year = s.now().Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	histories, err := s.readingRepo.ListBetween(ctx, employeeID, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}

	responses := make([]employee.ReadingResponse, 0, len(histories))
	for _, h := range histories {
		responses = append(responses, employee.ToReadingResponse(h))
	}
	return responses, nil
}
