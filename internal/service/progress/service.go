package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activity"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
)

// ReportSource supplies counter-report marks already projected onto days.
type ReportSource interface {
	ProjectedProgress(ctx context.Context, employeeID string) (progress.Sheet, error)
}

type ProgressServiceImpl struct {
	catalog        *activity.Catalog
	repo           progress.Repository
	employeeRepo   employee.EmployeeRepository
	readingRepo    employee.ReadingHistoryRepository
	submissionRepo submission.Repository
	reports        ReportSource
	gate           *MonthGate
	now            func() time.Time
}

func NewProgressService(
	catalog *activity.Catalog,
	repo progress.Repository,
	employeeRepo employee.EmployeeRepository,
	readingRepo employee.ReadingHistoryRepository,
	submissionRepo submission.Repository,
	reports ReportSource,
	gate *MonthGate,
	now func() time.Time,
) *ProgressServiceImpl {
	return &ProgressServiceImpl{
		catalog:        catalog,
		repo:           repo,
		employeeRepo:   employeeRepo,
		readingRepo:    readingRepo,
		submissionRepo: submissionRepo,
		reports:        reports,
		gate:           gate,
		now:            now,
	}
}

// MarkCompleted implements progress.Service.
func (s *ProgressServiceImpl) MarkCompleted(ctx context.Context, req progress.MarkCompletedRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	act, err := s.catalog.Get(req.ActivityID)
	if err != nil {
		return err
	}
	if !act.IsChecklist() {
		return progress.ErrNotChecklist
	}

	month := calendar.MonthKey(req.MonthKey)
	if req.Day > month.Days() {
		return progress.ErrDayOutOfRange
	}
	now := s.now()
	today := calendar.MonthKeyOf(now)
	if month.After(today) || (month == today && req.Day > now.Day()) {
		return progress.ErrFutureDay
	}

	if _, err := s.gate.Writable(ctx, req.EmployeeID, req.MonthKey); err != nil {
		return err
	}

	if err := s.repo.MarkCompleted(ctx, req.EmployeeID, req.MonthKey, calendar.DayKey(req.Day), req.ActivityID, now); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// ResetMonth implements progress.Service.
func (s *ProgressServiceImpl) ResetMonth(ctx context.Context, employeeID, monthKey string) (progress.ResetMonthResponse, error) {
	if _, err := calendar.ParseMonthKey(monthKey); err != nil {
		return progress.ResetMonthResponse{}, err
	}
	if _, err := s.gate.Writable(ctx, employeeID, monthKey); err != nil {
		return progress.ResetMonthResponse{}, err
	}

	removed, err := s.repo.ResetMonth(ctx, employeeID, monthKey)
	if err != nil {
		return progress.ResetMonthResponse{}, err
	}
	slog.Info("daily progress reset", "employee_id", employeeID, "month", monthKey, "removed", removed)
	return progress.ResetMonthResponse{MonthKey: monthKey, Removed: removed}, nil
}

// MonthView implements progress.Service.
func (s *ProgressServiceImpl) MonthView(ctx context.Context, employeeID, monthKey string) (progress.MonthView, error) {
	month, err := calendar.ParseMonthKey(monthKey)
	if err != nil {
		return progress.MonthView{}, err
	}
	if _, err := s.visibleEmployee(ctx, employeeID); err != nil {
		return progress.MonthView{}, err
	}

	sheet, err := s.MergedSheet(ctx, employeeID, month, month)
	if err != nil {
		return progress.MonthView{}, err
	}

	status := submission.StatusNone
	sub, err := s.submissionRepo.GetByEmployeeMonth(ctx, employeeID, monthKey)
	if err != nil {
		return progress.MonthView{}, err
	}
	if sub != nil {
		status = sub.Status
	}

	days := sheet[monthKey]
	if days == nil {
		days = map[string]map[string]bool{}
	}
	return progress.MonthView{
		EmployeeID:       employeeID,
		MonthKey:         monthKey,
		Progress:         progress.Sheet{monthKey: days},
		Weeks:            calendar.MonthWeeks(month),
		SubmissionStatus: string(status),
		Locked:           status == submission.StatusApproved,
	}, nil
}

// MergedSheet combines daily marks, projected counter reports and reading
// histories for months from..to inclusive. Reading histories are best
// effort: a failed read is logged and contributes nothing.
func (s *ProgressServiceImpl) MergedSheet(ctx context.Context, employeeID string, from, to calendar.MonthKey) (progress.Sheet, error) {
	sheet, err := s.repo.GetRange(ctx, employeeID, from.String(), to.String())
	if err != nil {
		return nil, err
	}

	reports, err := s.reports.ProjectedProgress(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	sheet.Merge(reports)

	loc := s.now().Location()
	histories, err := s.readingRepo.ListBetween(ctx, employeeID, from.Start(loc), to.Next().Start(loc))
	if err != nil {
		slog.Warn("reading history unavailable, continuing without it", "employee_id", employeeID, "error", err)
		return sheet, nil
	}
	sheet.Merge(ProjectReadings(s.catalog, histories))
	return sheet, nil
}

// ProjectReadings marks every activity driven by a reading history on each
// day a reading of the matching kind was logged.
func ProjectReadings(catalog *activity.Catalog, histories []employee.ReadingHistory) progress.Sheet {
	sheet := progress.Sheet{}
	quran := catalog.WithTrigger(activity.TriggerQuranReadingHistory)
	book := catalog.WithTrigger(activity.TriggerBookReadingHistory)

	for _, h := range histories {
		targets := book
		if h.Kind == employee.ReadingKindQuran {
			targets = quran
		}
		month := calendar.MonthKeyOf(h.ReadOn).String()
		day := calendar.DayKey(h.ReadOn.Day())
		for _, a := range targets {
			sheet.Mark(month, day, a.ID)
		}
	}
	return sheet
}

func (s *ProgressServiceImpl) visibleEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.VisibleTo(actor.EmployeeID, actor.IsAdmin()) {
		return employee.Employee{}, employee.ErrUnauthorized
	}
	return emp, nil
}

var _ progress.Service = (*ProgressServiceImpl)(nil)
