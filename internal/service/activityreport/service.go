package activityreport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activity"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activityreport"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/writequeue"
)

// MonthGate is satisfied by the progress service's gate.
type MonthGate interface {
	Writable(ctx context.Context, employeeID, monthKey string) (employee.Employee, error)
}

type ActivityReportServiceImpl struct {
	catalog      *activity.Catalog
	repo         activityreport.Repository
	employeeRepo employee.EmployeeRepository
	gate         MonthGate
	queue        *writequeue.Queue[activityreport.Document]
	now          func() time.Time
}

func NewActivityReportService(
	catalog *activity.Catalog,
	repo activityreport.Repository,
	employeeRepo employee.EmployeeRepository,
	gate MonthGate,
	cfg writequeue.Config,
	now func() time.Time,
) *ActivityReportServiceImpl {
	s := &ActivityReportServiceImpl{
		catalog:      catalog,
		repo:         repo,
		employeeRepo: employeeRepo,
		gate:         gate,
		now:          now,
	}
	s.queue = writequeue.New(cfg,
		func(ctx context.Context, employeeID string) (activityreport.Document, error) {
			return repo.Get(ctx, employeeID)
		},
		func(ctx context.Context, _ string, doc activityreport.Document) (activityreport.Document, error) {
			return repo.Put(ctx, doc)
		},
		activityreport.Document.Clone,
	)
	return s
}

// AddManualReportByDate implements activityreport.Service.
func (s *ActivityReportServiceImpl) AddManualReportByDate(ctx context.Context, req activityreport.AddManualReportRequest) (activityreport.Record, error) {
	if err := req.Validate(); err != nil {
		return activityreport.Record{}, err
	}
	if err := s.checkActivity(req.ActivityID, activity.TriggerManualReport); err != nil {
		return activityreport.Record{}, err
	}
	if err := s.checkNotFuture(req.Date); err != nil {
		return activityreport.Record{}, err
	}
	if _, err := s.gate.Writable(ctx, req.EmployeeID, req.MonthKey); err != nil {
		return activityreport.Record{}, err
	}

	now := s.now()
	doc, err := s.apply(ctx, req.EmployeeID, func(doc activityreport.Document) (activityreport.Document, error) {
		err := doc.Reports.AddEntry(req.MonthKey, req.ActivityID, activityreport.Entry{
			Date:        req.Date,
			Note:        req.Note,
			CompletedAt: now,
		})
		return doc, err
	})
	if err != nil {
		return activityreport.Record{}, err
	}
	return doc.Reports[req.MonthKey][req.ActivityID], nil
}

// AddBookReadingReport implements activityreport.Service.
func (s *ActivityReportServiceImpl) AddBookReadingReport(ctx context.Context, req activityreport.AddBookReportRequest) (activityreport.Record, error) {
	if err := req.Validate(); err != nil {
		return activityreport.Record{}, err
	}
	if err := s.checkActivity(req.ActivityID, activity.TriggerBookReadingReport); err != nil {
		return activityreport.Record{}, err
	}
	if err := s.checkNotFuture(req.DateCompleted); err != nil {
		return activityreport.Record{}, err
	}
	if _, err := s.gate.Writable(ctx, req.EmployeeID, req.MonthKey); err != nil {
		return activityreport.Record{}, err
	}

	now := s.now()
	doc, err := s.apply(ctx, req.EmployeeID, func(doc activityreport.Document) (activityreport.Document, error) {
		err := doc.Reports.AddBookEntry(req.MonthKey, req.ActivityID, activityreport.BookEntry{
			BookTitle:     req.BookTitle,
			PagesRead:     req.PagesRead,
			DateCompleted: req.DateCompleted,
			CompletedAt:   now,
		})
		return doc, err
	})
	if err != nil {
		return activityreport.Record{}, err
	}
	return doc.Reports[req.MonthKey][req.ActivityID], nil
}

// GetMonthlyReports implements activityreport.Service. Mutations still
// waiting in the write queue are included.
func (s *ActivityReportServiceImpl) GetMonthlyReports(ctx context.Context, employeeID string) (activityreport.ReportsByMonth, error) {
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

	doc, err := s.load(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return doc.Reports, nil
}

// RemoveEntry implements activityreport.Service. Administrators only.
func (s *ActivityReportServiceImpl) RemoveEntry(ctx context.Context, req activityreport.RemoveEntryRequest) (activityreport.Record, error) {
	if err := req.Validate(); err != nil {
		return activityreport.Record{}, err
	}
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return activityreport.Record{}, err
	}
	if !actor.IsAdmin() {
		return activityreport.Record{}, user.ErrAdminPrivilegeRequired
	}
	if _, err := s.gate.Writable(ctx, req.EmployeeID, req.MonthKey); err != nil {
		return activityreport.Record{}, err
	}

	doc, err := s.apply(ctx, req.EmployeeID, func(doc activityreport.Document) (activityreport.Document, error) {
		return doc, doc.Reports.RemoveEntry(req.MonthKey, req.ActivityID, req.Date)
	})
	if err != nil {
		return activityreport.Record{}, err
	}
	slog.Info("report entry removed",
		"employee_id", req.EmployeeID, "month", req.MonthKey, "activity_id", req.ActivityID,
		"date", req.Date, "admin_user_id", actor.UserID)
	return doc.Reports[req.MonthKey][req.ActivityID], nil
}

// ProjectedProgress implements activityreport.Service.
func (s *ActivityReportServiceImpl) ProjectedProgress(ctx context.Context, employeeID string) (progress.Sheet, error) {
	doc, err := s.load(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return doc.Reports.Project(s.now().Location()), nil
}

func (s *ActivityReportServiceImpl) load(ctx context.Context, employeeID string) (activityreport.Document, error) {
	if doc, ok := s.queue.Peek(employeeID); ok {
		return doc, nil
	}
	doc, err := s.repo.Get(ctx, employeeID)
	if err != nil {
		return activityreport.Document{}, fmt.Errorf("load activity reports: %w", err)
	}
	return doc, nil
}

func (s *ActivityReportServiceImpl) apply(ctx context.Context, employeeID string, mutate writequeue.MutateFunc[activityreport.Document]) (activityreport.Document, error) {
	doc, err := s.queue.Apply(ctx, employeeID, func(doc activityreport.Document) (activityreport.Document, error) {
		doc.EmployeeID = employeeID
		if doc.Reports == nil {
			doc.Reports = activityreport.ReportsByMonth{}
		}
		return mutate(doc)
	})
	if errors.Is(err, context.DeadlineExceeded) {
		return activityreport.Document{}, activityreport.ErrWriteTimeout
	}
	return doc, err
}

func (s *ActivityReportServiceImpl) checkActivity(activityID string, want activity.AutomationTrigger) error {
	act, err := s.catalog.Get(activityID)
	if err != nil {
		return err
	}
	if act.AutomationTrigger != want {
		return activityreport.ErrWrongActivityKind
	}
	return nil
}

func (s *ActivityReportServiceImpl) checkNotFuture(date string) error {
	if date > s.now().Format(time.DateOnly) {
		return progress.ErrFutureDay
	}
	return nil
}

var _ activityreport.Service = (*ActivityReportServiceImpl)(nil)
