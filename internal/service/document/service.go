package document

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activity"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/document"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/performance"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
	render "github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/document"
	"golang.org/x/sync/errgroup"
)

// MonthViewer is the part of the progress service used for checklists.
type MonthViewer interface {
	MonthView(ctx context.Context, employeeID, monthKey string) (progress.MonthView, error)
}

type DocumentServiceImpl struct {
	catalog      *activity.Catalog
	performance  performance.Service
	progress     MonthViewer
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewDocumentService(
	catalog *activity.Catalog,
	performanceService performance.Service,
	progressService MonthViewer,
	employeeRepo employee.EmployeeRepository,
	now func() time.Time,
) *DocumentServiceImpl {
	return &DocumentServiceImpl{
		catalog:      catalog,
		performance:  performanceService,
		progress:     progressService,
		employeeRepo: employeeRepo,
		now:          now,
	}
}

// Transcript implements document.Service.
func (s *DocumentServiceImpl) Transcript(ctx context.Context, req document.TranscriptRequest) (document.File, error) {
	if err := req.Validate(); err != nil {
		return document.File{}, err
	}
	emp, err := s.resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return document.File{}, err
	}

	card, err := s.performance.Yearly(ctx, performance.YearlyRequest{EmployeeID: emp.ID, Year: req.Year})
	if err != nil {
		return document.File{}, err
	}

	var buf bytes.Buffer
	err = render.RenderTranscript(&buf, render.TranscriptData{
		Employee:    header(emp),
		Year:        req.Year,
		Scorecard:   card,
		Signatory:   s.signatory(ctx, emp),
		GeneratedAt: s.now(),
	})
	if err != nil {
		return document.File{}, fmt.Errorf("failed to render transcript: %w", err)
	}

	return document.File{
		Name:        fmt.Sprintf("transkrip-%s-%d.pdf", emp.EmployeeCode, req.Year),
		ContentType: document.ContentTypePDF,
		Data:        buf.Bytes(),
	}, nil
}

// Checklist implements document.Service.
func (s *DocumentServiceImpl) Checklist(ctx context.Context, req document.ChecklistRequest) (document.File, error) {
	if err := req.Validate(); err != nil {
		return document.File{}, err
	}
	emp, err := s.resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return document.File{}, err
	}

	var (
		view progress.MonthView
		card performance.Scorecard
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view, err = s.progress.MonthView(gctx, emp.ID, req.MonthKey)
		return err
	})
	g.Go(func() error {
		var err error
		card, err = s.performance.Monthly(gctx, performance.MonthlyRequest{EmployeeID: emp.ID, MonthKey: req.MonthKey})
		return err
	})
	if err := g.Wait(); err != nil {
		return document.File{}, err
	}

	scores := make(map[string]performance.ActivityScore)
	for _, cat := range card.Categories {
		for _, a := range cat.Activities {
			scores[a.ActivityID] = a
		}
	}

	var buf bytes.Buffer
	err = render.RenderChecklist(&buf, render.ChecklistData{
		Employee: header(emp),
		Month:    calendar.MonthKey(req.MonthKey),
		Groups:   s.catalog.Grouped(),
		Weeks:    view.Weeks,
		Sheet:    view.Progress,
		Scores:   scores,
	})
	if err != nil {
		return document.File{}, fmt.Errorf("failed to render checklist: %w", err)
	}

	return document.File{
		Name:        fmt.Sprintf("ceklis-%s-%s.xlsx", emp.EmployeeCode, req.MonthKey),
		ContentType: document.ContentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

func (s *DocumentServiceImpl) resolveEmployee(ctx context.Context, requested string) (employee.Employee, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	if requested == "" {
		if requested, err = auth.EmployeeFromContext(ctx); err != nil {
			return employee.Employee{}, err
		}
	}

	emp, err := s.employeeRepo.GetByID(ctx, requested)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.VisibleTo(actor.EmployeeID, actor.IsAdmin()) {
		return employee.Employee{}, employee.ErrUnauthorized
	}
	return emp, nil
}

// signatory is the manager of the employee, or empty when unknown.
func (s *DocumentServiceImpl) signatory(ctx context.Context, emp employee.Employee) string {
	if emp.ManagerID == nil {
		return ""
	}
	manager, err := s.employeeRepo.GetByID(ctx, *emp.ManagerID)
	if err != nil {
		slog.Warn("failed to load transcript signatory", "employee_id", emp.ID, "manager_id", *emp.ManagerID, "error", err)
		return ""
	}
	return manager.FullName
}

func header(emp employee.Employee) render.EmployeeHeader {
	h := render.EmployeeHeader{Name: emp.FullName, Code: emp.EmployeeCode}
	if emp.Unit != nil {
		h.Unit = *emp.Unit
	}
	if emp.Position != nil {
		h.Position = *emp.Position
	}
	return h
}

var _ document.Service = (*DocumentServiceImpl)(nil)
