package document

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/document"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/performance"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/fixtures"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubPerformance struct {
	yearlyFor  string
	monthlyFor string
}

func (s *stubPerformance) card() performance.Scorecard {
	return performance.Scorecard{
		Categories: []performance.CategoryScore{{
			Category: "Ibadah", Score: 100, Grade: performance.GradeA, GradePoint: decimal.NewFromInt(4),
			Activities: []performance.ActivityScore{{ActivityID: "shalat_subuh_berjamaah", Title: "Shalat Subuh", Achieved: 2, Target: 20, Percentage: 10}},
		}},
		CompositeIndex: decimal.NewFromInt(4),
		Predicate:      performance.PredicateDenganPujian,
	}
}

func (s *stubPerformance) Monthly(_ context.Context, req performance.MonthlyRequest) (performance.Scorecard, error) {
	s.monthlyFor = req.EmployeeID
	return s.card(), nil
}

func (s *stubPerformance) Weekly(context.Context, performance.WeeklyRequest) (performance.Scorecard, error) {
	return s.card(), nil
}

func (s *stubPerformance) Yearly(_ context.Context, req performance.YearlyRequest) (performance.Scorecard, error) {
	s.yearlyFor = req.EmployeeID
	return s.card(), nil
}

type stubMonthView struct{}

func (stubMonthView) MonthView(_ context.Context, employeeID, monthKey string) (progress.MonthView, error) {
	sheet := progress.Sheet{}
	sheet.Mark(monthKey, calendar.DayKey(1), "shalat_subuh_berjamaah")
	sheet.Mark(monthKey, calendar.DayKey(2), "shalat_subuh_berjamaah")
	return progress.MonthView{
		EmployeeID: employeeID,
		MonthKey:   monthKey,
		Progress:   sheet,
		Weeks:      calendar.MonthWeeks(calendar.MonthKey(monthKey)),
	}, nil
}

func newService(t *testing.T) (*DocumentServiceImpl, *stubPerformance) {
	t.Helper()
	catalog, err := fixtures.DefaultCatalog()
	require.NoError(t, err)
	unit := "ICU"
	manager := "e-g"
	employees := memory.NewEmployeeRepository(nil,
		employee.Employee{ID: "e-1", EmployeeCode: "2019-0042", FullName: "Siti Aminah", Unit: &unit, ManagerID: &manager},
		employee.Employee{ID: "e-2", EmployeeCode: "2020-0001", FullName: "Budi"},
		employee.Employee{ID: "e-g", EmployeeCode: "2005-0003", FullName: "dr. Ahmad Fauzi"},
	)
	perf := &stubPerformance{}
	now := func() time.Time { return time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC) }
	return NewDocumentService(catalog, perf, stubMonthView{}, employees, now), perf
}

func as(employeeID string) context.Context {
	return auth.ContextWithActor(context.Background(), auth.Actor{UserID: "u-" + employeeID, EmployeeID: employeeID, Role: user.RoleEmployee})
}

func TestTranscriptDefaultsToCaller(t *testing.T) {
	svc, perf := newService(t)

	file, err := svc.Transcript(as("e-1"), document.TranscriptRequest{Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, "transkrip-2019-0042-2026.pdf", file.Name)
	assert.Equal(t, document.ContentTypePDF, file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
	assert.Equal(t, "e-1", perf.yearlyFor)
}

func TestTranscriptVisibility(t *testing.T) {
	svc, perf := newService(t)

	_, err := svc.Transcript(as("e-2"), document.TranscriptRequest{EmployeeID: "e-1", Year: 2026})
	assert.ErrorIs(t, err, employee.ErrUnauthorized)
	assert.Empty(t, perf.yearlyFor)

	_, err = svc.Transcript(as("e-g"), document.TranscriptRequest{EmployeeID: "e-1", Year: 2026})
	assert.NoError(t, err, "manager in the chain")

	_, err = svc.Transcript(as("e-1"), document.TranscriptRequest{Year: 26})
	assert.Error(t, err)
}

func TestChecklistWorkbook(t *testing.T) {
	svc, perf := newService(t)

	admin := auth.ContextWithActor(context.Background(), auth.Actor{UserID: "u-admin", Role: user.RoleAdmin})
	file, err := svc.Checklist(admin, document.ChecklistRequest{EmployeeID: "e-1", MonthKey: "2026-03"})
	require.NoError(t, err)
	assert.Equal(t, "ceklis-2019-0042-2026-03.xlsx", file.Name)
	assert.Equal(t, document.ContentTypeXLSX, file.ContentType)
	assert.Equal(t, "e-1", perf.monthlyFor)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()
	assert.Len(t, wb.GetSheetList(), 1)

	_, err = svc.Checklist(admin, document.ChecklistRequest{MonthKey: "2026-03"})
	assert.ErrorIs(t, err, user.ErrEmployeeProfileRequired, "admin without a profile must name the employee")
}
