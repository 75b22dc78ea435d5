package performance

import (
	"context"
	"testing"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	domain "github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/performance"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSheets struct {
	sheet progress.Sheet
	from  calendar.MonthKey
	to    calendar.MonthKey
	calls int
}

func (s *stubSheets) MergedSheet(_ context.Context, _ string, from, to calendar.MonthKey) (progress.Sheet, error) {
	s.calls++
	s.from, s.to = from, to
	return s.sheet, nil
}

func newTestService(t *testing.T, sheet progress.Sheet) (*PerformanceServiceImpl, *stubSheets, *memory.SubmissionRepository) {
	t.Helper()
	mentor := "e-m"
	subs := memory.NewSubmissionRepository()
	employees := memory.NewEmployeeRepository(subs,
		employee.Employee{ID: "e-1", FullName: "Siti", MentorID: &mentor},
		employee.Employee{ID: "e-2", FullName: "Budi"},
		employee.Employee{ID: "e-m", FullName: "Mentor"},
	)
	sheets := &stubSheets{sheet: sheet}
	now := func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	return NewPerformanceService(testCatalog(t), sheets, employees, subs, now), sheets, subs
}

func ctxFor(employeeID string) context.Context {
	return auth.ContextWithActor(context.Background(), auth.Actor{UserID: "u-" + employeeID, EmployeeID: employeeID, Role: user.RoleEmployee})
}

func TestMonthlyScorecard(t *testing.T) {
	sheet := progress.Sheet{}
	fillMonth(sheet, "2026-03")
	svc, sheets, _ := newTestService(t, sheet)

	card, err := svc.Monthly(ctxFor("e-1"), domain.MonthlyRequest{MonthKey: "2026-03"})
	require.NoError(t, err)
	assert.Equal(t, "e-1", card.EmployeeID)
	assert.Equal(t, domain.PeriodMonthly, card.Period)
	assert.Equal(t, "4.00", card.CompositeIndex.StringFixed(2))
	assert.Equal(t, domain.PredicateDenganPujian, card.Predicate)
	assert.Equal(t, calendar.MonthKey("2026-03"), sheets.from)
	assert.Equal(t, calendar.MonthKey("2026-03"), sheets.to)

	_, err = svc.Monthly(ctxFor("e-1"), domain.MonthlyRequest{MonthKey: "2026-04"})
	assert.ErrorIs(t, err, domain.ErrFuturePeriod)

	_, err = svc.Monthly(ctxFor("e-1"), domain.MonthlyRequest{MonthKey: "03-2026"})
	assert.Error(t, err)
}

func TestScorecardVisibility(t *testing.T) {
	svc, sheets, _ := newTestService(t, progress.Sheet{})

	_, err := svc.Monthly(ctxFor("e-m"), domain.MonthlyRequest{EmployeeID: "e-1", MonthKey: "2026-03"})
	assert.NoError(t, err, "mentor sees mentee")

	calls := sheets.calls
	_, err = svc.Monthly(ctxFor("e-2"), domain.MonthlyRequest{EmployeeID: "e-1", MonthKey: "2026-03"})
	assert.ErrorIs(t, err, employee.ErrUnauthorized)
	assert.Equal(t, calls, sheets.calls, "no progress is read for a hidden employee")

	admin := auth.ContextWithActor(context.Background(), auth.Actor{UserID: "u-admin", Role: user.RoleAdmin})
	card, err := svc.Monthly(admin, domain.MonthlyRequest{EmployeeID: "e-2", MonthKey: "2026-03"})
	require.NoError(t, err)
	assert.Equal(t, "e-2", card.EmployeeID)
}

func TestWeeklyScorecardUsesWeekLengthForDailyActivities(t *testing.T) {
	sheet := progress.Sheet{}
	fillMonth(sheet, "2026-03")
	svc, _, _ := newTestService(t, sheet)

	// 1 March 2026 is a Sunday, so the first bucket runs 1..8.
	card, err := svc.Weekly(ctxFor("e-1"), domain.WeeklyRequest{MonthKey: "2026-03", WeekIndex: 1})
	require.NoError(t, err)
	require.NotNil(t, card.Week)
	assert.Equal(t, 8, card.Week.Len())

	ibadah := card.Categories[0]
	assert.Equal(t, 8, ibadah.Activities[0].Target)
	assert.Equal(t, 100, ibadah.Activities[0].Percentage)
	assert.Equal(t, 4, ibadah.Activities[1].Target)
	assert.Equal(t, 25, ibadah.Activities[1].Percentage)
	assert.Equal(t, 63, ibadah.Score)
	assert.Equal(t, domain.GradeD, ibadah.Grade)
	assert.Equal(t, "0.50", card.CompositeIndex.StringFixed(2))

	_, err = svc.Weekly(ctxFor("e-1"), domain.WeeklyRequest{MonthKey: "2026-03", WeekIndex: 5})
	assert.ErrorIs(t, err, domain.ErrWeekNotFound)
}

func TestYearlyCountsOnlyApprovedMonths(t *testing.T) {
	sheet := progress.Sheet{}
	for _, m := range []string{"2026-01", "2026-02", "2026-03"} {
		fillMonth(sheet, m)
	}
	svc, sheets, subs := newTestService(t, sheet)
	ctx := context.Background()
	require.NoError(t, subs.Upsert(ctx, &submission.Submission{EmployeeID: "e-1", MonthKey: "2026-01", Status: submission.StatusPendingManager}))
	require.NoError(t, subs.Upsert(ctx, &submission.Submission{EmployeeID: "e-1", MonthKey: "2026-02", Status: submission.StatusApproved}))

	card, err := svc.Yearly(ctxFor("e-1"), domain.YearlyRequest{Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02"}, card.CountedMonths)
	assert.Equal(t, calendar.MonthKey("2026-01"), sheets.from)
	assert.Equal(t, calendar.MonthKey("2026-03"), sheets.to)

	subuh := card.Categories[0].Activities[0]
	assert.Equal(t, 20, subuh.Achieved)
	assert.Equal(t, 240, subuh.Target)
	assert.Equal(t, 8, subuh.Percentage)
	assert.Equal(t, domain.PredicateKurang, card.Predicate)

	_, err = svc.Yearly(ctxFor("e-1"), domain.YearlyRequest{Year: 2027})
	assert.ErrorIs(t, err, domain.ErrFuturePeriod)
}

func TestApprovedMonths(t *testing.T) {
	got := ApprovedMonths([]submission.Submission{
		{MonthKey: "2026-01", Status: submission.StatusApproved},
		{MonthKey: "2026-02", Status: submission.StatusRejectedManager},
		{MonthKey: "2026-03", Status: submission.StatusPendingMentor},
	})
	assert.Equal(t, map[string]bool{"2026-01": true}, got)
}
