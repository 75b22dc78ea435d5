package performance

import (
	"context"
	"strconv"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activity"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/performance"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
	"golang.org/x/sync/errgroup"
)

// SheetSource returns the merged progress of an employee for a month range.
type SheetSource interface {
	MergedSheet(ctx context.Context, employeeID string, from, to calendar.MonthKey) (progress.Sheet, error)
}

type PerformanceServiceImpl struct {
	catalog        *activity.Catalog
	calculator     *Calculator
	sheets         SheetSource
	employeeRepo   employee.EmployeeRepository
	submissionRepo submission.Repository
	now            func() time.Time
}

func NewPerformanceService(
	catalog *activity.Catalog,
	sheets SheetSource,
	employeeRepo employee.EmployeeRepository,
	submissionRepo submission.Repository,
	now func() time.Time,
) *PerformanceServiceImpl {
	return &PerformanceServiceImpl{
		catalog:        catalog,
		calculator:     NewCalculator(),
		sheets:         sheets,
		employeeRepo:   employeeRepo,
		submissionRepo: submissionRepo,
		now:            now,
	}
}

// Monthly implements performance.Service.
func (s *PerformanceServiceImpl) Monthly(ctx context.Context, req performance.MonthlyRequest) (performance.Scorecard, error) {
	if err := req.Validate(); err != nil {
		return performance.Scorecard{}, err
	}
	month := calendar.MonthKey(req.MonthKey)
	if month.After(calendar.MonthKeyOf(s.now())) {
		return performance.Scorecard{}, performance.ErrFuturePeriod
	}

	employeeID, sheet, err := s.load(ctx, req.EmployeeID, month, month)
	if err != nil {
		return performance.Scorecard{}, err
	}

	res := s.calculator.Score(s.catalog, sheet, Period{Months: []string{month.String()}, TargetMultiplier: 1})
	return scorecard(employeeID, performance.PeriodMonthly, month.String(), res), nil
}

// Weekly implements performance.Service. Daily-cadence activities are
// measured against the number of days in the week.
func (s *PerformanceServiceImpl) Weekly(ctx context.Context, req performance.WeeklyRequest) (performance.Scorecard, error) {
	if err := req.Validate(); err != nil {
		return performance.Scorecard{}, err
	}
	month := calendar.MonthKey(req.MonthKey)
	if month.After(calendar.MonthKeyOf(s.now())) {
		return performance.Scorecard{}, performance.ErrFuturePeriod
	}
	bucket, ok := calendar.WeekByIndex(calendar.MonthWeeks(month), req.WeekIndex)
	if !ok {
		return performance.Scorecard{}, performance.ErrWeekNotFound
	}

	employeeID, sheet, err := s.load(ctx, req.EmployeeID, month, month)
	if err != nil {
		return performance.Scorecard{}, err
	}

	res := s.calculator.Score(s.catalog, sheet, Period{
		Months:           []string{month.String()},
		TargetMultiplier: 1,
		Days:             bucket.Days,
	})
	card := scorecard(employeeID, performance.PeriodWeekly, month.String(), res)
	card.Week = &bucket
	return card, nil
}

// Yearly implements performance.Service. Only months whose submission is
// approved contribute achievement; the target always spans twelve months.
func (s *PerformanceServiceImpl) Yearly(ctx context.Context, req performance.YearlyRequest) (performance.Scorecard, error) {
	if err := req.Validate(); err != nil {
		return performance.Scorecard{}, err
	}
	months := calendar.MonthsOfYear(req.Year, s.now())
	if len(months) == 0 {
		return performance.Scorecard{}, performance.ErrFuturePeriod
	}

	employeeID, err := s.resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return performance.Scorecard{}, err
	}

	keys := make([]string, len(months))
	for i, m := range months {
		keys[i] = m.String()
	}

	var (
		sheet       progress.Sheet
		submissions []submission.Submission
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sheet, err = s.sheets.MergedSheet(gCtx, employeeID, months[0], months[len(months)-1])
		return err
	})
	g.Go(func() error {
		var err error
		submissions, err = s.submissionRepo.ListByEmployeeMonths(gCtx, employeeID, keys)
		return err
	})
	if err := g.Wait(); err != nil {
		return performance.Scorecard{}, err
	}

	eligible := ApprovedMonths(submissions)
	res := s.calculator.Score(s.catalog, sheet, Period{
		Months:           keys,
		TargetMultiplier: 12,
		Eligible:         eligible,
	})

	card := scorecard(employeeID, performance.PeriodYearly, strconv.Itoa(req.Year), res)
	card.CountedMonths = []string{}
	for _, k := range keys {
		if eligible[k] {
			card.CountedMonths = append(card.CountedMonths, k)
		}
	}
	return card, nil
}

// ApprovedMonths returns the months whose status is exactly approved.
func ApprovedMonths(subs []submission.Submission) map[string]bool {
	out := make(map[string]bool, len(subs))
	for _, sub := range subs {
		if sub.Status == submission.StatusApproved {
			out[sub.MonthKey] = true
		}
	}
	return out
}

func (s *PerformanceServiceImpl) load(ctx context.Context, requested string, from, to calendar.MonthKey) (string, progress.Sheet, error) {
	employeeID, err := s.resolveEmployee(ctx, requested)
	if err != nil {
		return "", nil, err
	}
	sheet, err := s.sheets.MergedSheet(ctx, employeeID, from, to)
	if err != nil {
		return "", nil, err
	}
	return employeeID, sheet, nil
}

// resolveEmployee defaults to the caller and enforces the visibility rule.
func (s *PerformanceServiceImpl) resolveEmployee(ctx context.Context, requested string) (string, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return "", err
	}
	if requested == "" || requested == actor.EmployeeID {
		if actor.EmployeeID == "" {
			return auth.EmployeeFromContext(ctx)
		}
		return actor.EmployeeID, nil
	}

	emp, err := s.employeeRepo.GetByID(ctx, requested)
	if err != nil {
		return "", err
	}
	if !emp.VisibleTo(actor.EmployeeID, actor.IsAdmin()) {
		return "", employee.ErrUnauthorized
	}
	return emp.ID, nil
}

func scorecard(employeeID string, kind performance.PeriodKind, label string, res Result) performance.Scorecard {
	return performance.Scorecard{
		EmployeeID:     employeeID,
		Period:         kind,
		Label:          label,
		Categories:     res.Categories,
		CompositeIndex: res.CompositeIndex,
		Predicate:      res.Predicate,
	}
}

var _ performance.Service = (*PerformanceServiceImpl)(nil)
