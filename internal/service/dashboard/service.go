package dashboard

import (
	"context"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/dashboard"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
	"golang.org/x/sync/errgroup"
)

const recentSubmissionLimit = 10

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, now func() time.Time) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		now:                 now,
	}
}

// resolveMonth parses YYYY-MM, defaulting to the current month
func (s *DashboardServiceImpl) resolveMonth(month string) (calendar.MonthKey, error) {
	if month == "" {
		return calendar.MonthKeyOf(s.now()), nil
	}
	return calendar.ParseMonthKey(month)
}

// GetDashboard returns the combined admin dashboard, one query per goroutine
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, month string) (*dashboard.DashboardResponse, error) {
	key, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}

	var (
		stats  *dashboard.SubmissionStatsResponse
		units  []dashboard.UnitStatsResponse
		recent []dashboard.RecentSubmissionItem
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.GetSubmissionStatusCounts(gCtx, key.String())
		if err != nil {
			return err
		}
		stats = toStatsResponse(key.String(), counts)
		return nil
	})

	g.Go(func() error {
		rows, err := s.GetUnitStats(gCtx, key.String())
		if err != nil {
			return err
		}
		units = make([]dashboard.UnitStatsResponse, 0, len(rows))
		for _, u := range rows {
			units = append(units, dashboard.UnitStatsResponse{
				Unit:         u.Unit,
				Activated:    u.Activated,
				Submitted:    u.Submitted,
				Approved:     u.Approved,
				Rejected:     u.Rejected,
				SubmittedPct: percent(u.Submitted, u.Activated),
			})
		}
		return nil
	})

	g.Go(func() error {
		items, err := s.GetRecentSubmissions(gCtx, key.String(), recentSubmissionLimit)
		if err != nil {
			return err
		}
		recent = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []dashboard.RecentSubmissionItem{}
	}
	return &dashboard.DashboardResponse{
		SubmissionStats:   *stats,
		Units:             units,
		RecentSubmissions: recent,
		Month:             key.String(),
	}, nil
}

// SubmissionStats counts activated employees per submission status
func (s *DashboardServiceImpl) SubmissionStats(ctx context.Context, month string) (*dashboard.SubmissionStatsResponse, error) {
	key, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	counts, err := s.GetSubmissionStatusCounts(ctx, key.String())
	if err != nil {
		return nil, err
	}
	return toStatsResponse(key.String(), counts), nil
}

// toStatsResponse fills every status with zero so clients see the full set.
func toStatsResponse(month string, counts *dashboard.StatusCounts) *dashboard.SubmissionStatsResponse {
	byStatus := make(map[string]int64, len(submission.AllStatuses))
	for _, st := range submission.AllStatuses {
		byStatus[string(st)] = 0
	}
	for st, n := range counts.ByStatus {
		byStatus[st] += n
	}

	var submitted, awaiting int64
	for _, st := range submission.AllStatuses {
		if st.IsPending() {
			awaiting += byStatus[string(st)]
			submitted += byStatus[string(st)]
		}
	}
	submitted += byStatus[string(submission.StatusApproved)]

	return &dashboard.SubmissionStatsResponse{
		Month:          month,
		Activated:      counts.Activated,
		ByStatus:       byStatus,
		SubmittedPct:   percent(submitted, counts.Activated),
		ApprovedPct:    percent(byStatus[string(submission.StatusApproved)], counts.Activated),
		AwaitingReview: awaiting,
	}
}

func percent(part, whole int64) int {
	if whole == 0 {
		return 0
	}
	return int((part*100 + whole/2) / whole)
}
