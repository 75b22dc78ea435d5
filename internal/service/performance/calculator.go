package performance

import (
	"math"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activity"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/performance"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/shopspring/decimal"
)

// Period selects what the calculator counts.
type Period struct {
	// Months whose marks count toward achievement.
	Months []string
	// TargetMultiplier scales monthly targets (12 for a year).
	TargetMultiplier int
	// Days restricts counting to these days of the single month in Months.
	// Daily-cadence activities then get len(Days) as their target.
	Days []int
	// Eligible, when non-nil, limits achievement to the listed months. The
	// target is not reduced for ineligible months.
	Eligible map[string]bool
}

type Calculator struct {
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Result is the outcome of one scoring pass.
type Result struct {
	Categories     []performance.CategoryScore
	CompositeIndex decimal.Decimal
	Predicate      performance.Predicate
}

// Score computes activity percentages, category grades and the composite
// index for the period.
func (c *Calculator) Score(catalog *activity.Catalog, sheet progress.Sheet, p Period) Result {
	multiplier := p.TargetMultiplier
	if multiplier < 1 {
		multiplier = 1
	}

	var categories []performance.CategoryScore
	points := make([]decimal.Decimal, 0, len(catalog.Categories()))

	for _, category := range catalog.Categories() {
		acts := catalog.ByCategory(category)
		if len(acts) == 0 {
			continue
		}

		scores := make([]performance.ActivityScore, 0, len(acts))
		sum := 0
		for _, a := range acts {
			achieved := c.achieved(sheet, a.ID, p)
			target := c.target(a, p, multiplier)
			pct := Percentage(achieved, target)
			sum += pct
			scores = append(scores, performance.ActivityScore{
				ActivityID: a.ID,
				Title:      a.Title,
				Achieved:   achieved,
				Target:     target,
				Percentage: pct,
			})
		}

		score := roundInt(float64(sum) / float64(len(scores)))
		grade, point := performance.GradeFor(score)
		points = append(points, point)
		categories = append(categories, performance.CategoryScore{
			Category:   category,
			Score:      score,
			Grade:      grade,
			GradePoint: point,
			Activities: scores,
		})
	}

	return Result{
		Categories:     categories,
		CompositeIndex: CompositeIndex(points),
		Predicate:      performance.PredicateFor(MeanGradePoint(points)),
	}
}

func (c *Calculator) achieved(sheet progress.Sheet, activityID string, p Period) int {
	total := 0
	for _, month := range p.Months {
		if p.Eligible != nil && !p.Eligible[month] {
			continue
		}
		total += sheet.Count(month, activityID, p.Days)
	}
	return total
}

func (c *Calculator) target(a activity.Activity, p Period, multiplier int) int {
	if len(p.Days) > 0 && a.IsDailyCadence() {
		return len(p.Days)
	}
	return a.MonthlyTarget * multiplier
}

// Percentage returns round(achieved/target*100) capped at 100, or 0 when
// target is 0.
func Percentage(achieved, target int) int {
	if target <= 0 {
		return 0
	}
	pct := roundInt(float64(achieved) / float64(target) * 100)
	if pct > 100 {
		return 100
	}
	return pct
}

// MeanGradePoint is the unrounded mean of the category grade points. The
// predicate is looked up from it.
func MeanGradePoint(points []decimal.Decimal) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(points[0], points[1:]...).Div(decimal.NewFromInt(int64(len(points))))
}

// CompositeIndex is the mean grade point rounded to two decimals for
// display.
func CompositeIndex(points []decimal.Decimal) decimal.Decimal {
	return MeanGradePoint(points).Round(2)
}

func roundInt(f float64) int {
	return int(math.Round(f))
}
