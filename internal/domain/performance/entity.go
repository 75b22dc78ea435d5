package performance

import (
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

type PeriodKind string

const (
	PeriodMonthly PeriodKind = "monthly"
	PeriodWeekly  PeriodKind = "weekly"
	PeriodYearly  PeriodKind = "yearly"
)

type ActivityScore struct {
	ActivityID string `json:"activity_id"`
	Title      string `json:"title"`
	Achieved   int    `json:"achieved"`
	Target     int    `json:"target"`
	Percentage int    `json:"percentage"`
}

type CategoryScore struct {
	Category   string          `json:"category"`
	Score      int             `json:"score"`
	Grade      Grade           `json:"grade"`
	GradePoint decimal.Decimal `json:"grade_point"`
	Activities []ActivityScore `json:"activities"`
}

type Scorecard struct {
	EmployeeID     string               `json:"employee_id"`
	Period         PeriodKind           `json:"period"`
	Label          string               `json:"label"`
	Week           *calendar.WeekBucket `json:"week,omitempty"`
	CountedMonths  []string             `json:"counted_months,omitempty"`
	Categories     []CategoryScore      `json:"categories"`
	CompositeIndex decimal.Decimal      `json:"composite_index"`
	Predicate      Predicate            `json:"predicate"`
}
