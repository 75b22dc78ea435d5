package performance

import "github.com/shopspring/decimal"

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
)

type gradeBand struct {
	min   int
	grade Grade
	point decimal.Decimal
}

// Lower bounds are inclusive and checked top-down.
var gradeBands = []gradeBand{
	{90, GradeA, decimal.NewFromInt(4)},
	{80, GradeB, decimal.NewFromInt(3)},
	{70, GradeC, decimal.NewFromInt(2)},
	{60, GradeD, decimal.NewFromInt(1)},
}

// GradeFor maps a 0-100 score to a letter grade and grade point.
func GradeFor(score int) (Grade, decimal.Decimal) {
	for _, b := range gradeBands {
		if score >= b.min {
			return b.grade, b.point
		}
	}
	return GradeE, decimal.Zero
}

type Predicate string

const (
	PredicateDenganPujian    Predicate = "Dengan Pujian"
	PredicateSangatMemuaskan Predicate = "Sangat Memuaskan"
	PredicateMemuaskan       Predicate = "Memuaskan"
	PredicateCukup           Predicate = "Cukup"
	PredicateKurang          Predicate = "Kurang"
)

var predicateBands = []struct {
	min       decimal.Decimal
	predicate Predicate
}{
	{decimal.RequireFromString("3.51"), PredicateDenganPujian},
	{decimal.RequireFromString("3.01"), PredicateSangatMemuaskan},
	{decimal.RequireFromString("2.51"), PredicateMemuaskan},
	{decimal.RequireFromString("2.00"), PredicateCukup},
}

// PredicateFor maps a composite index to its predicate.
func PredicateFor(index decimal.Decimal) Predicate {
	for _, b := range predicateBands {
		if index.GreaterThanOrEqual(b.min) {
			return b.predicate
		}
	}
	return PredicateKurang
}
