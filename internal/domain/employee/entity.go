package employee

import (
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
)

type Employee struct {
	ID               string
	UserID           *string
	EmployeeCode     string
	FullName         string
	Unit             *string
	Position         *string
	EmploymentStatus EmploymentStatus
	MentorID         *string
	SupervisorID     *string
	KaUnitID         *string
	ManagerID        *string
	ActivatedMonths  []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusResigned EmploymentStatus = "resigned"
)

// IsMonthActivated reports whether the employee may record progress for month.
func (e Employee) IsMonthActivated(month string) bool {
	return validator.IsInSlice(month, e.ActivatedMonths)
}

// ReviewChain returns the reviewer chain for submissions.
func (e Employee) ReviewChain() submission.Chain {
	return submission.Chain{
		MentorID:     e.MentorID,
		SupervisorID: e.SupervisorID,
		KaUnitID:     e.KaUnitID,
		ManagerID:    e.ManagerID,
	}
}

// IsReviewedBy reports whether reviewerID holds any stage in the chain.
func (e Employee) IsReviewedBy(reviewerID string) bool {
	for _, id := range []*string{e.MentorID, e.SupervisorID, e.KaUnitID, e.ManagerID} {
		if id != nil && *id == reviewerID {
			return true
		}
	}
	return false
}

type ReadingKind string

const (
	ReadingKindQuran ReadingKind = "quran"
	ReadingKindBook  ReadingKind = "book"
)

func (k ReadingKind) IsValid() bool {
	return k == ReadingKindQuran || k == ReadingKindBook
}

// ReadingHistory is an auxiliary log entry. Quran entries store the surah or
// juz read in Title and the number of pages in Amount.
type ReadingHistory struct {
	ID         string
	EmployeeID string
	Kind       ReadingKind
	Title      string
	Amount     int
	ReadOn     time.Time
	CreatedAt  time.Time
}

// VisibleTo reports whether a caller may read this employee's records:
// the employee, anyone in the review chain, or an administrator.
func (e Employee) VisibleTo(callerEmployeeID string, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	if callerEmployeeID == "" {
		return false
	}
	return e.ID == callerEmployeeID || e.IsReviewedBy(callerEmployeeID)
}
