package submission

import (
	"fmt"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
)

// Chain holds the reviewer assigned to each stage. Nil means the stage is
// skipped.
type Chain struct {
	MentorID     *string
	SupervisorID *string
	KaUnitID     *string
	ManagerID    *string
}

// Reviewer returns the employee assigned to a stage.
func (c Chain) Reviewer(role ReviewerRole) (string, bool) {
	var id *string
	switch role {
	case RoleMentor:
		id = c.MentorID
	case RoleSupervisor:
		id = c.SupervisorID
	case RoleKaUnit:
		id = c.KaUnitID
	case RoleManager:
		id = c.ManagerID
	}
	if id == nil || *id == "" {
		return "", false
	}
	return *id, true
}

// nextAfter is the status that follows an approval at role.
func (c Chain) nextAfter(role ReviewerRole) Status {
	var candidates []ReviewerRole
	switch role {
	case RoleMentor:
		candidates = []ReviewerRole{RoleSupervisor, RoleKaUnit, RoleManager}
	case RoleSupervisor, RoleKaUnit:
		candidates = []ReviewerRole{RoleManager}
	}
	for _, next := range candidates {
		if _, ok := c.Reviewer(next); ok {
			return PendingStatus(next)
		}
	}
	return StatusApproved
}

// Transition is the single place where submission states change.
//
//	none | rejected_*      --submit-->  pending_mentor
//	pending_<role>         --approve--> next assigned stage or approved
//	pending_<role>         --reject-->  rejected_<role>
//
// role is ignored for submit. Any other combination returns
// ErrInvalidTransition.
func Transition(current Status, action Action, role ReviewerRole, chain Chain) (Status, error) {
	if current == "" {
		current = StatusNone
	}
	switch action {
	case ActionSubmit:
		if current == StatusNone || current.IsRejected() {
			return StatusPendingMentor, nil
		}
		if current == StatusApproved {
			return current, fmt.Errorf("%w: month already approved", ErrInvalidTransition)
		}
		return current, fmt.Errorf("%w: submission is %s", ErrInvalidTransition, current)

	case ActionApprove, ActionReject:
		if !role.IsValid() {
			return current, fmt.Errorf("%w: unknown reviewer role %q", ErrInvalidTransition, role)
		}
		if current != PendingStatus(role) {
			return current, fmt.Errorf("%w: %s cannot review a submission in %s", ErrInvalidTransition, role, current)
		}
		if action == ActionReject {
			return RejectedStatus(role), nil
		}
		return chain.nextAfter(role), nil
	}
	return current, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
}

// WindowOpen reports whether a month may be submitted at now: any past
// month, or the current month from openDay onward. Future months never.
func WindowOpen(month calendar.MonthKey, now time.Time, openDay int) bool {
	current := calendar.MonthKeyOf(now)
	switch {
	case month.Before(current):
		return true
	case month == current:
		return now.Day() >= openDay
	default:
		return false
	}
}
