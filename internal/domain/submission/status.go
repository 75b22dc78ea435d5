package submission

import "fmt"

// Status is the closed set of submission states.
type Status string

const (
	StatusNone               Status = "none"
	StatusPendingMentor      Status = "pending_mentor"
	StatusPendingSupervisor  Status = "pending_supervisor"
	StatusPendingKaUnit      Status = "pending_kaunit"
	StatusPendingManager     Status = "pending_manager"
	StatusApproved           Status = "approved"
	StatusRejectedMentor     Status = "rejected_mentor"
	StatusRejectedSupervisor Status = "rejected_supervisor"
	StatusRejectedKaUnit     Status = "rejected_kaunit"
	StatusRejectedManager    Status = "rejected_manager"
)

// AllStatuses lists every state in workflow order.
var AllStatuses = []Status{
	StatusNone,
	StatusPendingMentor, StatusPendingSupervisor, StatusPendingKaUnit, StatusPendingManager,
	StatusApproved,
	StatusRejectedMentor, StatusRejectedSupervisor, StatusRejectedKaUnit, StatusRejectedManager,
}

// ReviewerRole is a stage of the approval chain.
type ReviewerRole string

const (
	RoleMentor     ReviewerRole = "mentor"
	RoleSupervisor ReviewerRole = "supervisor"
	RoleKaUnit     ReviewerRole = "kaunit"
	RoleManager    ReviewerRole = "manager"
)

var reviewerRoles = []ReviewerRole{RoleMentor, RoleSupervisor, RoleKaUnit, RoleManager}

func (r ReviewerRole) IsValid() bool {
	for _, role := range reviewerRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Action is an input to the state machine.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func (s Status) IsValid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s Status) IsPending() bool {
	_, ok := s.PendingRole()
	return ok
}

func (s Status) IsRejected() bool {
	switch s {
	case StatusRejectedMentor, StatusRejectedSupervisor, StatusRejectedKaUnit, StatusRejectedManager:
		return true
	}
	return false
}

// PendingRole returns the reviewer a pending status is waiting on.
func (s Status) PendingRole() (ReviewerRole, bool) {
	switch s {
	case StatusPendingMentor:
		return RoleMentor, true
	case StatusPendingSupervisor:
		return RoleSupervisor, true
	case StatusPendingKaUnit:
		return RoleKaUnit, true
	case StatusPendingManager:
		return RoleManager, true
	}
	return "", false
}

// PendingStatus returns pending_<role>.
func PendingStatus(role ReviewerRole) Status {
	return Status(fmt.Sprintf("pending_%s", role))
}

// RejectedStatus returns rejected_<role>.
func RejectedStatus(role ReviewerRole) Status {
	return Status(fmt.Sprintf("rejected_%s", role))
}
