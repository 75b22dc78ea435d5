package submission

import "time"

// Review is the outcome recorded for one stage.
type Review struct {
	ReviewerID *string    `json:"reviewer_id,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

// Submission is the monthly report of one employee moving through review.
// There is at most one per (employee, month).
type Submission struct {
	ID          string
	EmployeeID  string
	MonthKey    string
	Status      Status
	SubmittedAt *time.Time
	Mentor      Review
	Supervisor  Review
	KaUnit      Review
	Manager     Review
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Chain returns the reviewer chain snapshotted on the submission.
func (s *Submission) Chain() Chain {
	return Chain{
		MentorID:     s.Mentor.ReviewerID,
		SupervisorID: s.Supervisor.ReviewerID,
		KaUnitID:     s.KaUnit.ReviewerID,
		ManagerID:    s.Manager.ReviewerID,
	}
}

// Stage returns the review slot of a role.
func (s *Submission) Stage(role ReviewerRole) *Review {
	switch role {
	case RoleMentor:
		return &s.Mentor
	case RoleSupervisor:
		return &s.Supervisor
	case RoleKaUnit:
		return &s.KaUnit
	case RoleManager:
		return &s.Manager
	}
	return nil
}

// AssignChain snapshots the reviewers and clears earlier review outcomes.
func (s *Submission) AssignChain(c Chain) {
	s.Mentor = Review{ReviewerID: c.MentorID}
	s.Supervisor = Review{ReviewerID: c.SupervisorID}
	s.KaUnit = Review{ReviewerID: c.KaUnitID}
	s.Manager = Review{ReviewerID: c.ManagerID}
}

// Event is an append-only audit record of a transition.
type Event struct {
	ID           string
	SubmissionID string
	Action       Action
	ActorID      *string
	Role         *ReviewerRole
	FromStatus   Status
	ToStatus     Status
	Notes        *string
	CreatedAt    time.Time
}

// InboxItem is a submission waiting on the current reviewer.
type InboxItem struct {
	Submission   Submission
	EmployeeName string
	EmployeeCode string
	Unit         *string
}
