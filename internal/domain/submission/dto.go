package submission

import (
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	EmployeeID        string `json:"-"`
	MonthKey          string `json:"month_key"`
	HasUnsavedChanges bool   `json:"has_unsaved_changes"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(r.MonthKey) {
		errs.Add("month_key", "must be in YYYY-MM format")
	}
	return errs.Err()
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

type ReviewRequest struct {
	SubmissionID string       `json:"-"`
	Decision     Decision     `json:"decision"`
	ReviewerRole ReviewerRole `json:"reviewer_role"`
	Notes        *string      `json:"notes,omitempty"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.SubmissionID) {
		errs.Add("submission_id", "submission_id is required")
	}
	if r.Decision != DecisionApproved && r.Decision != DecisionRejected {
		errs.Add("decision", "must be one of: approved, rejected")
	}
	if !r.ReviewerRole.IsValid() {
		errs.Add("reviewer_role", "must be one of: mentor, supervisor, kaunit, manager")
	}
	if r.Decision == DecisionRejected && (r.Notes == nil || validator.IsEmpty(*r.Notes)) {
		errs.Add("notes", "notes are required when rejecting")
	}
	if r.Notes != nil && len(*r.Notes) > 1000 {
		errs.Add("notes", "must be at most 1000 characters")
	}
	return errs.Err()
}

// Action maps the decision onto a state machine action.
func (r *ReviewRequest) Action() Action {
	if r.Decision == DecisionRejected {
		return ActionReject
	}
	return ActionApprove
}

type StageResponse struct {
	Role       ReviewerRole `json:"role"`
	ReviewerID *string      `json:"reviewer_id,omitempty"`
	ReviewedAt *time.Time   `json:"reviewed_at,omitempty"`
	Notes      *string      `json:"notes,omitempty"`
}

type SubmissionResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	MonthKey    string          `json:"month_key"`
	Status      Status          `json:"status"`
	SubmittedAt *time.Time      `json:"submitted_at,omitempty"`
	Stages      []StageResponse `json:"stages"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type EventResponse struct {
	Action     Action        `json:"action"`
	ActorID    *string       `json:"actor_id,omitempty"`
	Role       *ReviewerRole `json:"role,omitempty"`
	FromStatus Status        `json:"from_status"`
	ToStatus   Status        `json:"to_status"`
	Notes      *string       `json:"notes,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

type SubmissionDetailResponse struct {
	SubmissionResponse
	History []EventResponse `json:"history"`
}

type InboxItemResponse struct {
	SubmissionResponse
	EmployeeName string       `json:"employee_name"`
	EmployeeCode string       `json:"employee_code"`
	Unit         *string      `json:"unit,omitempty"`
	AwaitingRole ReviewerRole `json:"awaiting_role"`
}

// ToResponse converts an entity into its API shape.
func ToResponse(s *Submission) SubmissionResponse {
	stages := make([]StageResponse, 0, len(reviewerRoles))
	for _, role := range reviewerRoles {
		st := s.Stage(role)
		if st.ReviewerID == nil {
			continue
		}
		stages = append(stages, StageResponse{
			Role:       role,
			ReviewerID: st.ReviewerID,
			ReviewedAt: st.ReviewedAt,
			Notes:      st.Notes,
		})
	}
	return SubmissionResponse{
		ID:          s.ID,
		EmployeeID:  s.EmployeeID,
		MonthKey:    s.MonthKey,
		Status:      s.Status,
		SubmittedAt: s.SubmittedAt,
		Stages:      stages,
		UpdatedAt:   s.UpdatedAt,
	}
}
