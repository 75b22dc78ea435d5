package dashboard

import "time"

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the admin dashboard endpoint
type DashboardResponse struct {
	SubmissionStats   SubmissionStatsResponse `json:"submission_stats"`
	Units             []UnitStatsResponse     `json:"units"`
	RecentSubmissions []RecentSubmissionItem  `json:"recent_submissions"`
	Month             string                  `json:"month"`
}

// ========== SUBMISSION STATS ==========

// SubmissionStatsResponse counts activated employees per submission status.
// Employees that never submitted are counted under "none".
type SubmissionStatsResponse struct {
	Month          string           `json:"month"`
	Activated      int64            `json:"activated"`
	ByStatus       map[string]int64 `json:"by_status"`
	SubmittedPct   int              `json:"submitted_percent"`
	ApprovedPct    int              `json:"approved_percent"`
	AwaitingReview int64            `json:"awaiting_review"`
}

// ========== UNIT BREAKDOWN ==========

type UnitStatsResponse struct {
	Unit         string `json:"unit"`
	Activated    int64  `json:"activated"`
	Submitted    int64  `json:"submitted"`
	Approved     int64  `json:"approved"`
	Rejected     int64  `json:"rejected"`
	SubmittedPct int    `json:"submitted_percent"`
}

// ========== RECENT SUBMISSIONS ==========

type RecentSubmissionItem struct {
	No           int        `json:"no"`
	SubmissionID string     `json:"submission_id"`
	EmployeeName string     `json:"employee_name"`
	EmployeeCode string     `json:"employee_code"`
	Unit         *string    `json:"unit,omitempty"`
	Status       string     `json:"status"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
}
