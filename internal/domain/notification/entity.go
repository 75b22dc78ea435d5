package notification

import (
	"slices"
	"time"
)

// NotificationType names what happened. Employees can mute each type.
type NotificationType string

const (
	TypeReportSubmitted      NotificationType = "report_submitted"
	TypeReportAwaitingReview NotificationType = "report_awaiting_review"
	TypeReportStageApproved  NotificationType = "report_stage_approved"
	TypeReportApproved       NotificationType = "report_approved"
	TypeReportRejected       NotificationType = "report_rejected"
	TypeReportCorrected      NotificationType = "report_corrected"
	TypeSubmissionReminder   NotificationType = "submission_reminder"
)

var allTypes = []NotificationType{
	TypeReportSubmitted,
	TypeReportAwaitingReview,
	TypeReportStageApproved,
	TypeReportApproved,
	TypeReportRejected,
	TypeReportCorrected,
	TypeSubmissionReminder,
}

// AllNotificationTypes lists every type in display order.
func AllNotificationTypes() []NotificationType {
	return slices.Clone(allTypes)
}

func (t NotificationType) IsValid() bool {
	return slices.Contains(allTypes, t)
}

// Notification is addressed to an employee, not a user account.
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]any
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

type NotificationPreference struct {
	ID               string
	EmployeeID       string
	NotificationType NotificationType
	Enabled          bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
