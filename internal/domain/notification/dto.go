package notification

import (
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
)

// CreateNotificationRequest is what producers queue. It never comes from a
// client, so it has no JSON tags.
type CreateNotificationRequest struct {
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]any
}

type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

func (r *MarkAsReadRequest) Validate() error {
	var errs validator.ValidationErrors
	switch {
	case len(r.NotificationIDs) == 0:
		errs.Add("notification_ids", "at least one notification id is required")
	case len(r.NotificationIDs) > MaxMarkBatch:
		errs.Add("notification_ids", "too many notification ids")
	}
	for _, id := range r.NotificationIDs {
		if !validator.IsValidUUID(id) {
			errs.Add("notification_ids", "notification ids must be UUIDs")
			break
		}
	}
	return errs.Err()
}

// MaxMarkBatch caps the ids accepted by one mark-as-read call.
const MaxMarkBatch = 100

type UpdatePreferenceRequest struct {
	NotificationType NotificationType `json:"notification_type"`
	Enabled          bool             `json:"enabled"`
}

func (r *UpdatePreferenceRequest) Validate() error {
	var errs validator.ValidationErrors
	if !r.NotificationType.IsValid() {
		errs.Add("notification_type", "unknown notification type")
	}
	return errs.Err()
}

type NotificationResponse struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      map[string]any   `json:"data,omitempty"`
	IsRead    bool             `json:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationListResponse is one page of the inbox. UnreadCount covers
// the whole inbox, not just the page.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type PreferenceResponse struct {
	NotificationType NotificationType `json:"notification_type"`
	Enabled          bool             `json:"enabled"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// SSEEvent is one frame on the notification stream.
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
