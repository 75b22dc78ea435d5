package notification

import "context"

// Service delivers in-app notifications. Queued requests are written by
// background workers in batches and pushed to open streams once stored.
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []CreateNotificationRequest) error

	GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, recipientID string, notificationID string) error

	GetPreferences(ctx context.Context, recipientID string) ([]PreferenceResponse, error)
	UpdatePreference(ctx context.Context, recipientID string, req UpdatePreferenceRequest) error

	Subscribe(ctx context.Context, recipientID string) (<-chan SSEEvent, func())

	// Stop drains the queue and waits for the workers.
	Stop()
}
