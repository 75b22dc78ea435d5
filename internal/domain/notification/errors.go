package notification

import "errors"

var (
	ErrNotificationNotFound    = errors.New("Notification not found")
	ErrInvalidNotificationType = errors.New("Unknown notification type")
	// ErrQueueClosed is returned once the service has stopped. Callers treat
	// notifications as best effort.
	ErrQueueClosed = errors.New("Notification queue is closed")
)
