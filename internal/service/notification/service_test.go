package notification

import (
	"context"
	"testing"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/notification"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedFor(recipientID string) notification.CreateNotificationRequest {
	return notification.CreateNotificationRequest{
		RecipientID: recipientID,
		Type:        notification.TypeReportApproved,
		Title:       "Laporan disetujui",
		Message:     "Laporan mutaba'ah 2026-03 telah disetujui sepenuhnya.",
		Data:        map[string]interface{}{"month_key": "2026-03"},
	}
}

func TestQueuedNotificationIsStoredAndStreamed(t *testing.T) {
	repo := memory.NewNotificationRepository()
	svc := NewNotificationService(repo, Config{FlushInterval: 10 * time.Millisecond, WorkerCount: 1})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, cleanup := svc.Subscribe(ctx, "e-1")
	defer cleanup()

	require.NoError(t, svc.QueueNotification(context.Background(), approvedFor("e-1")))

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Event)
		assert.Equal(t, notification.TypeReportApproved, ev.Data.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no event streamed")
	}

	list, err := svc.GetNotifications(context.Background(), "e-1", 0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, 1, list.UnreadCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)

	require.NoError(t, svc.MarkAsRead(context.Background(), "e-1", notification.MarkAsReadRequest{NotificationIDs: []string{list.Notifications[0].ID}}))
	count, err := svc.GetUnreadCount(context.Background(), "e-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStopFlushesPendingNotifications(t *testing.T) {
	repo := memory.NewNotificationRepository()
	svc := NewNotificationService(repo, Config{FlushInterval: time.Hour, WorkerCount: 1})

	require.NoError(t, svc.QueueBulkNotification(context.Background(), []notification.CreateNotificationRequest{
		approvedFor("e-1"), approvedFor("e-2"),
	}))
	svc.Stop()
	svc.Stop()

	assert.Len(t, repo.All(), 2)
}

func TestMutedTypesAreDropped(t *testing.T) {
	repo := memory.NewNotificationRepository()
	svc := NewNotificationService(repo, Config{FlushInterval: time.Hour, WorkerCount: 1})
	ctx := context.Background()

	require.NoError(t, svc.UpdatePreference(ctx, "e-1", notification.UpdatePreferenceRequest{
		NotificationType: notification.TypeReportApproved, Enabled: false,
	}))
	require.NoError(t, svc.QueueNotification(ctx, approvedFor("e-1")))
	svc.Stop()
	assert.Empty(t, repo.All())

	prefs, err := svc.GetPreferences(ctx, "e-1")
	require.NoError(t, err)
	assert.Len(t, prefs, len(notification.AllNotificationTypes()))
	for _, p := range prefs {
		assert.Equal(t, p.NotificationType != notification.TypeReportApproved, p.Enabled, p.NotificationType)
	}
}

func TestQueueNotificationValidation(t *testing.T) {
	svc := NewNotificationService(memory.NewNotificationRepository(), Config{WorkerCount: 1})
	defer svc.Stop()

	err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{RecipientID: "e-1", Type: "birthday"})
	assert.ErrorIs(t, err, notification.ErrInvalidNotificationType)

	err = svc.UpdatePreference(context.Background(), "e-1", notification.UpdatePreferenceRequest{NotificationType: "birthday"})
	assert.Error(t, err)

	err = svc.MarkAsRead(context.Background(), "e-1", notification.MarkAsReadRequest{})
	assert.Error(t, err)

	err = svc.Delete(context.Background(), "e-1", "missing")
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestQueueAfterStopIsRejected(t *testing.T) {
	repo := memory.NewNotificationRepository()
	svc := NewNotificationService(repo, Config{WorkerCount: 1})
	svc.Stop()

	err := svc.QueueNotification(context.Background(), approvedFor("e-1"))
	assert.ErrorIs(t, err, notification.ErrQueueClosed)
	assert.Empty(t, repo.All())
}
