package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/notification"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotification(recipientID string, at time.Time) *notification.Notification {
	return &notification.Notification{
		ID:          uuid.Must(uuid.NewV7()).String(),
		RecipientID: recipientID,
		Type:        notification.TypeReportApproved,
		Title:       "Laporan disetujui",
		Message:     "Laporan 2026-03 disetujui.",
		Data:        map[string]interface{}{"month_key": "2026-03"},
		CreatedAt:   at,
	}
}

func TestNotificationRepository_InboxLifecycle(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	employeeID := createEmployee(t, ctx, "2019-0042", nil)
	repo := postgresql.NewNotificationRepository(testDB)

	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	batch := []*notification.Notification{
		newNotification(employeeID, base),
		newNotification(employeeID, base.Add(time.Minute)),
		newNotification(employeeID, base.Add(2*time.Minute)),
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	page, total, err := repo.GetByRecipient(ctx, employeeID, 1, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, batch[2].ID, page[0].ID, "newest first")
	assert.Equal(t, "2026-03", page[0].Data["month_key"])

	require.NoError(t, repo.MarkAsRead(ctx, []string{batch[0].ID}, employeeID))
	unread, err := repo.GetUnreadCount(ctx, employeeID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	_, total, err = repo.GetByRecipient(ctx, employeeID, 1, 20, true)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	require.NoError(t, repo.MarkAllAsRead(ctx, employeeID))
	unread, _ = repo.GetUnreadCount(ctx, employeeID)
	assert.Zero(t, unread)

	require.NoError(t, repo.Delete(ctx, batch[1].ID, employeeID))
	assert.ErrorIs(t, repo.Delete(ctx, batch[1].ID, employeeID), notification.ErrNotificationNotFound)
}

func TestNotificationRepository_Preferences(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	employeeID := createEmployee(t, ctx, "2019-0042", nil)
	repo := postgresql.NewNotificationRepository(testDB)

	enabled, err := repo.IsNotificationEnabled(ctx, employeeID, notification.TypeSubmissionReminder)
	require.NoError(t, err)
	assert.True(t, enabled, "types without a stored preference are enabled")

	now := time.Now()
	require.NoError(t, repo.UpsertPreference(ctx, &notification.NotificationPreference{
		EmployeeID: employeeID, NotificationType: notification.TypeSubmissionReminder, Enabled: false, CreatedAt: now, UpdatedAt: now,
	}))
	enabled, err = repo.IsNotificationEnabled(ctx, employeeID, notification.TypeSubmissionReminder)
	require.NoError(t, err)
	assert.False(t, enabled)

	prefs, err := repo.GetPreferences(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.Equal(t, notification.TypeSubmissionReminder, prefs[0].NotificationType)
}
