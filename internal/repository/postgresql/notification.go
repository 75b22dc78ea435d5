package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/notification"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

const (
	notificationColumns = `id, recipient_id, sender_id, type, title, message, data, is_read, read_at, created_at`

	insertNotificationSQL = `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
)

func insertArgs(n *notification.Notification) ([]any, error) {
	var payload []byte
	if n.Data != nil {
		var err error
		if payload, err = json.Marshal(n.Data); err != nil {
			return nil, fmt.Errorf("encode notification data: %w", err)
		}
	}
	return []any{n.ID, n.RecipientID, n.SenderID, string(n.Type), n.Title, n.Message, payload, n.IsRead, n.CreatedAt}, nil
}

func scanNotification(row pgx.CollectableRow) (*notification.Notification, error) {
	var (
		n       notification.Notification
		payload []byte
	)
	if err := row.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Title, &n.Message,
		&payload, &n.IsRead, &n.ReadAt, &n.CreatedAt); err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &n.Data); err != nil {
			return nil, fmt.Errorf("decode notification %s data: %w", n.ID, err)
		}
	}
	return &n, nil
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.CreateBatch(ctx, []*notification.Notification{n})
}

// CreateBatch inserts all notifications in one round trip.
func (r *notificationRepository) CreateBatch(ctx context.Context, list []*notification.Notification) error {
	if len(list) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, n := range list {
		args, err := insertArgs(n)
		if err != nil {
			return err
		}
		batch.Queue(insertNotificationSQL, args...)
	}
	if err := GetQuerier(ctx, r.db).SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)
	filter := `recipient_id = $1 AND ($2::bool = false OR is_read = false)`

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE `+filter, recipientID, unreadOnly).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	rows, err := q.Query(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE `+filter+`
		ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`,
		recipientID, unreadOnly, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	list, err := pgx.CollectRows(rows, scanNotification)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return list, total, nil
}

func (r *notificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	var n int
	err := GetQuerier(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`, recipientID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, recipientID string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.markRead(ctx, recipientID, ids)
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return r.markRead(ctx, recipientID, nil)
}

// markRead flags unread notifications of recipientID; nil ids selects all.
func (r *notificationRepository) markRead(ctx context.Context, recipientID string, ids []string) error {
	_, err := GetQuerier(ctx, r.db).Exec(ctx, `
		UPDATE notifications SET is_read = true, read_at = $1
		WHERE recipient_id = $2 AND is_read = false AND ($3::uuid[] IS NULL OR id = ANY($3))`,
		time.Now(), recipientID, ids)
	if err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string, recipientID string) error {
	tag, err := GetQuerier(ctx, r.db).Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// GetPreferences returns stored preferences only; unstored types are
// enabled.
func (r *notificationRepository) GetPreferences(ctx context.Context, recipientID string) ([]*notification.NotificationPreference, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, `
		SELECT id, employee_id, notification_type, enabled, created_at, updated_at
		FROM notification_preferences WHERE employee_id = $1`, recipientID)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*notification.NotificationPreference, error) {
		var p notification.NotificationPreference
		err := row.Scan(&p.ID, &p.EmployeeID, &p.NotificationType, &p.Enabled, &p.CreatedAt, &p.UpdatedAt)
		return &p, err
	})
}

func (r *notificationRepository) UpsertPreference(ctx context.Context, pref *notification.NotificationPreference) error {
	_, err := GetQuerier(ctx, r.db).Exec(ctx, `
		INSERT INTO notification_preferences (employee_id, notification_type, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, notification_type)
		DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = EXCLUDED.updated_at`,
		pref.EmployeeID, string(pref.NotificationType), pref.Enabled, pref.CreatedAt, pref.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	return nil
}

func (r *notificationRepository) IsNotificationEnabled(ctx context.Context, recipientID string, notifType notification.NotificationType) (bool, error) {
	var enabled bool
	err := GetQuerier(ctx, r.db).QueryRow(ctx, `
		SELECT COALESCE((
			SELECT enabled FROM notification_preferences
			WHERE employee_id = $1 AND notification_type = $2
		), true)`, recipientID, string(notifType)).Scan(&enabled)
	if err != nil {
		return false, fmt.Errorf("check preference: %w", err)
	}
	return enabled, nil
}
