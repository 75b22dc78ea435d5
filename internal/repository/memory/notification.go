package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/notification"
)

type NotificationRepository struct {
	mu            sync.Mutex
	notifications []*notification.Notification
	preferences   map[string]map[notification.NotificationType]bool
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{preferences: make(map[string]map[notification.NotificationType]bool)}
}

func (r *NotificationRepository) Create(_ context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *n
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	for _, n := range ns {
		if err := r.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *NotificationRepository) GetByRecipient(_ context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*notification.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && (!unreadOnly || !n.IsRead) {
			copied := *n
			matched = append(matched, &copied)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := len(matched)
	start := (page - 1) * pageSize
	if start >= total {
		return []*notification.Notification{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *NotificationRepository) GetUnreadCount(_ context.Context, recipientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, item := range r.notifications {
		if item.RecipientID == recipientID && !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *NotificationRepository) MarkAsRead(_ context.Context, ids []string, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	now := time.Now()
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && want[n.ID] && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(_ context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (r *NotificationRepository) Delete(_ context.Context, id string, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notifications {
		if n.ID == id && n.RecipientID == recipientID {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (r *NotificationRepository) GetPreferences(_ context.Context, recipientID string) ([]*notification.NotificationPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*notification.NotificationPreference
	for t, enabled := range r.preferences[recipientID] {
		out = append(out, &notification.NotificationPreference{EmployeeID: recipientID, NotificationType: t, Enabled: enabled})
	}
	return out, nil
}

func (r *NotificationRepository) UpsertPreference(_ context.Context, pref *notification.NotificationPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefs, ok := r.preferences[pref.EmployeeID]
	if !ok {
		prefs = make(map[notification.NotificationType]bool)
		r.preferences[pref.EmployeeID] = prefs
	}
	prefs[pref.NotificationType] = pref.Enabled
	return nil
}

func (r *NotificationRepository) IsNotificationEnabled(_ context.Context, recipientID string, t notification.NotificationType) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	enabled, ok := r.preferences[recipientID][t]
	return !ok || enabled, nil
}

// All returns every stored notification.
func (r *NotificationRepository) All() []notification.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notification.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		out = append(out, *n)
	}
	return out
}

var _ notification.Repository = (*NotificationRepository)(nil)
