package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/notification"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/sse"
)

type Config struct {
	BatchSize     int
	FlushInterval time.Duration
	WorkerCount   int
	QueueSize     int
	StreamBuffer  int
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = 5 * time.Second
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = 2
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 1000
	}
	return c
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
	flushTimeout    = 30 * time.Second
)

type service struct {
	repo notification.Repository
	hub  *sse.Hub[notification.SSEEvent]
	cfg  Config

	queue chan notification.CreateNotificationRequest
	wg    sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
}

// NewNotificationService starts cfg.WorkerCount writers. Call Stop to
// flush what is queued.
func NewNotificationService(repo notification.Repository, cfg Config) notification.Service {
	cfg = cfg.withDefaults()
	s := &service{
		repo:  repo,
		hub:   sse.NewHub[notification.SSEEvent](cfg.StreamBuffer),
		cfg:   cfg,
		queue: make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		done:  make(chan struct{}),
	}
	for i := range cfg.WorkerCount {
		s.wg.Add(1)
		go s.work(i)
	}
	slog.Info("notification workers started", "workers", cfg.WorkerCount, "batch_size", cfg.BatchSize)
	return s
}

func (s *service) work(worker int) {
	defer s.wg.Done()

	pending := make([]notification.CreateNotificationRequest, 0, s.cfg.BatchSize)
	add := func(req notification.CreateNotificationRequest) {
		pending = append(pending, req)
		if len(pending) >= s.cfg.BatchSize {
			s.store(worker, pending)
			pending = pending[:0]
		}
	}
	ticker := time.NewTicker(s.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case req := <-s.queue:
			add(req)
		case <-ticker.C:
			s.store(worker, pending)
			pending = pending[:0]
		case <-s.done:
			for {
				select {
				case req := <-s.queue:
					add(req)
				default:
					s.store(worker, pending)
					return
				}
			}
		}
	}
}

// store inserts reqs as one batch and streams each stored notification.
func (s *service) store(worker int, reqs []notification.CreateNotificationRequest) {
	if len(reqs) == 0 {
		return
	}
	list := make([]*notification.Notification, len(reqs))
	for i, req := range reqs {
		list[i] = build(req)
	}

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := s.repo.CreateBatch(ctx, list); err != nil {
		slog.Error("store notifications", "worker", worker, "count", len(list), "error", err)
		return
	}
	for _, n := range list {
		s.push(n)
	}
}

func build(req notification.CreateNotificationRequest) *notification.Notification {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &notification.Notification{
		ID:          id.String(),
		RecipientID: req.RecipientID,
		SenderID:    req.SenderID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
		CreatedAt:   time.Now(),
	}
}

func (s *service) push(n *notification.Notification) {
	s.hub.Publish(n.RecipientID, notification.SSEEvent{Event: "notification", Data: toResponse(n)})
}

// QueueNotification drops muted types without error. When the queue is
// full the notification is written inline instead.
func (s *service) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	if !req.Type.IsValid() {
		return notification.ErrInvalidNotificationType
	}
	enabled, err := s.repo.IsNotificationEnabled(ctx, req.RecipientID, req.Type)
	if err != nil || !enabled {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stopped {
		return notification.ErrQueueClosed
	}
	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	n := build(req)
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	s.push(n)
	return nil
}

// QueueBulkNotification logs individual failures and carries on.
func (s *service) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	for _, req := range reqs {
		if err := s.QueueNotification(ctx, req); err != nil {
			slog.Warn("queue notification", "recipient_id", req.RecipientID, "type", req.Type, "error", err)
		}
	}
	return nil
}

func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// GetNotifications clamps paging: page starts at 1 and an out of range
// size falls back to the default.
func (s *service) GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	page = max(page, 1)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	list, total, err := s.repo.GetByRecipient(ctx, recipientID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.GetUnreadCount(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	out := &notification.NotificationListResponse{
		Notifications: make([]notification.NotificationResponse, 0, len(list)),
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		PageSize:      pageSize,
	}
	for _, n := range list {
		out.Notifications = append(out.Notifications, toResponse(n))
	}
	return out, nil
}

func (s *service) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, recipientID)
}

func (s *service) MarkAsRead(ctx context.Context, recipientID string, req notification.MarkAsReadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, recipientID)
}

func (s *service) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllAsRead(ctx, recipientID)
}

func (s *service) Delete(ctx context.Context, recipientID string, notificationID string) error {
	return s.repo.Delete(ctx, notificationID, recipientID)
}

// GetPreferences reports every type; unstored types are enabled.
func (s *service) GetPreferences(ctx context.Context, recipientID string) ([]notification.PreferenceResponse, error) {
	stored, err := s.repo.GetPreferences(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	muted := make(map[notification.NotificationType]bool, len(stored))
	for _, p := range stored {
		muted[p.NotificationType] = !p.Enabled
	}

	types := notification.AllNotificationTypes()
	out := make([]notification.PreferenceResponse, 0, len(types))
	for _, t := range types {
		out = append(out, notification.PreferenceResponse{NotificationType: t, Enabled: !muted[t]})
	}
	return out, nil
}

func (s *service) UpdatePreference(ctx context.Context, recipientID string, req notification.UpdatePreferenceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	now := time.Now()
	return s.repo.UpsertPreference(ctx, &notification.NotificationPreference{
		EmployeeID:       recipientID,
		NotificationType: req.NotificationType,
		Enabled:          req.Enabled,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
}

// Subscribe opens a stream for recipientID that closes when ctx ends or
// the returned func is called.
func (s *service) Subscribe(ctx context.Context, recipientID string) (<-chan notification.SSEEvent, func()) {
	events, unsubscribe := s.hub.Subscribe(recipientID)
	stop := context.AfterFunc(ctx, unsubscribe)
	return events, func() {
		stop()
		unsubscribe()
	}
}

// Stop refuses new requests, lets the workers store what is queued and
// waits for them. Later calls return immediately.
func (s *service) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
	slog.Info("notification workers stopped")
}
