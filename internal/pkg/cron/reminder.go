package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/notification"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
)

// BulkNotifier is the part of the notification service the reminder uses.
type BulkNotifier interface {
	QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error
}

// ReminderJobs reminds employees to submit the current month once the
// submission window is open.
type ReminderJobs struct {
	employeeRepo employee.EmployeeRepository
	notifier     BulkNotifier
	openDay      int
	now          func() time.Time

	mu      sync.Mutex
	lastRun string
}

func NewReminderJobs(employeeRepo employee.EmployeeRepository, notifier BulkNotifier, openDay int, now func() time.Time) *ReminderJobs {
	if openDay <= 0 {
		openDay = 28
	}
	return &ReminderJobs{
		employeeRepo: employeeRepo,
		notifier:     notifier,
		openDay:      openDay,
		now:          now,
	}
}

func (j *ReminderJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("submission_reminder", time.Hour, j.SubmissionReminder)
}

// SubmissionReminder notifies at most once per calendar day.
func (j *ReminderJobs) SubmissionReminder(ctx context.Context) error {
	now := j.now()
	if now.Day() < j.openDay {
		return nil
	}

	today := now.Format("2006-01-02")
	j.mu.Lock()
	if j.lastRun == today {
		j.mu.Unlock()
		return nil
	}
	j.mu.Unlock()

	month := calendar.MonthKeyOf(now)
	pending, err := j.employeeRepo.ListAwaitingSubmission(ctx, month.String())
	if err != nil {
		return fmt.Errorf("failed to list employees awaiting submission: %w", err)
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(pending))
	for _, emp := range pending {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: emp.ID,
			Type:        notification.TypeSubmissionReminder,
			Title:       "Pengingat Laporan Mutaba'ah",
			Message:     fmt.Sprintf("Laporan bulan %s belum dikirim. Batas pengiriman akhir bulan ini.", month),
			Data:        map[string]interface{}{"month_key": month.String()},
		})
	}
	if len(reqs) > 0 {
		if err := j.notifier.QueueBulkNotification(ctx, reqs); err != nil {
			return fmt.Errorf("failed to queue reminders: %w", err)
		}
	}

	j.mu.Lock()
	j.lastRun = today
	j.mu.Unlock()

	slog.Info("submission reminders queued", "month", month.String(), "count", len(reqs))
	return nil
}
