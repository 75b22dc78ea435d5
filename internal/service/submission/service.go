package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/notification"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
)

// Transactor runs fn inside one database transaction.
type Transactor func(ctx context.Context, fn func(ctx context.Context) error) error

// Notifier is the part of the notification service used here.
type Notifier interface {
	QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error
}

type Config struct {
	// OpenDay is the day of the current month from which it may be submitted.
	OpenDay int
}

type SubmissionServiceImpl struct {
	inTx         Transactor
	repo         submission.Repository
	employeeRepo employee.EmployeeRepository
	notifier     Notifier
	config       Config
	now          func() time.Time
}

func NewSubmissionService(
	inTx Transactor,
	repo submission.Repository,
	employeeRepo employee.EmployeeRepository,
	notifier Notifier,
	cfg Config,
	now func() time.Time,
) *SubmissionServiceImpl {
	if cfg.OpenDay <= 0 {
		cfg.OpenDay = 28
	}
	return &SubmissionServiceImpl{
		inTx:         inTx,
		repo:         repo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		config:       cfg,
		now:          now,
	}
}

// Submit implements submission.Service. Every guard runs before the store
// is touched.
func (s *SubmissionServiceImpl) Submit(ctx context.Context, req submission.SubmitRequest) (submission.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return submission.SubmissionResponse{}, err
	}
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return submission.SubmissionResponse{}, err
	}
	if !actor.CanActFor(req.EmployeeID) {
		return submission.SubmissionResponse{}, employee.ErrUnauthorized
	}

	if req.HasUnsavedChanges {
		return submission.SubmissionResponse{}, submission.ErrUnsavedChanges
	}
	now := s.now()
	if !submission.WindowOpen(calendar.MonthKey(req.MonthKey), now, s.config.OpenDay) {
		return submission.SubmissionResponse{}, submission.ErrWindowNotOpen
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return submission.SubmissionResponse{}, err
	}
	if !emp.IsMonthActivated(req.MonthKey) {
		return submission.SubmissionResponse{}, progress.ErrMonthNotActivated
	}
	chain := emp.ReviewChain()
	if _, ok := chain.Reviewer(submission.RoleMentor); !ok {
		return submission.SubmissionResponse{}, submission.ErrNoMentorAssigned
	}

	var sub *submission.Submission
	var from submission.Status
	err = s.inTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByEmployeeMonth(ctx, req.EmployeeID, req.MonthKey)
		if err != nil {
			return err
		}
		from = submission.StatusNone
		if current != nil {
			from = current.Status
		}

		next, err := submission.Transition(from, submission.ActionSubmit, "", chain)
		if err != nil {
			return err
		}

		sub = &submission.Submission{
			EmployeeID:  req.EmployeeID,
			MonthKey:    req.MonthKey,
			Status:      next,
			SubmittedAt: &now,
		}
		sub.AssignChain(chain)
		if err := s.repo.Upsert(ctx, sub); err != nil {
			return err
		}

		return s.repo.AppendEvent(ctx, newEvent(sub.ID, submission.ActionSubmit, nil, actor.EmployeeID, from, next, nil, now))
	})
	if err != nil {
		return submission.SubmissionResponse{}, err
	}

	slog.Info("report submitted", "employee_id", sub.EmployeeID, "month", sub.MonthKey, "from", from, "to", sub.Status)

	mentorID, _ := chain.Reviewer(submission.RoleMentor)
	s.notify(ctx, sub.EmployeeID, actor.EmployeeID, notification.TypeReportSubmitted,
		"Laporan terkirim",
		fmt.Sprintf("Laporan mutaba'ah %s telah dikirim ke mentor.", sub.MonthKey), sub)
	s.notify(ctx, mentorID, actor.EmployeeID, notification.TypeReportAwaitingReview,
		"Laporan menunggu review",
		fmt.Sprintf("%s mengirim laporan mutaba'ah %s.", emp.FullName, sub.MonthKey), sub)

	return submission.ToResponse(sub), nil
}

// Review implements submission.Service.
func (s *SubmissionServiceImpl) Review(ctx context.Context, req submission.ReviewRequest) (submission.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return submission.SubmissionResponse{}, err
	}
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return submission.SubmissionResponse{}, err
	}

	now := s.now()
	action := req.Action()
	var sub *submission.Submission
	var from submission.Status
	err = s.inTx(ctx, func(ctx context.Context) error {
		var err error
		sub, err = s.repo.GetByID(ctx, req.SubmissionID)
		if err != nil {
			return err
		}
		from = sub.Status

		next, err := submission.Transition(from, action, req.ReviewerRole, sub.Chain())
		if err != nil {
			return err
		}

		reviewerID, _ := sub.Chain().Reviewer(req.ReviewerRole)
		if !actor.IsAdmin() && (actor.EmployeeID == "" || actor.EmployeeID != reviewerID) {
			return submission.ErrReviewerMismatch
		}

		stage := sub.Stage(req.ReviewerRole)
		stage.ReviewedAt = &now
		stage.Notes = req.Notes
		sub.Status = next
		if err := s.repo.UpdateReview(ctx, sub, from); err != nil {
			return err
		}

		role := req.ReviewerRole
		return s.repo.AppendEvent(ctx, newEvent(sub.ID, action, &role, actor.EmployeeID, from, next, req.Notes, now))
	})
	if err != nil {
		return submission.SubmissionResponse{}, err
	}

	slog.Info("report reviewed",
		"submission_id", sub.ID, "role", req.ReviewerRole, "decision", req.Decision, "from", from, "to", sub.Status)
	s.notifyReview(ctx, actor.EmployeeID, sub, req)

	return submission.ToResponse(sub), nil
}

func (s *SubmissionServiceImpl) notifyReview(ctx context.Context, senderID string, sub *submission.Submission, req submission.ReviewRequest) {
	switch {
	case sub.Status.IsRejected():
		msg := fmt.Sprintf("Laporan mutaba'ah %s dikembalikan oleh %s.", sub.MonthKey, req.ReviewerRole)
		if req.Notes != nil {
			msg += " Catatan: " + *req.Notes
		}
		s.notify(ctx, sub.EmployeeID, senderID, notification.TypeReportRejected, "Laporan dikembalikan", msg, sub)

	case sub.Status == submission.StatusApproved:
		s.notify(ctx, sub.EmployeeID, senderID, notification.TypeReportApproved,
			"Laporan disetujui",
			fmt.Sprintf("Laporan mutaba'ah %s telah disetujui sepenuhnya.", sub.MonthKey), sub)

	default:
		s.notify(ctx, sub.EmployeeID, senderID, notification.TypeReportStageApproved,
			"Laporan disetujui "+string(req.ReviewerRole),
			fmt.Sprintf("Laporan mutaba'ah %s diteruskan ke tahap berikutnya.", sub.MonthKey), sub)
		if role, ok := sub.Status.PendingRole(); ok {
			if next, ok := sub.Chain().Reviewer(role); ok {
				s.notify(ctx, next, senderID, notification.TypeReportAwaitingReview,
					"Laporan menunggu review",
					fmt.Sprintf("Laporan mutaba'ah %s menunggu review Anda sebagai %s.", sub.MonthKey, role), sub)
			}
		}
	}
}

// notify never fails the caller; queue errors are logged.
func (s *SubmissionServiceImpl) notify(ctx context.Context, recipientID, senderID string, t notification.NotificationType, title, message string, sub *submission.Submission) {
	if recipientID == "" || s.notifier == nil {
		return
	}
	var sender *string
	if senderID != "" {
		sender = &senderID
	}
	err := s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: recipientID,
		SenderID:    sender,
		Type:        t,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"submission_id": sub.ID,
			"month_key":     sub.MonthKey,
			"status":        string(sub.Status),
		},
	})
	if err != nil {
		slog.Warn("failed to queue submission notification", "recipient_id", recipientID, "type", t, "error", err)
	}
}

// GetByID implements submission.Service.
func (s *SubmissionServiceImpl) GetByID(ctx context.Context, id string) (submission.SubmissionDetailResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return submission.SubmissionDetailResponse{}, err
	}

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return submission.SubmissionDetailResponse{}, err
	}
	if !canView(actor, sub) {
		return submission.SubmissionDetailResponse{}, employee.ErrUnauthorized
	}

	events, err := s.repo.ListEvents(ctx, id)
	if err != nil {
		return submission.SubmissionDetailResponse{}, err
	}
	history := make([]submission.EventResponse, 0, len(events))
	for _, e := range events {
		history = append(history, submission.EventResponse{
			Action:     e.Action,
			ActorID:    e.ActorID,
			Role:       e.Role,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			Notes:      e.Notes,
			CreatedAt:  e.CreatedAt,
		})
	}

	return submission.SubmissionDetailResponse{
		SubmissionResponse: submission.ToResponse(sub),
		History:            history,
	}, nil
}

// GetForMonth implements submission.Service.
func (s *SubmissionServiceImpl) GetForMonth(ctx context.Context, employeeID, monthKey string) (*submission.SubmissionResponse, error) {
	if _, err := calendar.ParseMonthKey(monthKey); err != nil {
		return nil, err
	}
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !emp.VisibleTo(actor.EmployeeID, actor.IsAdmin()) {
		return nil, employee.ErrUnauthorized
	}

	sub, err := s.repo.GetByEmployeeMonth(ctx, employeeID, monthKey)
	if err != nil || sub == nil {
		return nil, err
	}
	resp := submission.ToResponse(sub)
	return &resp, nil
}

// Inbox implements submission.Service.
func (s *SubmissionServiceImpl) Inbox(ctx context.Context) ([]submission.InboxItemResponse, error) {
	reviewerID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListPendingForReviewer(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]submission.InboxItemResponse, 0, len(items))
	for _, item := range items {
		role, _ := item.Submission.Status.PendingRole()
		responses = append(responses, submission.InboxItemResponse{
			SubmissionResponse: submission.ToResponse(&item.Submission),
			EmployeeName:       item.EmployeeName,
			EmployeeCode:       item.EmployeeCode,
			Unit:               item.Unit,
			AwaitingRole:       role,
		})
	}
	return responses, nil
}

func canView(actor auth.Actor, sub *submission.Submission) bool {
	if actor.IsAdmin() || (actor.EmployeeID != "" && actor.EmployeeID == sub.EmployeeID) {
		return true
	}
	for _, role := range []submission.ReviewerRole{submission.RoleMentor, submission.RoleSupervisor, submission.RoleKaUnit, submission.RoleManager} {
		if id, ok := sub.Chain().Reviewer(role); ok && id == actor.EmployeeID {
			return true
		}
	}
	return false
}

func newEvent(submissionID string, action submission.Action, role *submission.ReviewerRole, actorID string, from, to submission.Status, notes *string, at time.Time) submission.Event {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	var actor *string
	if actorID != "" {
		actor = &actorID
	}
	return submission.Event{
		ID:           id.String(),
		SubmissionID: submissionID,
		Action:       action,
		ActorID:      actor,
		Role:         role,
		FromStatus:   from,
		ToStatus:     to,
		Notes:        notes,
		CreatedAt:    at,
	}
}

var _ submission.Service = (*SubmissionServiceImpl)(nil)
