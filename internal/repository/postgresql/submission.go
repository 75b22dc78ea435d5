package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/database"
)

type submissionRepositoryImpl struct {
	db *database.DB
}

func NewSubmissionRepository(db *database.DB) submission.Repository {
	return &submissionRepositoryImpl{db: db}
}

const submissionColumns = `
	s.id, s.employee_id, s.month_key, s.status, s.submitted_at,
	s.mentor_id, s.mentor_reviewed_at, s.mentor_notes,
	s.supervisor_id, s.supervisor_reviewed_at, s.supervisor_notes,
	s.kaunit_id, s.kaunit_reviewed_at, s.kaunit_notes,
	s.manager_id, s.manager_reviewed_at, s.manager_notes,
	s.created_at, s.updated_at
`

func submissionDest(s *submission.Submission) []any {
	return []any{
		&s.ID, &s.EmployeeID, &s.MonthKey, &s.Status, &s.SubmittedAt,
		&s.Mentor.ReviewerID, &s.Mentor.ReviewedAt, &s.Mentor.Notes,
		&s.Supervisor.ReviewerID, &s.Supervisor.ReviewedAt, &s.Supervisor.Notes,
		&s.KaUnit.ReviewerID, &s.KaUnit.ReviewedAt, &s.KaUnit.Notes,
		&s.Manager.ReviewerID, &s.Manager.ReviewedAt, &s.Manager.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	}
}

func stageArgs(s *submission.Submission) []any {
	return []any{
		s.Mentor.ReviewerID, s.Mentor.ReviewedAt, s.Mentor.Notes,
		s.Supervisor.ReviewerID, s.Supervisor.ReviewedAt, s.Supervisor.Notes,
		s.KaUnit.ReviewerID, s.KaUnit.ReviewedAt, s.KaUnit.Notes,
		s.Manager.ReviewerID, s.Manager.ReviewedAt, s.Manager.Notes,
	}
}

// GetByID implements submission.Repository.
func (r *submissionRepositoryImpl) GetByID(ctx context.Context, id string) (*submission.Submission, error) {
	q := GetQuerier(ctx, r.db)

	var s submission.Submission
	err := q.QueryRow(ctx, `SELECT `+submissionColumns+` FROM monthly_report_submissions s WHERE s.id = $1`, id).
		Scan(submissionDest(&s)...)
	if err != nil {
		if isNoRows(err) {
			return nil, submission.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return &s, nil
}

// GetByEmployeeMonth implements submission.Repository.
func (r *submissionRepositoryImpl) GetByEmployeeMonth(ctx context.Context, employeeID, monthKey string) (*submission.Submission, error) {
	q := GetQuerier(ctx, r.db)

	var s submission.Submission
	err := q.QueryRow(ctx, `
		SELECT `+submissionColumns+`
		FROM monthly_report_submissions s
		WHERE s.employee_id = $1 AND s.month_key = $2
	`, employeeID, monthKey).Scan(submissionDest(&s)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get submission for month: %w", err)
	}
	return &s, nil
}

// ListByEmployeeMonths implements submission.Repository.
func (r *submissionRepositoryImpl) ListByEmployeeMonths(ctx context.Context, employeeID string, monthKeys []string) ([]submission.Submission, error) {
	if len(monthKeys) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+submissionColumns+`
		FROM monthly_report_submissions s
		WHERE s.employee_id = $1 AND s.month_key = ANY($2)
		ORDER BY s.month_key
	`, employeeID, monthKeys)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []submission.Submission
	for rows.Next() {
		var s submission.Submission
		if err := rows.Scan(submissionDest(&s)...); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Upsert implements submission.Repository.
func (r *submissionRepositoryImpl) Upsert(ctx context.Context, s *submission.Submission) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_report_submissions AS s (
			employee_id, month_key, status, submitted_at,
			mentor_id, mentor_reviewed_at, mentor_notes,
			supervisor_id, supervisor_reviewed_at, supervisor_notes,
			kaunit_id, kaunit_reviewed_at, kaunit_notes,
			manager_id, manager_reviewed_at, manager_notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (employee_id, month_key) DO UPDATE SET
			status = EXCLUDED.status,
			submitted_at = EXCLUDED.submitted_at,
			mentor_id = EXCLUDED.mentor_id,
			mentor_reviewed_at = EXCLUDED.mentor_reviewed_at,
			mentor_notes = EXCLUDED.mentor_notes,
			supervisor_id = EXCLUDED.supervisor_id,
			supervisor_reviewed_at = EXCLUDED.supervisor_reviewed_at,
			supervisor_notes = EXCLUDED.supervisor_notes,
			kaunit_id = EXCLUDED.kaunit_id,
			kaunit_reviewed_at = EXCLUDED.kaunit_reviewed_at,
			kaunit_notes = EXCLUDED.kaunit_notes,
			manager_id = EXCLUDED.manager_id,
			manager_reviewed_at = EXCLUDED.manager_reviewed_at,
			manager_notes = EXCLUDED.manager_notes,
			updated_at = NOW()
		WHERE s.status LIKE 'rejected_%'
		RETURNING ` + submissionColumns

	args := append([]any{s.EmployeeID, s.MonthKey, s.Status, s.SubmittedAt}, stageArgs(s)...)
	if err := q.QueryRow(ctx, query, args...).Scan(submissionDest(s)...); err != nil {
		if isNoRows(err) {
			return submission.ErrInvalidTransition
		}
		return fmt.Errorf("upsert submission: %w", err)
	}
	return nil
}

// UpdateReview implements submission.Repository.
func (r *submissionRepositoryImpl) UpdateReview(ctx context.Context, s *submission.Submission, from submission.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_report_submissions AS s SET
			status = $2,
			mentor_id = $3, mentor_reviewed_at = $4, mentor_notes = $5,
			supervisor_id = $6, supervisor_reviewed_at = $7, supervisor_notes = $8,
			kaunit_id = $9, kaunit_reviewed_at = $10, kaunit_notes = $11,
			manager_id = $12, manager_reviewed_at = $13, manager_notes = $14,
			updated_at = NOW()
		WHERE s.id = $1 AND s.status = $15
		RETURNING ` + submissionColumns

	args := append([]any{s.ID, s.Status}, stageArgs(s)...)
	args = append(args, from)
	if err := q.QueryRow(ctx, query, args...).Scan(submissionDest(s)...); err != nil {
		if isNoRows(err) {
			return submission.ErrInvalidTransition
		}
		return fmt.Errorf("update submission review: %w", err)
	}
	return nil
}

// AppendEvent implements submission.Repository.
func (r *submissionRepositoryImpl) AppendEvent(ctx context.Context, e submission.Event) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO submission_events (id, submission_id, action, role, actor_id, from_status, to_status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.SubmissionID, e.Action, e.Role, e.ActorID, e.FromStatus, e.ToStatus, e.Notes, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("append submission event: %w", err)
	}
	return nil
}

// ListEvents implements submission.Repository.
func (r *submissionRepositoryImpl) ListEvents(ctx context.Context, submissionID string) ([]submission.Event, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, submission_id, action, role, actor_id, from_status, to_status, notes, created_at
		FROM submission_events
		WHERE submission_id = $1
		ORDER BY created_at, id
	`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("list submission events: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (submission.Event, error) {
		var e submission.Event
		err := row.Scan(&e.ID, &e.SubmissionID, &e.Action, &e.Role, &e.ActorID, &e.FromStatus, &e.ToStatus, &e.Notes, &e.CreatedAt)
		return e, err
	})
}

// ListPendingForReviewer implements submission.Repository.
func (r *submissionRepositoryImpl) ListPendingForReviewer(ctx context.Context, reviewerID string) ([]submission.InboxItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + submissionColumns + `, e.full_name, e.employee_code, e.unit
		FROM monthly_report_submissions s
		JOIN employees e ON e.id = s.employee_id
		WHERE (s.status = 'pending_mentor' AND s.mentor_id = $1)
		   OR (s.status = 'pending_supervisor' AND s.supervisor_id = $1)
		   OR (s.status = 'pending_kaunit' AND s.kaunit_id = $1)
		   OR (s.status = 'pending_manager' AND s.manager_id = $1)
		ORDER BY s.submitted_at NULLS LAST, s.month_key
	`
	rows, err := q.Query(ctx, query, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("list reviewer inbox: %w", err)
	}
	defer rows.Close()

	var items []submission.InboxItem
	for rows.Next() {
		var item submission.InboxItem
		dest := append(submissionDest(&item.Submission), &item.EmployeeName, &item.EmployeeCode, &item.Unit)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
