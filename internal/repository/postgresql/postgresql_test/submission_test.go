package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionRepository_Lifecycle(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewSubmissionRepository(testDB)
	mentor := createEmployee(t, ctx, "2015-0001", nil)
	id := createEmployee(t, ctx, "2019-0042", &mentor, "2026-03")

	none, err := repo.GetByEmployeeMonth(ctx, id, "2026-03")
	require.NoError(t, err)
	assert.Nil(t, none)

	now := time.Date(2026, time.March, 29, 8, 0, 0, 0, time.UTC)
	s := &submission.Submission{
		EmployeeID:  id,
		MonthKey:    "2026-03",
		Status:      submission.StatusPendingMentor,
		SubmittedAt: &now,
		Mentor:      submission.Review{ReviewerID: &mentor},
	}
	require.NoError(t, repo.Upsert(ctx, s))
	require.NotEmpty(t, s.ID)

	inbox, err := repo.ListPendingForReviewer(ctx, mentor)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "2019-0042", inbox[0].EmployeeCode)

	again := *s
	assert.ErrorIs(t, repo.Upsert(ctx, &again), submission.ErrInvalidTransition, "pending rows are not overwritten")

	role := submission.RoleMentor
	require.NoError(t, repo.AppendEvent(ctx, submission.Event{
		ID:           uuid.Must(uuid.NewV7()).String(),
		SubmissionID: s.ID,
		Action:       submission.ActionReject,
		ActorID:      &mentor,
		Role:         &role,
		FromStatus:   submission.StatusPendingMentor,
		ToStatus:     submission.StatusRejectedMentor,
		CreatedAt:    now,
	}))
	s.Status = submission.StatusRejectedMentor
	require.NoError(t, repo.UpdateReview(ctx, s, submission.StatusPendingMentor))

	assert.ErrorIs(t, repo.UpdateReview(ctx, s, submission.StatusPendingMentor), submission.ErrInvalidTransition, "stale from status")

	resubmit := &submission.Submission{
		EmployeeID:  id,
		MonthKey:    "2026-03",
		Status:      submission.StatusPendingMentor,
		SubmittedAt: &now,
		Mentor:      submission.Review{ReviewerID: &mentor},
	}
	require.NoError(t, repo.Upsert(ctx, resubmit))
	assert.Equal(t, s.ID, resubmit.ID, "resubmission reuses the row")

	events, err := repo.ListEvents(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, submission.StatusRejectedMentor, events[0].ToStatus)

	listed, err := repo.ListByEmployeeMonths(ctx, id, []string{"2026-02", "2026-03"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, submission.StatusPendingMentor, listed[0].Status)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewSubmissionRepository(testDB)
	id := createEmployee(t, ctx, "2019-0042", nil, "2026-03")

	err := postgresql.WithTransaction(ctx, testDB, func(ctx context.Context) error {
		if err := repo.Upsert(ctx, &submission.Submission{EmployeeID: id, MonthKey: "2026-03", Status: submission.StatusPendingMentor}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := repo.GetByEmployeeMonth(ctx, id, "2026-03")
	require.NoError(t, err)
	assert.Nil(t, got)
}
