package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activityreport"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyProgressRepository(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewDailyProgressRepository(testDB)
	id := createEmployee(t, ctx, "2019-0042", nil, "2026-02", "2026-03")
	at := time.Date(2026, time.March, 5, 5, 0, 0, 0, time.UTC)

	require.NoError(t, repo.MarkCompleted(ctx, id, "2026-03", "05", "subuh", at))
	require.NoError(t, repo.MarkCompleted(ctx, id, "2026-03", "05", "subuh", at), "marking twice is a no-op")
	require.NoError(t, repo.MarkCompleted(ctx, id, "2026-03", "06", "subuh", at))
	require.NoError(t, repo.MarkCompleted(ctx, id, "2026-02", "01", "dhuha", at))

	sheet, err := repo.GetMonth(ctx, id, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 2, sheet.Count("2026-03", "subuh", nil))
	assert.Zero(t, sheet.Count("2026-02", "dhuha", nil))

	sheet, err = repo.GetRange(ctx, id, "2026-02", "2026-03")
	require.NoError(t, err)
	assert.True(t, sheet.Has("2026-02", "01", "dhuha"))

	n, err := repo.ResetMonth(ctx, id, "2026-03")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	sheet, err = repo.GetMonth(ctx, id, "2026-03")
	require.NoError(t, err)
	assert.Zero(t, sheet.Count("2026-03", "subuh", nil))
}

func TestActivityReportRepository_OptimisticVersion(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewActivityReportRepository(testDB)
	id := createEmployee(t, ctx, "2019-0042", nil)

	doc, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, doc.Version)

	at := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	require.NoError(t, doc.Reports.AddEntry("2026-03", "kajian_rutin", activityreport.Entry{Date: "2026-03-05", CompletedAt: at}))

	stored, err := repo.Put(ctx, doc)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stored.Version)

	_, err = repo.Put(ctx, doc)
	assert.ErrorIs(t, err, activityreport.ErrVersionConflict, "version 0 insert over an existing row")

	require.NoError(t, stored.Reports.AddEntry("2026-03", "kajian_rutin", activityreport.Entry{Date: "2026-03-12", CompletedAt: at}))
	stored, err = repo.Put(ctx, stored)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stored.Version)

	stale := stored
	stale.Version = 1
	_, err = repo.Put(ctx, stale)
	assert.ErrorIs(t, err, activityreport.ErrVersionConflict)

	reloaded, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Reports["2026-03"]["kajian_rutin"].Count)
}
