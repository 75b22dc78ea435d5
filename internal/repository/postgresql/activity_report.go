package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activityreport"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/database"
)

type activityReportRepositoryImpl struct {
	db *database.DB
}

func NewActivityReportRepository(db *database.DB) activityreport.Repository {
	return &activityReportRepositoryImpl{db: db}
}

// Get implements activityreport.Repository.
func (r *activityReportRepositoryImpl) Get(ctx context.Context, employeeID string) (activityreport.Document, error) {
	q := GetQuerier(ctx, r.db)

	doc := activityreport.Document{EmployeeID: employeeID, Reports: activityreport.ReportsByMonth{}}
	var raw []byte
	err := q.QueryRow(ctx, `
		SELECT reports, version, updated_at
		FROM employee_activity_reports
		WHERE employee_id = $1
	`, employeeID).Scan(&raw, &doc.Version, &doc.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return doc, nil
		}
		return activityreport.Document{}, fmt.Errorf("get activity reports: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc.Reports); err != nil {
			return activityreport.Document{}, fmt.Errorf("decode activity reports: %w", err)
		}
	}
	if doc.Reports == nil {
		doc.Reports = activityreport.ReportsByMonth{}
	}
	return doc, nil
}

// Put implements activityreport.Repository.
func (r *activityReportRepositoryImpl) Put(ctx context.Context, doc activityreport.Document) (activityreport.Document, error) {
	q := GetQuerier(ctx, r.db)

	raw, err := json.Marshal(doc.Reports)
	if err != nil {
		return activityreport.Document{}, fmt.Errorf("encode activity reports: %w", err)
	}

	var query string
	if doc.Version == 0 {
		query = `
			INSERT INTO employee_activity_reports (employee_id, reports, version, updated_at)
			VALUES ($1, $2, 1, NOW())
			ON CONFLICT (employee_id) DO NOTHING
			RETURNING version, updated_at
		`
		err = q.QueryRow(ctx, query, doc.EmployeeID, raw).Scan(&doc.Version, &doc.UpdatedAt)
	} else {
		query = `
			UPDATE employee_activity_reports
			SET reports = $2, version = version + 1, updated_at = NOW()
			WHERE employee_id = $1 AND version = $3
			RETURNING version, updated_at
		`
		err = q.QueryRow(ctx, query, doc.EmployeeID, raw, doc.Version).Scan(&doc.Version, &doc.UpdatedAt)
	}
	if err != nil {
		if isNoRows(err) {
			return activityreport.Document{}, activityreport.ErrVersionConflict
		}
		return activityreport.Document{}, fmt.Errorf("put activity reports: %w", err)
	}
	return doc, nil
}
