package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, u.id, e.employee_code, e.full_name, e.unit, e.position, e.employment_status,
		   e.mentor_id, e.supervisor_id, e.kaunit_id, e.manager_id, e.activated_months,
		   e.created_at, e.updated_at
	FROM employees e
	LEFT JOIN users u ON u.employee_id = e.id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.EmployeeCode,
		&e.FullName,
		&e.Unit,
		&e.Position,
		&e.EmploymentStatus,
		&e.MentorID,
		&e.SupervisorID,
		&e.KaUnitID,
		&e.ManagerID,
		&e.ActivatedMonths,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if e.ActivatedMonths == nil {
		e.ActivatedMonths = []string{}
	}
	return e, err
}

func (r *employeeRepositoryImpl) getOne(ctx context.Context, where string, arg any) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+where, arg))
	if err != nil {
		if isNoRows(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getOne(ctx, `WHERE e.id = $1`, id)
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return r.getOne(ctx, `WHERE u.id = $1`, userID)
}

// ActivateMonth implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ActivateMonth(ctx context.Context, id string, month string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET activated_months = array_append(activated_months, $2::text), updated_at = NOW()
		WHERE id = $1 AND NOT ($2::text = ANY(activated_months))
	`
	if _, err := q.Exec(ctx, query, id, month); err != nil {
		return employee.Employee{}, fmt.Errorf("activate month: %w", err)
	}
	return r.GetByID(ctx, id)
}

// ListActivatedForMonth implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActivatedForMonth(ctx context.Context, month string) ([]employee.Employee, error) {
	return r.list(ctx, `WHERE e.employment_status = 'active' AND $1::text = ANY(e.activated_months) ORDER BY e.full_name`, month)
}

// ListAwaitingSubmission implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListAwaitingSubmission(ctx context.Context, month string) ([]employee.Employee, error) {
	return r.list(ctx, `
	WHERE e.employment_status = 'active'
	  AND $1::text = ANY(e.activated_months)
	  AND NOT EXISTS (
		SELECT 1 FROM monthly_report_submissions s
		WHERE s.employee_id = e.id AND s.month_key = $1 AND s.status NOT LIKE 'rejected_%'
	  )
	ORDER BY e.full_name`, month)
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.list(ctx, `WHERE e.employment_status = 'active' ORDER BY e.full_name`)
}

func (r *employeeRepositoryImpl) list(ctx context.Context, where string, args ...any) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, employeeSelect+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

type readingHistoryRepositoryImpl struct {
	db *database.DB
}

func NewReadingHistoryRepository(db *database.DB) employee.ReadingHistoryRepository {
	return &readingHistoryRepositoryImpl{db: db}
}

// Create implements employee.ReadingHistoryRepository.
func (r *readingHistoryRepositoryImpl) Create(ctx context.Context, h employee.ReadingHistory) (employee.ReadingHistory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_reading_histories (employee_id, kind, title, amount, read_on)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	readOn := time.Date(h.ReadOn.Year(), h.ReadOn.Month(), h.ReadOn.Day(), 0, 0, 0, 0, time.UTC)
	if err := q.QueryRow(ctx, query, h.EmployeeID, h.Kind, h.Title, h.Amount, readOn).Scan(&h.ID, &h.CreatedAt); err != nil {
		return employee.ReadingHistory{}, fmt.Errorf("create reading history: %w", err)
	}
	return h, nil
}

// ListBetween implements employee.ReadingHistoryRepository.
func (r *readingHistoryRepositoryImpl) ListBetween(ctx context.Context, employeeID string, from, to time.Time) ([]employee.ReadingHistory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, kind, title, amount, read_on, created_at
		FROM employee_reading_histories
		WHERE employee_id = $1 AND read_on >= $2::date AND read_on < $3::date
		ORDER BY read_on, created_at
	`
	rows, err := q.Query(ctx, query, employeeID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list reading histories: %w", err)
	}
	defer rows.Close()

	var histories []employee.ReadingHistory
	for rows.Next() {
		var h employee.ReadingHistory
		if err := rows.Scan(&h.ID, &h.EmployeeID, &h.Kind, &h.Title, &h.Amount, &h.ReadOn, &h.CreatedAt); err != nil {
			return nil, err
		}
		histories = append(histories, h)
	}
	return histories, rows.Err()
}
