package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// Designations are matched case-insensitively. A designation without its own
// night bill falls back to the night_bill_rates table.
const employeeSelect = `
	SELECT e.emp_id::text, COALESCE(e.emp_name, ''), COALESCE(e.designation, ''),
		COALESCE(e.section, ''), COALESCE(e.sub_section, ''), COALESCE(e.category, ''),
		COALESCE(e.grade, ''), COALESCE(e.gross_salary, 0),
		COALESCE(NULLIF(d.night_bill, 0), nbr.rate, 0)
	FROM employees e
	LEFT JOIN designations d ON LOWER(TRIM(d.designation)) = LOWER(TRIM(e.designation))
	LEFT JOIN night_bill_rates nbr ON LOWER(TRIM(nbr.designation)) = LOWER(TRIM(e.designation))
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.Designation,
		&e.Section, &e.SubSection, &e.Category,
		&e.Grade, &e.GrossSalary,
		&e.NightBill,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return employee.Resolve(e), nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect + `
		WHERE ($1::text = '' OR e.section = $1)
			AND ($2::text = '' OR e.sub_section = $2)
			AND ($3::text = '' OR e.category = $3)
		ORDER BY e.emp_id
	`

	rows, err := q.Query(ctx, query, filter.Section, filter.SubSection, filter.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect + `WHERE e.emp_id::text = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return e, nil
}

// DistinctSections implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) DistinctSections(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `
		SELECT DISTINCT section FROM employees
		WHERE section IS NOT NULL AND section <> ''
		ORDER BY section
	`)
}

// DistinctSubSections implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) DistinctSubSections(ctx context.Context, section string) ([]string, error) {
	return r.distinct(ctx, `
		SELECT DISTINCT sub_section FROM employees
		WHERE sub_section IS NOT NULL AND sub_section <> ''
			AND ($1::text = '' OR section = $1)
		ORDER BY sub_section
	`, section)
}

// DistinctCategories implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `
		SELECT DISTINCT category FROM employees
		WHERE category IS NOT NULL AND category <> ''
		ORDER BY category
	`)
}

func (r *employeeRepositoryImpl) distinct(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load distinct values: %w", err)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan distinct values: %w", err)
	}
	return values, nil
}

// Count implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}
