package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/manel-hris/attendance-payroll/internal/domain/holiday"
	"github.com/manel-hris/attendance-payroll/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidaySelect = `
	SELECT h.id, h.holiday_date, h.holiday_name, h.status, h.processed_at, h.created_at, h.updated_at,
		(SELECT COUNT(*) FROM holiday_duty_records r WHERE r.holiday_id = h.id)
	FROM holidays h
`

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(
		&h.ID, &h.Date, &h.Name, &h.Status, &h.ProcessedAt, &h.CreatedAt, &h.UpdatedAt,
		&h.RecordCount,
	)
	return h, err
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (holiday_date, holiday_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, holiday_date, holiday_name, status, processed_at, created_at, updated_at, 0
	`

	created, err := scanHoliday(q.QueryRow(ctx, query, h.Date, h.Name, h.Status))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return holiday.Holiday{}, holiday.ErrHolidayDateExists
			}
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

func (r *holidayRepositoryImpl) get(ctx context.Context, query string, id int64) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	h, err := scanHoliday(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday %d: %w", id, err)
	}
	return h, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id int64) (holiday.Holiday, error) {
	return r.get(ctx, holidaySelect+`WHERE h.id = $1`, id)
}

// GetByIDForUpdate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (holiday.Holiday, error) {
	return r.get(ctx, holidaySelect+`WHERE h.id = $1 FOR UPDATE OF h`, id)
}

// GetByDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	h, err := scanHoliday(q.QueryRow(ctx, holidaySelect+`WHERE h.holiday_date = $1::date`, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday for %s: %w", date.Format("2006-01-02"), err)
	}
	return &h, nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context, year int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := holidaySelect + `
		WHERE ($1::int = 0 OR EXTRACT(YEAR FROM h.holiday_date) = $1::int)
		ORDER BY h.holiday_date DESC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}

func (r *holidayRepositoryImpl) exec(ctx context.Context, query string, args ...interface{}) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update holiday: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

// UpdateName implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) UpdateName(ctx context.Context, id int64, name string) error {
	return r.exec(ctx, `UPDATE holidays SET holiday_name = $2, updated_at = NOW() WHERE id = $1`, id, name)
}

// UpdateStatus implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status holiday.Status) error {
	return r.exec(ctx, `UPDATE holidays SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
}

// MarkProcessed implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) MarkProcessed(ctx context.Context, id int64, at time.Time) error {
	return r.exec(ctx, `UPDATE holidays SET processed_at = $2, updated_at = NOW() WHERE id = $1`, id, at)
}

// Delete implements holiday.HolidayRepository. Duty records cascade.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
}
