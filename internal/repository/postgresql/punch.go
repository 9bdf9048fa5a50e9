package postgresql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/pkg/database"
	"github.com/manel-hris/attendance-payroll/internal/pkg/validator"
)

// syncLockKey identifies the punch replication job among advisory locks.
const syncLockKey int64 = 7_415_001

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

const punchColumns = `id, emp_code, punch_time, sync_id, original_punch_time, is_corrected, created_at, updated_at`

func scanPunch(row pgx.Row) (punch.Punch, error) {
	var p punch.Punch
	err := row.Scan(
		&p.ID, &p.EmployeeCode, &p.PunchTime, &p.SyncID,
		&p.OriginalPunchTime, &p.IsManual, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func collectPunches(rows pgx.Rows) ([]punch.Punch, error) {
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return punches, nil
}

// ListByDate implements punch.PunchRepository.
func (r *punchRepositoryImpl) ListByDate(ctx context.Context, date time.Time, employeeCodes []string) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)
	start, end := punch.DayBounds(date)

	query := `
		SELECT ` + punchColumns + `
		FROM iclock_transactions
		WHERE punch_time >= $1 AND punch_time < $2
			AND ($3::text[] IS NULL OR TRIM(emp_code) = ANY($3::text[]))
		ORDER BY punch_time, id
	`

	var codes []string
	if len(employeeCodes) > 0 {
		codes = employeeCodes
	}

	rows, err := q.Query(ctx, query, start, end, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches for %s: %w", start.Format("2006-01-02"), err)
	}
	return collectPunches(rows)
}

// ListForEmployeeDate implements punch.PunchRepository.
func (r *punchRepositoryImpl) ListForEmployeeDate(ctx context.Context, employeeCode string, date time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)
	start, end := punch.DayBounds(date)

	query := `
		SELECT ` + punchColumns + `
		FROM iclock_transactions
		WHERE TRIM(emp_code) = $1 AND punch_time >= $2 AND punch_time < $3
		ORDER BY punch_time, id
	`

	rows, err := q.Query(ctx, query, employeeCode, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches of %s: %w", employeeCode, err)
	}
	return collectPunches(rows)
}

// GetByID implements punch.PunchRepository.
func (r *punchRepositoryImpl) GetByID(ctx context.Context, id int64) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchColumns + ` FROM iclock_transactions WHERE id = $1`

	p, err := scanPunch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to get punch %d: %w", id, err)
	}
	return p, nil
}

// sessionBounds is the half-open range a session covers on date.
func sessionBounds(date time.Time, session punch.Session) (time.Time, time.Time) {
	start, end := punch.DayBounds(date)
	cutoff := start.Add(punch.SessionCutoffHour * time.Hour)
	if session == punch.SessionMorning {
		return start, cutoff
	}
	return cutoff, end
}

// LockManualSlot implements punch.PunchRepository with a transaction-scoped
// advisory lock keyed on code, day and session.
func (r *punchRepositoryImpl) LockManualSlot(ctx context.Context, employeeCode string, date time.Time, session punch.Session) error {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return errors.New("manual slot lock requires a transaction")
	}

	key := employeeCode + "|" + date.Format(validator.DateLayout) + "|" + string(session)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("failed to lock manual punch slot: %w", err)
	}
	return nil
}

// FindManual implements punch.PunchRepository. The row stays locked until the
// surrounding transaction ends.
func (r *punchRepositoryImpl) FindManual(ctx context.Context, employeeCode string, date time.Time, session punch.Session) (*punch.Punch, error) {
	q := GetQuerier(ctx, r.db)
	from, to := sessionBounds(date, session)

	query := `
		SELECT ` + punchColumns + `
		FROM iclock_transactions
		WHERE TRIM(emp_code) = $1 AND is_corrected = TRUE
			AND punch_time >= $2 AND punch_time < $3
		ORDER BY id
		LIMIT 1
		FOR UPDATE
	`

	p, err := scanPunch(q.QueryRow(ctx, query, employeeCode, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find manual punch: %w", err)
	}
	return &p, nil
}

// CreateManual implements punch.PunchRepository.
func (r *punchRepositoryImpl) CreateManual(ctx context.Context, employeeCode string, at time.Time) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO iclock_transactions (emp_code, punch_time, is_corrected, created_at, updated_at)
		VALUES ($1, $2, TRUE, NOW(), NOW())
		RETURNING ` + punchColumns

	p, err := scanPunch(q.QueryRow(ctx, query, employeeCode, at))
	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to create manual punch: %w", err)
	}
	return p, nil
}

// UpdatePunchTime implements punch.PunchRepository. Synced punches are never
// touched.
func (r *punchRepositoryImpl) UpdatePunchTime(ctx context.Context, id int64, at time.Time) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE iclock_transactions
		SET punch_time = $2, updated_at = NOW()
		WHERE id = $1 AND is_corrected = TRUE
		RETURNING ` + punchColumns

	p, err := scanPunch(q.QueryRow(ctx, query, id, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to update punch %d: %w", id, err)
	}
	return p, nil
}

// DeleteManual implements punch.PunchRepository.
func (r *punchRepositoryImpl) DeleteManual(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM iclock_transactions WHERE id = $1 AND is_corrected = TRUE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete punch %d: %w", id, err)
	}

	if commandTag.RowsAffected() == 0 {
		return punch.ErrPunchNotFound
	}

	return nil
}

// MaxSyncID implements punch.PunchRepository.
func (r *punchRepositoryImpl) MaxSyncID(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var max int64
	if err := q.QueryRow(ctx, `SELECT COALESCE(MAX(sync_id), 0) FROM iclock_transactions`).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to read sync watermark: %w", err)
	}
	return max, nil
}

// InsertSynced implements punch.PunchRepository. Source ids already present
// are skipped by the unique sync_id constraint.
func (r *punchRepositoryImpl) InsertSynced(ctx context.Context, batch []punch.UpstreamPunch) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	ids := make([]int64, len(batch))
	codes := make([]string, len(batch))
	times := make([]time.Time, len(batch))
	for i, p := range batch {
		ids[i] = p.SourceID
		codes[i] = p.EmployeeCode
		times[i] = p.PunchTime
	}

	query := `
		INSERT INTO iclock_transactions (sync_id, emp_code, punch_time, original_punch_time, is_corrected, created_at, updated_at)
		SELECT s.sync_id, TRIM(s.emp_code), s.punch_time, s.punch_time, FALSE, NOW(), NOW()
		FROM unnest($1::bigint[], $2::text[], $3::timestamp[]) AS s(sync_id, emp_code, punch_time)
		ON CONFLICT (sync_id) DO NOTHING
	`

	commandTag, err := q.Exec(ctx, query, ids, codes, times)
	if err != nil {
		return 0, fmt.Errorf("failed to insert synced punches: %w", err)
	}
	return int(commandTag.RowsAffected()), nil
}

// TryLockSync implements punch.PunchRepository. Session advisory locks belong
// to a connection, so one is held out of the pool until release.
func (r *punchRepositoryImpl) TryLockSync(ctx context.Context) (func(), bool, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire connection: %w", err)
	}

	var acquired bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, syncLockKey).Scan(&acquired); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("failed to take sync lock: %w", err)
	}
	if !acquired {
		conn.Release()
		return nil, false, nil
	}

	release := func() {
		if _, err := conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, syncLockKey); err != nil {
			slog.Error("failed to release sync lock", "error", err)
		}
		conn.Release()
	}
	return release, true, nil
}
