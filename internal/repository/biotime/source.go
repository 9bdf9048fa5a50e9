// Package biotime reads punches from the BioTime terminal database, which
// is the upstream of the local punch store.
package biotime

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/punch"

	_ "github.com/lib/pq"
)

type Source struct {
	db *sql.DB
}

// Open connects to the BioTime database with a small read-only pool.
func Open(ctx context.Context, dsn string) (*Source, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open biotime database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach biotime database: %w", err)
	}

	return NewSource(db), nil
}

func NewSource(db *sql.DB) *Source {
	return &Source{db: db}
}

func (s *Source) Close() error {
	return s.db.Close()
}

const fetchAfterQuery = `
	SELECT id, TRIM(emp_code), punch_time
	FROM iclock_transaction
	WHERE id > $1
	ORDER BY id
	LIMIT $2
`

// FetchAfter implements punch.UpstreamSource.
func (s *Source) FetchAfter(ctx context.Context, afterID int64, limit int) ([]punch.UpstreamPunch, error) {
	rows, err := s.db.QueryContext(ctx, fetchAfterQuery, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upstream punches after %d: %w", afterID, err)
	}
	defer rows.Close()

	batch := make([]punch.UpstreamPunch, 0, limit)
	for rows.Next() {
		var p punch.UpstreamPunch
		if err := rows.Scan(&p.SourceID, &p.EmployeeCode, &p.PunchTime); err != nil {
			return nil, fmt.Errorf("failed to scan upstream punch: %w", err)
		}
		batch = append(batch, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return batch, nil
}
