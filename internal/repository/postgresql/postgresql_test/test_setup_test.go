package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/manel-hris/attendance-payroll/internal/pkg/database"
)

// schema mirrors the production tables these repositories touch. Migrations
// live outside this repository.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS holidays (
		id BIGSERIAL PRIMARY KEY,
		holiday_date DATE NOT NULL UNIQUE,
		holiday_name VARCHAR(100) NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		processed_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS holiday_duty_records (
		id BIGSERIAL PRIMARY KEY,
		holiday_id BIGINT NOT NULL REFERENCES holidays(id) ON DELETE CASCADE,
		record_kind TEXT NOT NULL,
		emp_id TEXT NOT NULL,
		emp_name TEXT,
		designation TEXT,
		section TEXT,
		sub_section TEXT,
		category TEXT,
		gross_salary NUMERIC(12,2),
		basic_salary NUMERIC(12,2),
		in_time TEXT,
		out_time TEXT,
		work_hours NUMERIC(6,2),
		ot_hours NUMERIC(6,2),
		ot_rate NUMERIC(10,2),
		amount NUMERIC(12,2),
		is_manual BOOLEAN NOT NULL DEFAULT FALSE,
		remarks TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS iclock_transactions (
		id BIGSERIAL PRIMARY KEY,
		emp_code TEXT NOT NULL,
		punch_time TIMESTAMP NOT NULL,
		sync_id BIGINT UNIQUE,
		original_punch_time TIMESTAMP,
		is_corrected BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
}

type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is
// not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	ctx := context.Background()
	if err := setup.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}
	if err := setup.TruncateAllTables(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(setup.Close)
	return setup
}

func (t *TestDatabaseSetup) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := t.DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"holiday_duty_records",
		"holidays",
		"iclock_transactions",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
