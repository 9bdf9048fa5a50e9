package punch

import (
	"context"
	"time"
)

// PunchRepository defines data access for the local punch store.
type PunchRepository interface {
	// ListByDate returns every punch on date, restricted to employeeCodes when non-empty
	ListByDate(ctx context.Context, date time.Time, employeeCodes []string) ([]Punch, error)

	// ListForEmployeeDate returns one employee's punches on date ordered by time
	ListForEmployeeDate(ctx context.Context, employeeCode string, date time.Time) ([]Punch, error)

	GetByID(ctx context.Context, id int64) (Punch, error)

	// LockManualSlot serializes manual writes for code/date/session until the
	// surrounding transaction ends. It fails outside a transaction.
	LockManualSlot(ctx context.Context, employeeCode string, date time.Time, session Session) error

	// FindManual locks and returns the manual punch for code/date/session, or nil
	FindManual(ctx context.Context, employeeCode string, date time.Time, session Session) (*Punch, error)

	CreateManual(ctx context.Context, employeeCode string, at time.Time) (Punch, error)
	UpdatePunchTime(ctx context.Context, id int64, at time.Time) (Punch, error)
	DeleteManual(ctx context.Context, id int64) error

	// MaxSyncID is the replication watermark: the largest ingested source id, 0 when empty
	MaxSyncID(ctx context.Context) (int64, error)

	// InsertSynced inserts upstream rows, skipping source ids already present
	InsertSynced(ctx context.Context, batch []UpstreamPunch) (int, error)

	// TryLockSync takes the session-level sync lock without waiting
	TryLockSync(ctx context.Context) (release func(), acquired bool, err error)
}

// UpstreamSource reads punches from the terminal database in source id order.
type UpstreamSource interface {
	FetchAfter(ctx context.Context, afterID int64, limit int) ([]UpstreamPunch, error)
}
