package holiday

import (
	"context"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id int64) (Holiday, error)
	// GetByIDForUpdate locks the holiday row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id int64) (Holiday, error)
	// GetByDate returns nil when no holiday is registered on date
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)
	// List returns holidays newest first; year 0 means all years
	List(ctx context.Context, year int) ([]Holiday, error)
	UpdateName(ctx context.Context, id int64, name string) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	MarkProcessed(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

type DutyRecordRepository interface {
	DeleteByHoliday(ctx context.Context, holidayID int64) error
	BulkInsert(ctx context.Context, records []DutyRecord) (int64, error)
	// ListByHoliday filters case-insensitively on the stored placement fields
	ListByHoliday(ctx context.Context, holidayID int64, kind RecordKind, filter employee.Filter) ([]DutyRecord, error)
	// ListSnapshot reads payment rows (filtered) and security rows (unfiltered)
	// in a single statement
	ListSnapshot(ctx context.Context, holidayID int64, filter employee.Filter) ([]DutyRecord, error)
}
