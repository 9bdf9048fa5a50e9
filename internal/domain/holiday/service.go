package holiday

import (
	"context"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/report"
)

type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Get(ctx context.Context, id int64) (HolidayResponse, error)
	List(ctx context.Context, year int) ([]HolidayResponse, error)
	Update(ctx context.Context, id int64, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id int64, actor Actor) error

	// Process freezes the holiday's payment rows, replacing any earlier snapshot
	Process(ctx context.Context, id int64) (ProcessResponse, error)
	Finalize(ctx context.Context, id int64) (HolidayResponse, error)
	Reopen(ctx context.Context, id int64, actor Actor) (HolidayResponse, error)

	// Records reads the frozen rows, never recomputing
	Records(ctx context.Context, id int64, filter employee.Filter) (RecordsResponse, error)

	// PaymentSource picks the snapshot for a processed holiday, otherwise the live engine
	PaymentSource(ctx context.Context, date time.Time) (report.Source, error)
}
