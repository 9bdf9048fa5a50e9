package holiday

import (
	"context"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/holiday"
	"github.com/manel-hris/attendance-payroll/internal/domain/report"
)

// snapshotSource serves a processed holiday's frozen rows.
type snapshotSource struct {
	repo    holiday.DutyRecordRepository
	holiday holiday.Holiday
}

func newSnapshotSource(repo holiday.DutyRecordRepository, h holiday.Holiday) report.Source {
	return &snapshotSource{repo: repo, holiday: h}
}

func (s *snapshotSource) Kind() report.SourceKind {
	return report.SourceSnapshot
}

func (s *snapshotSource) HolidayName() string {
	return s.holiday.Name
}

func (s *snapshotSource) PaymentSheet(ctx context.Context, filter employee.Filter) ([]report.Row, error) {
	return s.rows(ctx, holiday.RecordPayment, filter)
}

func (s *snapshotSource) SecurityPayment(ctx context.Context) ([]report.Row, error) {
	return s.rows(ctx, holiday.RecordSecurity, employee.Filter{})
}

func (s *snapshotSource) rows(ctx context.Context, kind holiday.RecordKind, filter employee.Filter) ([]report.Row, error) {
	records, err := s.repo.ListByHoliday(ctx, s.holiday.ID, kind, filter)
	if err != nil {
		return nil, err
	}
	return holiday.Rows(records), nil
}
