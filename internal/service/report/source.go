package report

import (
	"context"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/report"
)

type liveSource struct {
	calc report.Calculator
	date time.Time
}

// NewLiveSource serves payment rows for date by running the engine on demand.
func NewLiveSource(calc report.Calculator, date time.Time) report.Source {
	return &liveSource{calc: calc, date: date}
}

func (s *liveSource) Kind() report.SourceKind {
	return report.SourceLive
}

func (s *liveSource) HolidayName() string {
	return ""
}

func (s *liveSource) PaymentSheet(ctx context.Context, filter employee.Filter) ([]report.Row, error) {
	return s.calc.Compute(ctx, report.Query{Kind: report.KindPaymentSheet, Date: s.date, Filter: filter})
}

func (s *liveSource) SecurityPayment(ctx context.Context) ([]report.Row, error) {
	return s.calc.Compute(ctx, report.Query{Kind: report.KindSecurityPayment, Date: s.date})
}
