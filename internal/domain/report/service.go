package report

import (
	"context"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
)

// Calculator runs the payment computation engine for one query.
type Calculator interface {
	Compute(ctx context.Context, q Query) ([]Row, error)
}

// ReportService defines the interface for attendance and payment reports
type ReportService interface {
	Calculator

	// ComputePaymentSheet always runs the engine and never reads a holiday
	// snapshot. HTTP reports go through holiday.HolidayService.PaymentSource.
	ComputePaymentSheet(ctx context.Context, req ReportRequest) (ReportResponse, error)

	// Present status (attendance only) with absent/incomplete/complete filter
	ComputePresentStatus(ctx context.Context, req ReportRequest) (ReportResponse, error)

	// Night bill for late leavers
	ComputeNightBill(ctx context.Context, req ReportRequest) (ReportResponse, error)

	// Security payment, live only like ComputePaymentSheet; organizational
	// filters are ignored
	ComputeSecurityPayment(ctx context.Context, req ReportRequest) (ReportResponse, error)

	// ValidateFilter rejects section/sub-section/category values that are not stored
	ValidateFilter(ctx context.Context, filter employee.Filter) error

	// Filter choices for the report screens
	Lookups(ctx context.Context, section string) (LookupsResponse, error)
}
