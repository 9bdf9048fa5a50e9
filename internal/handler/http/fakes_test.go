package http

import (
	"context"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/holiday"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/domain/report"
)

type fakeReportService struct {
	ComputeFn                func(ctx context.Context, q report.Query) ([]report.Row, error)
	ComputePaymentSheetFn    func(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error)
	ComputePresentStatusFn   func(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error)
	ComputeNightBillFn       func(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error)
	ComputeSecurityPaymentFn func(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error)
	ValidateFilterFn         func(ctx context.Context, filter employee.Filter) error
	LookupsFn                func(ctx context.Context, section string) (report.LookupsResponse, error)
}

func (f *fakeReportService) Compute(ctx context.Context, q report.Query) ([]report.Row, error) {
	return f.ComputeFn(ctx, q)
}

func (f *fakeReportService) ComputePaymentSheet(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	return f.ComputePaymentSheetFn(ctx, req)
}

func (f *fakeReportService) ComputePresentStatus(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	return f.ComputePresentStatusFn(ctx, req)
}

func (f *fakeReportService) ComputeNightBill(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	return f.ComputeNightBillFn(ctx, req)
}

func (f *fakeReportService) ComputeSecurityPayment(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	return f.ComputeSecurityPaymentFn(ctx, req)
}

func (f *fakeReportService) ValidateFilter(ctx context.Context, filter employee.Filter) error {
	if f.ValidateFilterFn == nil {
		return nil
	}
	return f.ValidateFilterFn(ctx, filter)
}

func (f *fakeReportService) Lookups(ctx context.Context, section string) (report.LookupsResponse, error) {
	return f.LookupsFn(ctx, section)
}

type fakeHolidayService struct {
	CreateFn        func(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error)
	GetFn           func(ctx context.Context, id int64) (holiday.HolidayResponse, error)
	ListFn          func(ctx context.Context, year int) ([]holiday.HolidayResponse, error)
	UpdateFn        func(ctx context.Context, id int64, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error)
	DeleteFn        func(ctx context.Context, id int64, actor holiday.Actor) error
	ProcessFn       func(ctx context.Context, id int64) (holiday.ProcessResponse, error)
	FinalizeFn      func(ctx context.Context, id int64) (holiday.HolidayResponse, error)
	ReopenFn        func(ctx context.Context, id int64, actor holiday.Actor) (holiday.HolidayResponse, error)
	RecordsFn       func(ctx context.Context, id int64, filter employee.Filter) (holiday.RecordsResponse, error)
	PaymentSourceFn func(ctx context.Context, date time.Time) (report.Source, error)
}

func (f *fakeHolidayService) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	return f.CreateFn(ctx, req)
}

func (f *fakeHolidayService) Get(ctx context.Context, id int64) (holiday.HolidayResponse, error) {
	return f.GetFn(ctx, id)
}

func (f *fakeHolidayService) List(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	return f.ListFn(ctx, year)
}

func (f *fakeHolidayService) Update(ctx context.Context, id int64, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	return f.UpdateFn(ctx, id, req)
}

func (f *fakeHolidayService) Delete(ctx context.Context, id int64, actor holiday.Actor) error {
	return f.DeleteFn(ctx, id, actor)
}

func (f *fakeHolidayService) Process(ctx context.Context, id int64) (holiday.ProcessResponse, error) {
	return f.ProcessFn(ctx, id)
}

func (f *fakeHolidayService) Finalize(ctx context.Context, id int64) (holiday.HolidayResponse, error) {
	return f.FinalizeFn(ctx, id)
}

func (f *fakeHolidayService) Reopen(ctx context.Context, id int64, actor holiday.Actor) (holiday.HolidayResponse, error) {
	return f.ReopenFn(ctx, id, actor)
}

func (f *fakeHolidayService) Records(ctx context.Context, id int64, filter employee.Filter) (holiday.RecordsResponse, error) {
	return f.RecordsFn(ctx, id, filter)
}

func (f *fakeHolidayService) PaymentSource(ctx context.Context, date time.Time) (report.Source, error) {
	return f.PaymentSourceFn(ctx, date)
}

type fakeSource struct {
	kind            report.SourceKind
	holidayName     string
	paymentFn       func(ctx context.Context, filter employee.Filter) ([]report.Row, error)
	securityPayment []report.Row
}

func (s *fakeSource) Kind() report.SourceKind { return s.kind }
func (s *fakeSource) HolidayName() string     { return s.holidayName }

func (s *fakeSource) PaymentSheet(ctx context.Context, filter employee.Filter) ([]report.Row, error) {
	return s.paymentFn(ctx, filter)
}

func (s *fakeSource) SecurityPayment(ctx context.Context) ([]report.Row, error) {
	return s.securityPayment, nil
}

type fakePunchService struct {
	AttendanceForDateFn func(ctx context.Context, date time.Time, codes []string) (map[string]punch.Attendance, error)
	AddManualPunchFn    func(ctx context.Context, req punch.ManualPunchRequest) (punch.ManualPunchResponse, error)
	DeleteManualPunchFn func(ctx context.Context, id int64) error
	AttendanceStatusFn  func(ctx context.Context, req punch.AttendanceStatusRequest) (punch.AttendanceStatusResponse, error)
}

func (f *fakePunchService) AttendanceForDate(ctx context.Context, date time.Time, codes []string) (map[string]punch.Attendance, error) {
	return f.AttendanceForDateFn(ctx, date, codes)
}

func (f *fakePunchService) AddManualPunch(ctx context.Context, req punch.ManualPunchRequest) (punch.ManualPunchResponse, error) {
	return f.AddManualPunchFn(ctx, req)
}

func (f *fakePunchService) DeleteManualPunch(ctx context.Context, id int64) error {
	return f.DeleteManualPunchFn(ctx, id)
}

func (f *fakePunchService) AttendanceStatus(ctx context.Context, req punch.AttendanceStatusRequest) (punch.AttendanceStatusResponse, error) {
	return f.AttendanceStatusFn(ctx, req)
}

type fakeSyncService struct {
	SyncFn func(ctx context.Context) (punch.SyncResult, error)
}

func (f *fakeSyncService) Sync(ctx context.Context) (punch.SyncResult, error) {
	return f.SyncFn(ctx)
}
