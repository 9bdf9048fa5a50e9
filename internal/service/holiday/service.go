package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/holiday"
	"github.com/manel-hris/attendance-payroll/internal/domain/report"
	"github.com/manel-hris/attendance-payroll/internal/pkg/database"
	"github.com/manel-hris/attendance-payroll/internal/pkg/validator"
	reportService "github.com/manel-hris/attendance-payroll/internal/service/report"
)

type HolidayServiceImpl struct {
	database.Transactor
	holidayRepo holiday.HolidayRepository
	recordRepo  holiday.DutyRecordRepository
	calc        report.Calculator
	now         func() time.Time
}

func NewHolidayService(
	tx database.Transactor,
	holidayRepo holiday.HolidayRepository,
	recordRepo holiday.DutyRecordRepository,
	calc report.Calculator,
) holiday.HolidayService {
	return &HolidayServiceImpl{
		Transactor:  tx,
		holidayRepo: holidayRepo,
		recordRepo:  recordRepo,
		calc:        calc,
		now:         time.Now,
	}
}

func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	existing, err := s.holidayRepo.GetByDate(ctx, date)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if existing != nil {
		return holiday.HolidayResponse{}, holiday.ErrHolidayDateExists
	}

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		Date:   date,
		Name:   req.Name,
		Status: holiday.StatusDraft,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	slog.Info("holiday created", "id", created.ID, "date", req.Date)
	return holiday.NewHolidayResponse(created), nil
}

func (s *HolidayServiceImpl) Get(ctx context.Context, id int64) (holiday.HolidayResponse, error) {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.NewHolidayResponse(h), nil
}

func (s *HolidayServiceImpl) List(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx, year)
	if err != nil {
		return nil, err
	}
	resp := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, holiday.NewHolidayResponse(h))
	}
	return resp, nil
}

func (s *HolidayServiceImpl) Update(ctx context.Context, id int64, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if h.IsFinalized() {
		return holiday.HolidayResponse{}, holiday.ErrHolidayFinalized
	}

	if err := s.holidayRepo.UpdateName(ctx, id, req.Name); err != nil {
		return holiday.HolidayResponse{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes the holiday and its records. Finalized holidays need an admin.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id int64, actor holiday.Actor) error {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if h.IsFinalized() && !actor.IsAdmin {
		return holiday.ErrAdminPrivilegeRequired
	}

	err = s.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.recordRepo.DeleteByHoliday(txCtx, id); err != nil {
			return err
		}
		return s.holidayRepo.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete holiday %d: %w", id, err)
	}

	slog.Info("holiday deleted", "id", id, "date", h.Date.Format(validator.DateLayout), "status", h.Status, "actor", actor.UserID)
	return nil
}

// Process computes the holiday's payment and security rows and swaps them in
// for the previous snapshot in one transaction.
func (s *HolidayServiceImpl) Process(ctx context.Context, id int64) (holiday.ProcessResponse, error) {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return holiday.ProcessResponse{}, err
	}
	if h.IsFinalized() {
		return holiday.ProcessResponse{}, holiday.ErrHolidayFinalized
	}
	day := h.Date.Format(validator.DateLayout)

	paymentRows, err := s.calc.Compute(ctx, report.Query{Kind: report.KindPaymentSheet, Date: h.Date})
	if err != nil {
		return holiday.ProcessResponse{}, fmt.Errorf("process holiday %s: payment sheet: %w", day, err)
	}
	securityRows, err := s.calc.Compute(ctx, report.Query{Kind: report.KindSecurityPayment, Date: h.Date})
	if err != nil {
		return holiday.ProcessResponse{}, fmt.Errorf("process holiday %s: security payment: %w", day, err)
	}

	records := make([]holiday.DutyRecord, 0, len(paymentRows)+len(securityRows))
	for _, row := range paymentRows {
		records = append(records, holiday.NewDutyRecord(id, holiday.RecordPayment, row))
	}
	for _, row := range securityRows {
		records = append(records, holiday.NewDutyRecord(id, holiday.RecordSecurity, row))
	}

	err = s.WithinTransaction(ctx, func(txCtx context.Context) error {
		locked, err := s.holidayRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if locked.IsFinalized() {
			return holiday.ErrHolidayFinalized
		}
		if err := s.recordRepo.DeleteByHoliday(txCtx, id); err != nil {
			return err
		}
		if _, err := s.recordRepo.BulkInsert(txCtx, records); err != nil {
			return err
		}
		return s.holidayRepo.MarkProcessed(txCtx, id, s.now())
	})
	if err != nil {
		return holiday.ProcessResponse{}, fmt.Errorf("process holiday %s: %w", day, err)
	}

	slog.Info("holiday processed", "id", id, "date", day, "payment_rows", len(paymentRows), "security_rows", len(securityRows))

	processed, err := s.Get(ctx, id)
	if err != nil {
		return holiday.ProcessResponse{}, err
	}
	return holiday.ProcessResponse{
		Holiday:       processed,
		RecordCount:   len(records),
		PaymentRows:   len(paymentRows),
		SecurityRows:  len(securityRows),
		PaymentTotal:  holiday.Total(paymentRows),
		SecurityTotal: holiday.Total(securityRows),
	}, nil
}

func (s *HolidayServiceImpl) Finalize(ctx context.Context, id int64) (holiday.HolidayResponse, error) {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if h.IsFinalized() {
		return holiday.HolidayResponse{}, holiday.ErrHolidayFinalized
	}
	if !h.IsProcessed() {
		return holiday.HolidayResponse{}, holiday.ErrHolidayNotProcessed
	}

	if err := s.holidayRepo.UpdateStatus(ctx, id, holiday.StatusFinalized); err != nil {
		return holiday.HolidayResponse{}, err
	}

	slog.Info("holiday finalized", "id", id, "date", h.Date.Format(validator.DateLayout))
	return s.Get(ctx, id)
}

// Reopen returns a finalized holiday to draft so it can be reprocessed.
func (s *HolidayServiceImpl) Reopen(ctx context.Context, id int64, actor holiday.Actor) (holiday.HolidayResponse, error) {
	if !actor.IsAdmin {
		return holiday.HolidayResponse{}, holiday.ErrAdminPrivilegeRequired
	}

	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if !h.IsFinalized() {
		return holiday.HolidayResponse{}, holiday.ErrHolidayNotFinalized
	}

	if err := s.holidayRepo.UpdateStatus(ctx, id, holiday.StatusDraft); err != nil {
		return holiday.HolidayResponse{}, err
	}

	slog.Warn("holiday reopened", "id", id, "date", h.Date.Format(validator.DateLayout), "actor", actor.UserID)
	return s.Get(ctx, id)
}

// Records reads the snapshot. The filter narrows payment rows only.
func (s *HolidayServiceImpl) Records(ctx context.Context, id int64, filter employee.Filter) (holiday.RecordsResponse, error) {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return holiday.RecordsResponse{}, err
	}
	if !h.IsProcessed() {
		return holiday.RecordsResponse{}, holiday.ErrHolidayNotProcessed
	}

	records, err := s.recordRepo.ListSnapshot(ctx, id, filter)
	if err != nil {
		return holiday.RecordsResponse{}, err
	}
	var paymentRecords, securityRecords []holiday.DutyRecord
	for _, rec := range records {
		if rec.Kind == holiday.RecordSecurity {
			securityRecords = append(securityRecords, rec)
		} else {
			paymentRecords = append(paymentRecords, rec)
		}
	}
	payment := holiday.Rows(paymentRecords)
	security := holiday.Rows(securityRecords)

	return holiday.RecordsResponse{
		Holiday:       holiday.NewHolidayResponse(h),
		Payment:       payment,
		Security:      security,
		PaymentTotal:  holiday.Total(payment),
		SecurityTotal: holiday.Total(security),
	}, nil
}

// PaymentSource is the single live-or-snapshot decision for a date.
func (s *HolidayServiceImpl) PaymentSource(ctx context.Context, date time.Time) (report.Source, error) {
	h, err := s.holidayRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if h != nil && h.IsProcessed() {
		return newSnapshotSource(s.recordRepo, *h), nil
	}
	return reportService.NewLiveSource(s.calc, date), nil
}
