package punch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/domain/report"
	"github.com/manel-hris/attendance-payroll/internal/pkg/database"
	"github.com/manel-hris/attendance-payroll/internal/pkg/validator"
)

type PunchServiceImpl struct {
	database.Transactor
	punchRepo    punch.PunchRepository
	employeeRepo employee.EmployeeRepository
}

func NewPunchService(tx database.Transactor, punchRepo punch.PunchRepository, employeeRepo employee.EmployeeRepository) punch.PunchService {
	return &PunchServiceImpl{
		Transactor:   tx,
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
	}
}

// AttendanceForDate implements punch.AttendanceReader.
func (s *PunchServiceImpl) AttendanceForDate(ctx context.Context, date time.Time, employeeCodes []string) (map[string]punch.Attendance, error) {
	punches, err := s.punchRepo.ListByDate(ctx, date, employeeCodes)
	if err != nil {
		return nil, err
	}
	return punch.Classify(punches), nil
}

// AddManualPunch keeps at most one manual punch per employee, day and
// session: an existing one is moved, otherwise a new one is created.
func (s *PunchServiceImpl) AddManualPunch(ctx context.Context, req punch.ManualPunchRequest) (punch.ManualPunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.ManualPunchResponse{}, err
	}
	code := strings.TrimSpace(req.EmployeeCode)
	at := req.PunchTime()
	session := punch.SessionOf(at)

	if _, err := s.employeeRepo.GetByID(ctx, code); err != nil {
		return punch.ManualPunchResponse{}, err
	}

	var (
		saved  punch.Punch
		result punch.UpsertResult
	)
	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		// a row lock cannot cover a slot that has no row yet
		if err := s.punchRepo.LockManualSlot(txCtx, code, at, session); err != nil {
			return err
		}
		existing, err := s.punchRepo.FindManual(txCtx, code, at, session)
		if err != nil {
			return err
		}

		if existing != nil {
			saved, err = s.punchRepo.UpdatePunchTime(txCtx, existing.ID, at)
			result = punch.UpsertUpdated
		} else {
			saved, err = s.punchRepo.CreateManual(txCtx, code, at)
			result = punch.UpsertCreated
		}
		return err
	})
	if err != nil {
		return punch.ManualPunchResponse{}, fmt.Errorf("failed to save manual punch: %w", err)
	}

	slog.Info("manual punch saved", "emp_code", code, "punch_time", at, "session", session, "result", result)
	return punch.ManualPunchResponse{
		Punch:  punch.NewPunchResponse(saved),
		Result: result,
	}, nil
}

func (s *PunchServiceImpl) DeleteManualPunch(ctx context.Context, id int64) error {
	p, err := s.punchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsManual {
		return punch.ErrPunchNotManual
	}

	if err := s.punchRepo.DeleteManual(ctx, id); err != nil {
		return err
	}

	slog.Info("manual punch deleted", "id", id, "emp_code", strings.TrimSpace(p.EmployeeCode))
	return nil
}

func (s *PunchServiceImpl) AttendanceStatus(ctx context.Context, req punch.AttendanceStatusRequest) (punch.AttendanceStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.AttendanceStatusResponse{}, err
	}
	code := strings.TrimSpace(req.EmployeeCode)
	date, _ := validator.IsValidDate(req.Date)

	if _, err := s.employeeRepo.GetByID(ctx, code); err != nil {
		return punch.AttendanceStatusResponse{}, err
	}

	punches, err := s.punchRepo.ListForEmployeeDate(ctx, code, date)
	if err != nil {
		return punch.AttendanceStatusResponse{}, err
	}
	att := punch.Classify(punches)[code]

	resp := punch.AttendanceStatusResponse{
		EmployeeCode: code,
		Date:         req.Date,
		InTime:       clock(att.InTime),
		OutTime:      clock(att.OutTime),
		Punches:      make([]punch.PunchResponse, 0, len(punches)),
	}
	for _, p := range punches {
		resp.Punches = append(resp.Punches, punch.NewPunchResponse(p))
	}
	return resp, nil
}

func clock(t *time.Time) string {
	if t == nil {
		return report.MissingTime
	}
	return t.Format(validator.ClockLayout)
}
