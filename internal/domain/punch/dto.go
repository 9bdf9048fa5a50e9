package punch

import (
	"strings"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/pkg/validator"
)

const timestampLayout = "2006-01-02 15:04:05"

// ========================================
// MANUAL PUNCH DTOs
// ========================================

type ManualPunchRequest struct {
	EmployeeCode string `json:"emp_code"`
	Date         string `json:"date"` // YYYY-MM-DD
	Time         string `json:"time"` // HH:MM
}

func (r *ManualPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "emp_code",
			Message: "emp_code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "emp_code",
			Message: "emp_code must be numeric",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidClock(r.Time); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PunchTime combines Date and Time. Call after Validate.
func (r *ManualPunchRequest) PunchTime() time.Time {
	d, _ := validator.IsValidDate(r.Date)
	c, _ := validator.IsValidClock(r.Time)
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC)
}

type PunchResponse struct {
	ID           int64   `json:"id"`
	EmployeeCode string  `json:"emp_code"`
	PunchTime    string  `json:"punch_time"`
	Session      Session `json:"session"`
	IsManual     bool    `json:"is_manual"`
	SyncID       *int64  `json:"sync_id,omitempty"`
}

func NewPunchResponse(p Punch) PunchResponse {
	return PunchResponse{
		ID:           p.ID,
		EmployeeCode: strings.TrimSpace(p.EmployeeCode),
		PunchTime:    p.PunchTime.Format(timestampLayout),
		Session:      SessionOf(p.PunchTime),
		IsManual:     p.IsManual,
		SyncID:       p.SyncID,
	}
}

type ManualPunchResponse struct {
	Punch  PunchResponse `json:"punch"`
	Result UpsertResult  `json:"result"`
}

// ========================================
// ATTENDANCE STATUS DTOs
// ========================================

type AttendanceStatusRequest struct {
	EmployeeCode string `json:"emp_code"`
	Date         string `json:"date"`
}

func (r *AttendanceStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "emp_code",
			Message: "emp_code is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceStatusResponse struct {
	EmployeeCode string          `json:"emp_code"`
	Date         string          `json:"date"`
	InTime       string          `json:"in_time"`
	OutTime      string          `json:"out_time"`
	Punches      []PunchResponse `json:"punches"`
}

// ========================================
// SYNC DTOs
// ========================================

type SyncResult struct {
	RunID     string `json:"run_id"`
	Synced    int    `json:"synced"`
	Batches   int    `json:"batches"`
	Watermark int64  `json:"watermark"`
}
