package holiday

import (
	"strings"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/report"
	"github.com/manel-hris/attendance-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const timestampLayout = "2006-01-02 15:04:05"

// ========================================
// HOLIDAY DTOs
// ========================================

type CreateHolidayRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateHolidayRequest struct {
	Name string `json:"name"`
}

func (r *UpdateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Status      Status  `json:"status"`
	ProcessedAt *string `json:"processed_at"`
	RecordCount int     `json:"record_count"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	resp := HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format(validator.DateLayout),
		Name:        h.Name,
		Status:      h.Status,
		RecordCount: h.RecordCount,
		CreatedAt:   h.CreatedAt.Format(timestampLayout),
		UpdatedAt:   h.UpdatedAt.Format(timestampLayout),
	}
	if h.ProcessedAt != nil {
		s := h.ProcessedAt.Format(timestampLayout)
		resp.ProcessedAt = &s
	}
	return resp
}

type ProcessResponse struct {
	Holiday       HolidayResponse `json:"holiday"`
	RecordCount   int             `json:"record_count"`
	PaymentRows   int             `json:"payment_rows"`
	SecurityRows  int             `json:"security_rows"`
	PaymentTotal  decimal.Decimal `json:"payment_total"`
	SecurityTotal decimal.Decimal `json:"security_total"`
}

// ========================================
// RECORD DTOs
// ========================================

type RecordsResponse struct {
	Holiday       HolidayResponse `json:"holiday"`
	Payment       []report.Row    `json:"payment"`
	Security      []report.Row    `json:"security"`
	PaymentTotal  decimal.Decimal `json:"payment_total"`
	SecurityTotal decimal.Decimal `json:"security_total"`
}

// NewDutyRecord freezes a computed row. The serial is not stored; it is
// reassigned on every read.
func NewDutyRecord(holidayID int64, kind RecordKind, row report.Row) DutyRecord {
	return DutyRecord{
		HolidayID:   holidayID,
		Kind:        kind,
		EmployeeID:  strings.TrimSpace(row.ID),
		Name:        row.Name,
		Designation: row.Designation,
		Section:     row.Section,
		SubSection:  row.SubSection,
		Category:    row.Category,
		Gross:       row.Gross,
		Basic:       row.Basic,
		InTime:      row.InTime,
		OutTime:     row.OutTime,
		WorkHours:   row.Hour,
		OTHours:     row.OT,
		OTRate:      row.OTRate,
		Amount:      row.Amount,
		IsManual:    row.IsManual,
		Remarks:     row.Remarks,
	}
}

// Row renders the record with serial sl.
func (r DutyRecord) Row(sl int) report.Row {
	return report.Row{
		SL:          sl,
		ID:          r.EmployeeID,
		Name:        r.Name,
		Designation: r.Designation,
		Section:     r.Section,
		SubSection:  r.SubSection,
		Category:    r.Category,
		Gross:       r.Gross,
		Basic:       r.Basic,
		InTime:      r.InTime,
		OutTime:     r.OutTime,
		Hour:        r.WorkHours,
		OT:          r.OTHours,
		OTRate:      r.OTRate,
		Amount:      r.Amount,
		IsManual:    r.IsManual,
		Remarks:     r.Remarks,
	}
}

// Rows renders records with serials renumbered from 1.
func Rows(records []DutyRecord) []report.Row {
	rows := make([]report.Row, 0, len(records))
	for i, r := range records {
		rows = append(rows, r.Row(i+1))
	}
	return rows
}

func Total(rows []report.Row) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	return total
}

// ParseYear reads an optional ?year= value; empty means all years.
func ParseYear(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	t, err := time.Parse("2006", s)
	if err != nil {
		return 0, false
	}
	return t.Year(), true
}
