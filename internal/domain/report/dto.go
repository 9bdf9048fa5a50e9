package report

import (
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// REPORT REQUEST
// ========================================

type ReportRequest struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Section    string `json:"section"`
	SubSection string `json:"sub_section"`
	Category   string `json:"category"`
	Status     string `json:"status"` // present-status only
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required (YYYY-MM-DD)",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Status != "" && !validator.IsInSlice(r.Status, StatusFilters) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: all, absent, incomplete, complete",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ForDate returns the parsed date. Call after Validate.
func (r *ReportRequest) ForDate() time.Time {
	d, _ := validator.IsValidDate(r.Date)
	return d
}

func (r *ReportRequest) Filter() employee.Filter {
	return employee.Filter{
		Section:    r.Section,
		SubSection: r.SubSection,
		Category:   r.Category,
	}
}

func (r *ReportRequest) StatusFilter() StatusFilter {
	if r.Status == "" {
		return StatusAll
	}
	return StatusFilter(r.Status)
}

// ========================================
// REPORT RESPONSE
// ========================================

type ReportResponse struct {
	Date        string          `json:"date"`
	Kind        Kind            `json:"kind"`
	Source      SourceKind      `json:"source"`
	HolidayName string          `json:"holiday_name,omitempty"`
	Section     string          `json:"section,omitempty"`
	SubSection  string          `json:"sub_section,omitempty"`
	Category    string          `json:"category,omitempty"`
	Status      StatusFilter    `json:"status,omitempty"`
	Rows        []Row           `json:"rows"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func NewReportResponse(req ReportRequest, kind Kind, source SourceKind, rows []Row) ReportResponse {
	if rows == nil {
		rows = []Row{}
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	resp := ReportResponse{
		Date:        req.Date,
		Kind:        kind,
		Source:      source,
		Section:     req.Section,
		SubSection:  req.SubSection,
		Category:    req.Category,
		Rows:        rows,
		TotalAmount: total,
	}
	if kind == KindPresentStatus {
		resp.Status = req.StatusFilter()
	}
	return resp
}

// ========================================
// LOOKUPS
// ========================================

type LookupsResponse struct {
	Sections      []string `json:"sections"`
	SubSections   []string `json:"sub_sections"`
	Categories    []string `json:"categories"`
	EmployeeCount int64    `json:"employee_count"`
}
