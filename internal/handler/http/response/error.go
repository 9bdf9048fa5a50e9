package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/holiday"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/domain/report"
	"github.com/manel-hris/attendance-payroll/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee directory
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Punch repository
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "Punch not found")
	case errors.Is(err, punch.ErrPunchNotManual):
		Forbidden(w, err.Error())
	case errors.Is(err, punch.ErrSyncAlreadyRunning):
		Conflict(w, "Punch sync is already running")
	case errors.Is(err, punch.ErrUpstreamNotWired):
		ServiceUnavailable(w, "Upstream punch source is not configured")
	case errors.Is(err, punch.ErrMalformedBatch):
		BadGateway(w, err.Error())

	// Holidays
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayDateExists):
		Conflict(w, "A holiday already exists for this date")
	case errors.Is(err, holiday.ErrHolidayFinalized):
		Conflict(w, "Holiday is finalized")
	case errors.Is(err, holiday.ErrHolidayNotProcessed):
		Conflict(w, "Holiday has not been processed")
	case errors.Is(err, holiday.ErrHolidayNotFinalized):
		Conflict(w, "Holiday is not finalized")
	case errors.Is(err, holiday.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Reports
	case errors.Is(err, report.ErrUnknownKind):
		BadRequest(w, "Unknown report kind", nil)

	default:
		slog.Error("unhandled request error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
