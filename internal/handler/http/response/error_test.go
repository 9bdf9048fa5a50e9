package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/holiday"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", validator.ValidationErrors{{Field: "date", Message: "required"}}, http.StatusUnprocessableEntity},
		{"employee not found", employee.ErrEmployeeNotFound, http.StatusNotFound},
		{"wrapped holiday not found", fmt.Errorf("get holiday 3: %w", holiday.ErrHolidayNotFound), http.StatusNotFound},
		{"date exists", holiday.ErrHolidayDateExists, http.StatusConflict},
		{"finalized", holiday.ErrHolidayFinalized, http.StatusConflict},
		{"admin", holiday.ErrAdminPrivilegeRequired, http.StatusForbidden},
		{"not manual", punch.ErrPunchNotManual, http.StatusForbidden},
		{"sync running", punch.ErrSyncAlreadyRunning, http.StatusConflict},
		{"no upstream", punch.ErrUpstreamNotWired, http.StatusServiceUnavailable},
		{"malformed batch", punch.ErrMalformedBatch, http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
