package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/handler/http/response"
)

type AttendanceHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	AddManual(w http.ResponseWriter, r *http.Request)
	DeleteManual(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	punchService punch.PunchService
}

func NewAttendanceHandler(punchService punch.PunchService) AttendanceHandler {
	return &attendanceHandlerImpl{
		punchService: punchService,
	}
}

// Status handles GET /attendance/status?emp_code=&date=
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	req := punch.AttendanceStatusRequest{
		EmployeeCode: r.URL.Query().Get("emp_code"),
		Date:         r.URL.Query().Get("date"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.punchService.AttendanceStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AddManual handles POST /attendance/manual
func (h *attendanceHandlerImpl) AddManual(w http.ResponseWriter, r *http.Request) {
	var req punch.ManualPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.punchService.AddManualPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Result == punch.UpsertCreated {
		response.Created(w, "Manual punch added", result)
		return
	}
	response.SuccessWithMessage(w, "Manual punch updated", result)
}

// DeleteManual handles DELETE /attendance/manual/{id}
func (h *attendanceHandlerImpl) DeleteManual(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid punch id", nil)
		return
	}

	if err := h.punchService.DeleteManualPunch(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manual punch deleted", nil)
}
