package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/holiday"
	"github.com/manel-hris/attendance-payroll/internal/handler/http/middleware"
	"github.com/manel-hris/attendance-payroll/internal/handler/http/response"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	// Snapshot lifecycle
	Process(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	Reopen(w http.ResponseWriter, r *http.Request)
	Records(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
	}
}

// List handles GET /holidays?year=
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year, ok := holiday.ParseYear(r.URL.Query().Get("year"))
	if !ok {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	result, err := h.holidayService.List(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create handles POST /holidays
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", result)
}

// Get handles GET /holidays/{id}
func (h *holidayHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := holidayID(w, r)
	if !ok {
		return
	}

	result, err := h.holidayService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /holidays/{id}
func (h *holidayHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := holidayID(w, r)
	if !ok {
		return
	}

	var req holiday.UpdateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday updated", result)
}

// Delete handles DELETE /holidays/{id}
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := holidayID(w, r)
	if !ok {
		return
	}

	if err := h.holidayService.Delete(r.Context(), id, actorOf(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}

// Process handles POST /holidays/{id}/process
func (h *holidayHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	id, ok := holidayID(w, r)
	if !ok {
		return
	}

	result, err := h.holidayService.Process(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday processed", result)
}

// Finalize handles POST /holidays/{id}/finalize
func (h *holidayHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := holidayID(w, r)
	if !ok {
		return
	}

	result, err := h.holidayService.Finalize(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday finalized", result)
}

// Reopen handles POST /holidays/{id}/reopen
func (h *holidayHandlerImpl) Reopen(w http.ResponseWriter, r *http.Request) {
	id, ok := holidayID(w, r)
	if !ok {
		return
	}

	result, err := h.holidayService.Reopen(r.Context(), id, actorOf(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday reopened", result)
}

// Records handles GET /holidays/{id}/records?section=&sub_section=&category=
func (h *holidayHandlerImpl) Records(w http.ResponseWriter, r *http.Request) {
	id, ok := holidayID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := employee.Filter{
		Section:    q.Get("section"),
		SubSection: q.Get("sub_section"),
		Category:   q.Get("category"),
	}

	result, err := h.holidayService.Records(r.Context(), id, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func holidayID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "invalid holiday id", nil)
		return 0, false
	}
	return id, true
}

func actorOf(r *http.Request) holiday.Actor {
	userID, isAdmin := middleware.Caller(r.Context())
	return holiday.Actor{UserID: userID, IsAdmin: isAdmin}
}
