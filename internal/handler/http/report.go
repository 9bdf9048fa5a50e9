package http

import (
	"encoding/json"
	"net/http"

	"github.com/manel-hris/attendance-payroll/internal/domain/holiday"
	"github.com/manel-hris/attendance-payroll/internal/domain/report"
	"github.com/manel-hris/attendance-payroll/internal/handler/http/response"
)

type ReportHandler interface {
	// Filter choices for the report screens
	Lookups(w http.ResponseWriter, r *http.Request)

	// Payment sheet, served from a holiday snapshot when one exists
	PaymentSheet(w http.ResponseWriter, r *http.Request)

	PresentStatus(w http.ResponseWriter, r *http.Request)

	NightBill(w http.ResponseWriter, r *http.Request)

	// Security payment, served from a holiday snapshot when one exists
	SecurityPayment(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService  report.ReportService
	holidayService holiday.HolidayService
}

func NewReportHandler(reportService report.ReportService, holidayService holiday.HolidayService) ReportHandler {
	return &reportHandlerImpl{
		reportService:  reportService,
		holidayService: holidayService,
	}
}

// Lookups handles GET /reports/lookups?section=
func (h *reportHandlerImpl) Lookups(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Lookups(r.Context(), r.URL.Query().Get("section"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PaymentSheet handles POST /reports/payment-sheet
func (h *reportHandlerImpl) PaymentSheet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeReportRequest(w, r)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.reportService.ValidateFilter(ctx, req.Filter()); err != nil {
		response.HandleError(w, err)
		return
	}

	source, err := h.holidayService.PaymentSource(ctx, req.ForDate())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := source.PaymentSheet(ctx, req.Filter())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := report.NewReportResponse(req, report.KindPaymentSheet, source.Kind(), rows)
	result.HolidayName = source.HolidayName()
	response.Success(w, result)
}

// PresentStatus handles POST /reports/present-status
func (h *reportHandlerImpl) PresentStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeReportRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.ComputePresentStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// NightBill handles POST /reports/night-bill
func (h *reportHandlerImpl) NightBill(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeReportRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.ComputeNightBill(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SecurityPayment handles POST /reports/security-payment
func (h *reportHandlerImpl) SecurityPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeReportRequest(w, r)
	if !ok {
		return
	}
	// organizational filters do not apply to the security sheet
	req = report.ReportRequest{Date: req.Date}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	source, err := h.holidayService.PaymentSource(ctx, req.ForDate())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := source.SecurityPayment(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := report.NewReportResponse(req, report.KindSecurityPayment, source.Kind(), rows)
	result.HolidayName = source.HolidayName()
	response.Success(w, result)
}

func decodeReportRequest(w http.ResponseWriter, r *http.Request) (report.ReportRequest, bool) {
	var req report.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return req, false
	}
	return req, true
}
