package http

import (
	"net/http"
	"strconv"

	"ecorent-backend/internal/pricing"
	"ecorent-backend/internal/service"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Income(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")
	if startParam == "" || endParam == "" {
		writeBadRequest(w, r, "start and end query parameters are required")
		return
	}

	start, err := pricing.ParseDate(startParam)
	if err != nil {
		writeBadRequest(w, r, "invalid start: "+err.Error())
		return
	}
	end, err := pricing.ParseDate(endParam)
	if err != nil {
		writeBadRequest(w, r, "invalid end: "+err.Error())
		return
	}

	report, err := h.reports.IncomeBetween(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, incomeReportResponse{
		StartDate:    pricing.FormatDate(report.StartDate),
		EndDate:      pricing.FormatDate(report.EndDate),
		TotalIncome:  report.TotalIncome,
		PaymentCount: report.PaymentCount,
	})
}

func (h *ReportHandler) TopEquipments(w http.ResponseWriter, r *http.Request) {
	results, err := h.reports.TopEquipments(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]topEquipmentResponse, 0, len(results))
	for i := range results {
		out = append(out, topEquipmentResponse{
			equipmentResponse: toEquipmentResponse(&results[i].Equipment),
			RentalCount:       results[i].RentalCount,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReportHandler) TopClients(w http.ResponseWriter, r *http.Request) {
	results, err := h.reports.TopClients(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]topClientResponse, 0, len(results))
	for i := range results {
		out = append(out, topClientResponse{
			clientResponse: toClientResponse(&results[i].Client),
			RentalCount:    results[i].RentalCount,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// queryLimit parses the optional limit parameter; 0 lets the service
// apply its default.
func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
