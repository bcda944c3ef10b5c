package handlers

import (
	"net/http"

	"github.com/ukydev/garage/internal/apperror"
	"github.com/ukydev/garage/internal/models"
)

// ReportHandler serves /api/reports and /api/dashboard
type ReportHandler struct {
	reports ReportService
}

func NewReportHandler(reports ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func dateRange(r *http.Request) (models.DateRange, error) {
	q := r.URL.Query()
	dr, err := models.ParseDateRange(q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		return dr, apperror.Validation(err.Error())
	}
	return dr, nil
}

func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	dr, err := dateRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := h.reports.Revenue(r.Context(), dr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Performance(w http.ResponseWriter, r *http.Request) {
	dr, err := dateRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := h.reports.Performance(r.Context(), dr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Inventory(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) CustomerHistory(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.CustomerHistory(r.Context(), r.URL.Query().Get("carId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
