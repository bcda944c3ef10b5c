package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/garage/internal/models"
)

// ServiceRecordHandler serves /api/service-records
type ServiceRecordHandler struct {
	records RecordService
}

func NewServiceRecordHandler(records RecordService) *ServiceRecordHandler {
	return &ServiceRecordHandler{records: records}
}

func (h *ServiceRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.records.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *ServiceRecordHandler) ListByCar(w http.ResponseWriter, r *http.Request) {
	records, err := h.records.ListByCar(r.Context(), chi.URLParam(r, "carId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *ServiceRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.records.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *ServiceRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	record, err := h.records.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *ServiceRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateServiceRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	record, err := h.records.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *ServiceRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.records.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Service record removed")
}
