package http

import (
	"encoding/json"
	"net/http"

	"ecorent-backend/internal/domain"
	"ecorent-backend/internal/service"

	"github.com/shopspring/decimal"
)

type EquipmentHandler struct {
	equipments service.EquipmentService
}

func NewEquipmentHandler(equipments service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipments: equipments}
}

type equipmentRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	InternalCode string          `json:"internal_code"`
	PricePerDay  decimal.Decimal `json:"price_per_day"`
}

type equipmentStatusRequest struct {
	Status string `json:"status"`
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	equipment, err := h.equipments.Register(r.Context(), req.Name, req.Category, req.InternalCode, req.PricePerDay)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEquipmentResponse(equipment))
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, "invalid equipment id")
		return
	}

	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	equipment, err := h.equipments.Update(r.Context(), id, req.Name, req.Category, req.PricePerDay)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEquipmentResponse(equipment))
}

func (h *EquipmentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, "invalid equipment id")
		return
	}

	var req equipmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	equipment, err := h.equipments.ChangeStatus(r.Context(), id, domain.EquipmentStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEquipmentResponse(equipment))
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, "invalid equipment id")
		return
	}

	if err := h.equipments.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	equipments, err := h.equipments.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]equipmentResponse, 0, len(equipments))
	for i := range equipments {
		out = append(out, toEquipmentResponse(&equipments[i]))
	}
	writeJSON(w, http.StatusOK, out)
}
