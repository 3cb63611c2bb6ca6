package http

import (
	"encoding/json"
	"net/http"

	"ecorent-backend/internal/pricing"
	"ecorent-backend/internal/service"
)

type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type rentalRequest struct {
	ClientDNI   string `json:"client_dni"`
	EquipmentID int64  `json:"equipment_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req rentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	start, err := pricing.ParseDate(req.StartDate)
	if err != nil {
		writeBadRequest(w, r, "invalid start_date: "+err.Error())
		return
	}
	end, err := pricing.ParseDate(req.EndDate)
	if err != nil {
		writeBadRequest(w, r, "invalid end_date: "+err.Error())
		return
	}

	rental, err := h.rentals.Create(r.Context(), req.ClientDNI, req.EquipmentID, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRentalResponse(rental))
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, "invalid rental id")
		return
	}

	rental, err := h.rentals.MarkReturned(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRentalResponse(rental))
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, "invalid rental id")
		return
	}

	rental, err := h.rentals.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRentalResponse(rental))
}
