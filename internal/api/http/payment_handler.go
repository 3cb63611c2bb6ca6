package http

import (
	"encoding/json"
	"net/http"

	"ecorent-backend/internal/service"

	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type paymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "rentalId")
	if err != nil {
		writeBadRequest(w, r, "invalid rental id")
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	payment, status, err := h.payments.Register(r.Context(), rentalID, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := toPaymentResponse(payment)
	resp.PaymentStatus = string(status)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "rentalId")
	if err != nil {
		writeBadRequest(w, r, "invalid rental id")
		return
	}

	payments, err := h.payments.ListForRental(r.Context(), rentalID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponses(payments))
}
