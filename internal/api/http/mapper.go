package http

import (
	"ecorent-backend/internal/domain"
	"ecorent-backend/internal/pricing"

	"github.com/shopspring/decimal"
)

// Response DTOs. Dates cross the wire as yyyy-mm-dd strings; monetary
// amounts as decimal strings so no precision is lost to float rounding.

type clientResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	DNI   string `json:"dni"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type equipmentResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	InternalCode string          `json:"internal_code"`
	PricePerDay  decimal.Decimal `json:"price_per_day"`
	Status       string          `json:"status"`
}

type rentalResponse struct {
	ID            int64           `json:"id"`
	ClientDNI     string          `json:"client_dni,omitempty"`
	ClientName    string          `json:"client_name,omitempty"`
	EquipmentID   int64           `json:"equipment_id"`
	EquipmentName string          `json:"equipment_name,omitempty"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Returned      bool            `json:"returned"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
}

type paymentResponse struct {
	ID            int64           `json:"id"`
	RentalID      int64           `json:"rental_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date"`
	PaymentStatus string          `json:"payment_status"`
}

type incomeReportResponse struct {
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	PaymentCount int64           `json:"payment_count"`
}

type topEquipmentResponse struct {
	equipmentResponse
	RentalCount int64 `json:"rental_count"`
}

type topClientResponse struct {
	clientResponse
	RentalCount int64 `json:"rental_count"`
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{ID: c.ID, Name: c.Name, DNI: c.DNI, Phone: c.Phone, Email: c.Email}
}

func toEquipmentResponse(e *domain.Equipment) equipmentResponse {
	return equipmentResponse{
		ID:           e.ID,
		Name:         e.Name,
		Category:     e.Category,
		InternalCode: e.InternalCode,
		PricePerDay:  e.PricePerDay,
		Status:       string(e.Status),
	}
}

func toRentalResponse(rt *domain.Rental) rentalResponse {
	return rentalResponse{
		ID:            rt.ID,
		ClientDNI:     rt.ClientDNI,
		ClientName:    rt.ClientName,
		EquipmentID:   rt.EquipmentID,
		EquipmentName: rt.EquipmentName,
		StartDate:     pricing.FormatDate(rt.StartDate),
		EndDate:       pricing.FormatDate(rt.EndDate),
		TotalAmount:   rt.TotalAmount,
		Returned:      rt.Returned,
		Status:        string(rt.Status),
		PaymentStatus: string(rt.PaymentStatus),
	}
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		RentalID:      p.RentalID,
		Amount:        p.Amount,
		PaymentDate:   pricing.FormatDate(p.PaymentDate),
		PaymentStatus: string(p.StatusSnapshot),
	}
}

func toRentalResponses(rentals []domain.Rental) []rentalResponse {
	out := make([]rentalResponse, 0, len(rentals))
	for i := range rentals {
		out = append(out, toRentalResponse(&rentals[i]))
	}
	return out
}

func toPaymentResponses(payments []domain.Payment) []paymentResponse {
	out := make([]paymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, toPaymentResponse(&payments[i]))
	}
	return out
}
