package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusReturned  RentalStatus = "RETURNED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "PENDING"
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentStatusPaid          PaymentStatus = "PAID"
)

type Rental struct {
	ID          int64 `json:"id"`
	ClientID    int64 `json:"client_id"`
	EquipmentID int64 `json:"equipment_id"`
	// Joined fields, populated on list queries only.
	ClientName    string          `json:"client_name,omitempty"`
	ClientDNI     string          `json:"client_dni,omitempty"`
	EquipmentName string          `json:"equipment_name,omitempty"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Returned      bool            `json:"returned"`
	Status        RentalStatus    `json:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	CreatedOn     time.Time       `json:"created_on"`
	UpdatedOn     time.Time       `json:"updated_on"`
}

// Active reports whether the rental still occupies its equipment's calendar.
func (r *Rental) Active() bool {
	return r.Status == RentalStatusActive
}
