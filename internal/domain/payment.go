package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is immutable once created. Corrections are modeled as new
// compensating entries, never as edits.
type Payment struct {
	ID          int64           `json:"id"`
	RentalID    int64           `json:"rental_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	// Rental payment status as of this payment being applied.
	StatusSnapshot PaymentStatus `json:"status_snapshot"`
	CreatedOn      time.Time     `json:"created_on"`
}
