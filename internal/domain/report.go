package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type IncomeReport struct {
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	PaymentCount int64           `json:"payment_count"`
}

type EquipmentRentalCount struct {
	Equipment   Equipment `json:"equipment"`
	RentalCount int64     `json:"rental_count"`
}

type ClientRentalCount struct {
	Client      Client `json:"client"`
	RentalCount int64  `json:"rental_count"`
}
