package service

import (
	"context"
	"time"

	"ecorent-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// ClientService is the client registry: clients keyed by a unique DNI.
type ClientService interface {
	Register(ctx context.Context, name, dni, phone, email string) (*domain.Client, error)
	Update(ctx context.Context, id int64, name, phone, email string) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
	FindByDNI(ctx context.Context, dni string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
}

// EquipmentService is the inventory ledger: equipment records and their
// availability status.
type EquipmentService interface {
	Register(ctx context.Context, name, category, internalCode string, pricePerDay decimal.Decimal) (*domain.Equipment, error)
	Update(ctx context.Context, id int64, name, category string, pricePerDay decimal.Decimal) (*domain.Equipment, error)
	ChangeStatus(ctx context.Context, id int64, status domain.EquipmentStatus) (*domain.Equipment, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
}

// RentalService is the booking calendar: it enforces non-overlap per
// equipment and owns rental lifecycle transitions.
type RentalService interface {
	Create(ctx context.Context, clientDNI string, equipmentID int64, startDate, endDate time.Time) (*domain.Rental, error)
	ListByClient(ctx context.Context, dni string) ([]domain.Rental, error)
	MarkReturned(ctx context.Context, rentalID int64) (*domain.Rental, error)
	Cancel(ctx context.Context, rentalID int64) (*domain.Rental, error)
}

// PaymentService is the settlement ledger: it applies payments to rentals
// and derives the rental payment status.
type PaymentService interface {
	Register(ctx context.Context, rentalID int64, amount decimal.Decimal) (*domain.Payment, domain.PaymentStatus, error)
	ListForRental(ctx context.Context, rentalID int64) ([]domain.Payment, error)
}

// ReportService aggregates read-only views over the other components.
type ReportService interface {
	IncomeBetween(ctx context.Context, start, end time.Time) (*domain.IncomeReport, error)
	TopEquipments(ctx context.Context, limit int) ([]domain.EquipmentRentalCount, error)
	TopClients(ctx context.Context, limit int) ([]domain.ClientRentalCount, error)
}
