package repository

import (
	"context"
	"errors"
	"time"

	"ecorent-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// ErrStateConflict reports that a guarded state transition matched no row:
// the row left the required state between the caller's read and the write.
var ErrStateConflict = errors.New("state conflict")

// ErrDuplicate reports a unique constraint violation on insert.
var ErrDuplicate = errors.New("duplicate key")

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByDNI(ctx context.Context, dni string) (*domain.Client, error)
	ExistsByDNI(ctx context.Context, dni string) (bool, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Client, error)
	TopByRentalCount(ctx context.Context, limit int) ([]domain.ClientRentalCount, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, equipment *domain.Equipment) error
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	ExistsByInternalCode(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, equipment *domain.Equipment) error
	UpdateStatus(ctx context.Context, id int64, status domain.EquipmentStatus) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Equipment, error)
	TopByRentalCount(ctx context.Context, limit int) ([]domain.EquipmentRentalCount, error)
}

type RentalRepository interface {
	// CreateAndMarkRented inserts the rental and flips the equipment row to
	// RENTED in a single transaction.
	CreateAndMarkRented(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	// FindOverlapping returns ACTIVE rentals on the equipment whose inclusive
	// date interval intersects [start, end].
	FindOverlapping(ctx context.Context, equipmentID int64, start, end time.Time) ([]domain.Rental, error)
	ListByClientDNI(ctx context.Context, dni string) ([]domain.Rental, error)
	// SetReturned marks the rental RETURNED and, in the same transaction,
	// releases the equipment back to AVAILABLE unless another ACTIVE rental
	// still references it or the equipment was moved to MAINTENANCE. The
	// transition only applies to an ACTIVE row; otherwise ErrStateConflict.
	SetReturned(ctx context.Context, rentalID, equipmentID int64) error
	// SetCancelled is SetReturned's counterpart for CANCELLED; it
	// additionally requires payment_status PENDING at write time.
	SetCancelled(ctx context.Context, rentalID, equipmentID int64) error
	CountActiveByEquipment(ctx context.Context, equipmentID int64) (int64, error)
	CountByEquipment(ctx context.Context, equipmentID int64) (int64, error)
	CountByClient(ctx context.Context, clientID int64) (int64, error)
	// ListOverdue returns ACTIVE rentals whose end date is strictly before asOf.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error)
}

type PaymentRepository interface {
	// CreateWithStatus inserts the payment and updates the rental's derived
	// payment status in a single transaction. The whole transaction fails
	// with ErrStateConflict when the rental is CANCELLED at write time.
	CreateWithStatus(ctx context.Context, payment *domain.Payment, status domain.PaymentStatus) error
	SumByRental(ctx context.Context, rentalID int64) (decimal.Decimal, error)
	ListByRental(ctx context.Context, rentalID int64) ([]domain.Payment, error)
	// SumBetween returns the total and count of payments dated within
	// [start, end] inclusive.
	SumBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, int64, error)
}
