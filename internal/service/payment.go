package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ecorent-backend/internal/apperr"
	"ecorent-backend/internal/domain"
	"ecorent-backend/internal/pricing"
	"ecorent-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	rentalRepo  repository.RentalRepository
	// Serializes the outstanding-balance computation per rental.
	rentalLocks *keyedLocks
	now         func() time.Time
}

func NewPaymentService(paymentRepo repository.PaymentRepository, rentalRepo repository.RentalRepository) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		rentalRepo:  rentalRepo,
		rentalLocks: newKeyedLocks(),
		now:         time.Now,
	}
}

// Register applies a payment against a rental's outstanding balance and
// returns the created payment with the rental's recomputed status.
func (s *paymentService) Register(ctx context.Context, rentalID int64, amount decimal.Decimal) (*domain.Payment, domain.PaymentStatus, error) {
	if !amount.IsPositive() {
		return nil, "", apperr.Validation("INVALID_AMOUNT", "payment amount must be greater than zero")
	}
	if !amount.Equal(amount.Round(2)) {
		return nil, "", apperr.Validation("INVALID_AMOUNT", "payment amount must have at most two decimal places")
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", apperr.NotFound("RENTAL_NOT_FOUND", "rental %d not found", rentalID)
		}
		return nil, "", err
	}
	if rental.Status == domain.RentalStatusCancelled {
		return nil, "", apperr.Conflict("RENTAL_CANCELLED", "rental %d is cancelled and cannot receive payments", rentalID)
	}

	unlock := s.rentalLocks.Lock(rentalID)
	defer unlock()

	paid, err := s.paymentRepo.SumByRental(ctx, rentalID)
	if err != nil {
		return nil, "", err
	}

	outstanding := rental.TotalAmount.Sub(paid)
	if amount.GreaterThan(outstanding) {
		return nil, "", apperr.Validation("AMOUNT_EXCEEDS_BALANCE", "payment of %s exceeds outstanding balance %s", amount, outstanding)
	}

	status := derivePaymentStatus(paid.Add(amount), rental.TotalAmount)
	payment := &domain.Payment{
		RentalID:       rentalID,
		Amount:         amount,
		PaymentDate:    pricing.DateOf(s.now()),
		StatusSnapshot: status,
	}
	if err := s.paymentRepo.CreateWithStatus(ctx, payment, status); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, "", apperr.Conflict("RENTAL_CANCELLED", "rental %d is cancelled and cannot receive payments", rentalID)
		}
		return nil, "", err
	}
	return payment, status, nil
}

func (s *paymentService) ListForRental(ctx context.Context, rentalID int64) ([]domain.Payment, error) {
	if _, err := s.rentalRepo.GetByID(ctx, rentalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("RENTAL_NOT_FOUND", "rental %d not found", rentalID)
		}
		return nil, err
	}
	return s.paymentRepo.ListByRental(ctx, rentalID)
}

// derivePaymentStatus recomputes the rental payment status from totals
// rather than mutating stored flags, so the status can never diverge from
// the payments that back it.
func derivePaymentStatus(paid, total decimal.Decimal) domain.PaymentStatus {
	switch {
	case paid.IsZero():
		return domain.PaymentStatusPending
	case paid.LessThan(total):
		return domain.PaymentStatusPartiallyPaid
	default:
		return domain.PaymentStatusPaid
	}
}
