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
)

type rentalService struct {
	rentalRepo    repository.RentalRepository
	equipmentRepo repository.EquipmentRepository
	clientRepo    repository.ClientRepository
	// Serializes the overlap-check-then-insert sequence per equipment.
	equipmentLocks *keyedLocks
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	equipmentRepo repository.EquipmentRepository,
	clientRepo repository.ClientRepository,
) RentalService {
	return &rentalService{
		rentalRepo:     rentalRepo,
		equipmentRepo:  equipmentRepo,
		clientRepo:     clientRepo,
		equipmentLocks: newKeyedLocks(),
	}
}

// Create books equipment for a client over an inclusive date range. The
// overlap check and the insert run under the equipment's lock so two
// concurrent requests for the same equipment cannot both pass the check.
func (s *rentalService) Create(ctx context.Context, clientDNI string, equipmentID int64, startDate, endDate time.Time) (*domain.Rental, error) {
	if endDate.Before(startDate) {
		return nil, apperr.Validation("INVALID_DATE_RANGE", "end date must not be before start date")
	}

	client, err := s.clientRepo.GetByDNI(ctx, clientDNI)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("CLIENT_NOT_FOUND", "client with dni %s not found", clientDNI)
		}
		return nil, err
	}

	equipment, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("EQUIPMENT_NOT_FOUND", "equipment %d not found", equipmentID)
		}
		return nil, err
	}
	if equipment.Status == domain.EquipmentStatusMaintenance {
		return nil, apperr.Conflict("EQUIPMENT_IN_MAINTENANCE", "equipment %d is in maintenance", equipmentID)
	}

	total, err := pricing.Total(equipment.PricePerDay, startDate, endDate)
	if err != nil {
		return nil, apperr.Validation("INVALID_DATE_RANGE", "%s", err.Error())
	}

	unlock := s.equipmentLocks.Lock(equipmentID)
	defer unlock()

	overlapping, err := s.rentalRepo.FindOverlapping(ctx, equipmentID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, apperr.Conflict("EQUIPMENT_UNAVAILABLE", "equipment %d is already booked in the requested period", equipmentID)
	}

	rental := &domain.Rental{
		ClientID:      client.ID,
		EquipmentID:   equipment.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		TotalAmount:   total,
		Returned:      false,
		Status:        domain.RentalStatusActive,
		PaymentStatus: domain.PaymentStatusPending,
	}
	if err := s.rentalRepo.CreateAndMarkRented(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) ListByClient(ctx context.Context, dni string) ([]domain.Rental, error) {
	if _, err := s.clientRepo.GetByDNI(ctx, dni); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("CLIENT_NOT_FOUND", "client with dni %s not found", dni)
		}
		return nil, err
	}
	return s.rentalRepo.ListByClientDNI(ctx, dni)
}

func (s *rentalService) MarkReturned(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("RENTAL_NOT_FOUND", "rental %d not found", rentalID)
		}
		return nil, err
	}
	if !rental.Active() {
		return nil, apperr.Conflict("RENTAL_ALREADY_CLOSED", "rental %d is already %s", rentalID, rental.Status)
	}

	unlock := s.equipmentLocks.Lock(rental.EquipmentID)
	defer unlock()

	if err := s.rentalRepo.SetReturned(ctx, rentalID, rental.EquipmentID); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, apperr.Conflict("RENTAL_ALREADY_CLOSED", "rental %d is already closed", rentalID)
		}
		return nil, err
	}
	rental.Returned = true
	rental.Status = domain.RentalStatusReturned
	return rental, nil
}

// Cancel voids a booking. Only unpaid rentals may be cancelled; once money
// has been applied the rental must run its course and be returned.
func (s *rentalService) Cancel(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("RENTAL_NOT_FOUND", "rental %d not found", rentalID)
		}
		return nil, err
	}
	if !rental.Active() {
		return nil, apperr.Conflict("RENTAL_ALREADY_CLOSED", "rental %d is already %s", rentalID, rental.Status)
	}
	if rental.PaymentStatus != domain.PaymentStatusPending {
		return nil, apperr.Conflict("RENTAL_HAS_PAYMENTS", "rental %d has payments applied and cannot be cancelled", rentalID)
	}

	unlock := s.equipmentLocks.Lock(rental.EquipmentID)
	defer unlock()

	if err := s.rentalRepo.SetCancelled(ctx, rentalID, rental.EquipmentID); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, s.cancelConflict(ctx, rentalID)
		}
		return nil, err
	}
	rental.Status = domain.RentalStatusCancelled
	return rental, nil
}

// cancelConflict re-reads a rental whose guarded cancel matched no row and
// reports which precondition stopped it.
func (s *rentalService) cancelConflict(ctx context.Context, rentalID int64) error {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return apperr.Conflict("RENTAL_ALREADY_CLOSED", "rental %d is already closed", rentalID)
	}
	if rental.Active() {
		return apperr.Conflict("RENTAL_HAS_PAYMENTS", "rental %d has payments applied and cannot be cancelled", rentalID)
	}
	return apperr.Conflict("RENTAL_ALREADY_CLOSED", "rental %d is already %s", rentalID, rental.Status)
}
