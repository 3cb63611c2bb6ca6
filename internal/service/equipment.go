package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ecorent-backend/internal/apperr"
	"ecorent-backend/internal/domain"
	"ecorent-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	rentalRepo    repository.RentalRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository, rentalRepo repository.RentalRepository) EquipmentService {
	return &equipmentService{
		equipmentRepo: equipmentRepo,
		rentalRepo:    rentalRepo,
	}
}

func (s *equipmentService) Register(ctx context.Context, name, category, internalCode string, pricePerDay decimal.Decimal) (*domain.Equipment, error) {
	name = strings.TrimSpace(name)
	internalCode = strings.TrimSpace(internalCode)
	if name == "" {
		return nil, apperr.Validation("NAME_REQUIRED", "equipment name must not be empty")
	}
	if internalCode == "" {
		return nil, apperr.Validation("INTERNAL_CODE_REQUIRED", "equipment internal code must not be empty")
	}
	if !pricePerDay.IsPositive() {
		return nil, apperr.Validation("INVALID_PRICE", "price per day must be greater than zero")
	}

	exists, err := s.equipmentRepo.ExistsByInternalCode(ctx, internalCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("DUPLICATE_INTERNAL_CODE", "an equipment with internal code %s already exists", internalCode)
	}

	equipment := &domain.Equipment{
		Name:         name,
		Category:     strings.TrimSpace(category),
		InternalCode: internalCode,
		PricePerDay:  pricePerDay,
		Status:       domain.EquipmentStatusAvailable,
	}
	if err := s.equipmentRepo.Create(ctx, equipment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("DUPLICATE_INTERNAL_CODE", "an equipment with internal code %s already exists", internalCode)
		}
		return nil, err
	}
	return equipment, nil
}

// Update changes name, category and price. The internal code is immutable
// after creation so historical rentals keep a stable reference; price
// changes never affect existing rentals because totals are snapshotted at
// booking time.
func (s *equipmentService) Update(ctx context.Context, id int64, name, category string, pricePerDay decimal.Decimal) (*domain.Equipment, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("NAME_REQUIRED", "equipment name must not be empty")
	}
	if !pricePerDay.IsPositive() {
		return nil, apperr.Validation("INVALID_PRICE", "price per day must be greater than zero")
	}

	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("EQUIPMENT_NOT_FOUND", "equipment %d not found", id)
		}
		return nil, err
	}

	equipment.Name = strings.TrimSpace(name)
	equipment.Category = strings.TrimSpace(category)
	equipment.PricePerDay = pricePerDay
	if err := s.equipmentRepo.Update(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

// ChangeStatus is the manual override, used to take equipment into or out
// of MAINTENANCE. RENTED is derived from active rentals and cannot be set
// by hand; AVAILABLE is refused while an active rental still references
// the equipment.
func (s *equipmentService) ChangeStatus(ctx context.Context, id int64, status domain.EquipmentStatus) (*domain.Equipment, error) {
	if !status.Valid() {
		return nil, apperr.Validation("INVALID_STATUS", "unknown equipment status %q", status)
	}

	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("EQUIPMENT_NOT_FOUND", "equipment %d not found", id)
		}
		return nil, err
	}

	switch status {
	case domain.EquipmentStatusRented:
		return nil, apperr.Conflict("STATUS_DERIVED", "RENTED is derived from bookings and cannot be set manually")
	case domain.EquipmentStatusAvailable:
		active, err := s.rentalRepo.CountActiveByEquipment(ctx, id)
		if err != nil {
			return nil, err
		}
		if active > 0 {
			return nil, apperr.Conflict("EQUIPMENT_STILL_RENTED", "equipment %d has an active rental and cannot be set AVAILABLE", id)
		}
	}

	if err := s.equipmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	equipment.Status = status
	return equipment, nil
}

func (s *equipmentService) Delete(ctx context.Context, id int64) error {
	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("EQUIPMENT_NOT_FOUND", "equipment %d not found", id)
		}
		return err
	}

	if equipment.Status == domain.EquipmentStatusRented {
		return apperr.Conflict("EQUIPMENT_RENTED", "equipment %d is rented and cannot be deleted", id)
	}

	count, err := s.rentalRepo.CountByEquipment(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("EQUIPMENT_HAS_RENTALS", "equipment %d has rental history and cannot be deleted", id)
	}

	return s.equipmentRepo.Delete(ctx, id)
}

func (s *equipmentService) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("EQUIPMENT_NOT_FOUND", "equipment %d not found", id)
		}
		return nil, err
	}
	return equipment, nil
}

func (s *equipmentService) List(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipmentRepo.List(ctx)
}
