package service_test

import (
	"context"
	"database/sql"
	"testing"

	"ecorent-backend/internal/apperr"
	"ecorent-backend/internal/domain"
	"ecorent-backend/internal/repository"
	"ecorent-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEquipmentService_Register(t *testing.T) {
	ctx := context.Background()
	price := decimal.RequireFromString("25.50")

	t.Run("Success starts AVAILABLE", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, new(MockRentalRepo))

		mockEquipmentRepo.On("ExistsByInternalCode", ctx, "DRL-001").Return(false, nil).Once()
		mockEquipmentRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.Equipment) bool {
			return e.Name == "Hammer Drill" && e.InternalCode == "DRL-001" &&
				e.Status == domain.EquipmentStatusAvailable &&
				e.PricePerDay.Equal(price)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Equipment).ID = 3
		}).Return(nil).Once()

		equipment, err := svc.Register(ctx, "Hammer Drill", "Power Tools", "DRL-001", price)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), equipment.ID)
		mockEquipmentRepo.AssertExpectations(t)
	})

	t.Run("Blank name", func(t *testing.T) {
		svc := service.NewEquipmentService(new(MockEquipmentRepo), new(MockRentalRepo))

		_, err := svc.Register(ctx, " ", "Power Tools", "DRL-001", price)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, "NAME_REQUIRED", apperr.CodeOf(err))
	})

	t.Run("Blank internal code", func(t *testing.T) {
		svc := service.NewEquipmentService(new(MockEquipmentRepo), new(MockRentalRepo))

		_, err := svc.Register(ctx, "Hammer Drill", "Power Tools", "", price)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, "INTERNAL_CODE_REQUIRED", apperr.CodeOf(err))
	})

	t.Run("Non-positive price", func(t *testing.T) {
		svc := service.NewEquipmentService(new(MockEquipmentRepo), new(MockRentalRepo))

		_, err := svc.Register(ctx, "Hammer Drill", "Power Tools", "DRL-001", decimal.Zero)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, "INVALID_PRICE", apperr.CodeOf(err))
	})

	t.Run("Duplicate internal code", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, new(MockRentalRepo))

		mockEquipmentRepo.On("ExistsByInternalCode", ctx, "DRL-001").Return(true, nil).Once()

		_, err := svc.Register(ctx, "Hammer Drill", "Power Tools", "DRL-001", price)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "DUPLICATE_INTERNAL_CODE", apperr.CodeOf(err))
	})

	t.Run("Duplicate insert loses to a concurrent registration", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, new(MockRentalRepo))

		mockEquipmentRepo.On("ExistsByInternalCode", ctx, "DRL-001").Return(false, nil).Once()
		mockEquipmentRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate).Once()

		_, err := svc.Register(ctx, "Hammer Drill", "Power Tools", "DRL-001", price)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "DUPLICATE_INTERNAL_CODE", apperr.CodeOf(err))
		mockEquipmentRepo.AssertExpectations(t)
	})
}

func TestEquipmentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Internal code untouched", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, new(MockRentalRepo))

		existing := &domain.Equipment{ID: 3, Name: "Hammer Drill", InternalCode: "DRL-001", PricePerDay: decimal.RequireFromString("25.50")}
		mockEquipmentRepo.On("GetByID", ctx, int64(3)).Return(existing, nil).Once()
		mockEquipmentRepo.On("Update", ctx, mock.MatchedBy(func(e *domain.Equipment) bool {
			return e.InternalCode == "DRL-001" && e.Name == "Rotary Hammer" &&
				e.PricePerDay.Equal(decimal.RequireFromString("30.00"))
		})).Return(nil).Once()

		equipment, err := svc.Update(ctx, 3, "Rotary Hammer", "Power Tools", decimal.RequireFromString("30.00"))
		assert.NoError(t, err)
		assert.Equal(t, "DRL-001", equipment.InternalCode)
		mockEquipmentRepo.AssertExpectations(t)
	})

	t.Run("Unknown equipment", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, new(MockRentalRepo))

		mockEquipmentRepo.On("GetByID", ctx, int64(404)).Return(nil, sql.ErrNoRows).Once()

		_, err := svc.Update(ctx, 404, "Rotary Hammer", "", decimal.RequireFromString("30.00"))
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestEquipmentService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	available := func() *domain.Equipment {
		return &domain.Equipment{ID: 3, Status: domain.EquipmentStatusAvailable}
	}

	t.Run("Into maintenance", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, new(MockRentalRepo))

		mockEquipmentRepo.On("GetByID", ctx, int64(3)).Return(available(), nil).Once()
		mockEquipmentRepo.On("UpdateStatus", ctx, int64(3), domain.EquipmentStatusMaintenance).Return(nil).Once()

		equipment, err := svc.ChangeStatus(ctx, 3, domain.EquipmentStatusMaintenance)
		assert.NoError(t, err)
		assert.Equal(t, domain.EquipmentStatusMaintenance, equipment.Status)
	})

	t.Run("RENTED cannot be set manually", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, new(MockRentalRepo))

		mockEquipmentRepo.On("GetByID", ctx, int64(3)).Return(available(), nil).Once()

		_, err := svc.ChangeStatus(ctx, 3, domain.EquipmentStatusRented)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "STATUS_DERIVED", apperr.CodeOf(err))
		mockEquipmentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AVAILABLE refused while a rental is active", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		mockRentalRepo := new(MockRentalRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, mockRentalRepo)

		rented := &domain.Equipment{ID: 3, Status: domain.EquipmentStatusRented}
		mockEquipmentRepo.On("GetByID", ctx, int64(3)).Return(rented, nil).Once()
		mockRentalRepo.On("CountActiveByEquipment", ctx, int64(3)).Return(int64(1), nil).Once()

		_, err := svc.ChangeStatus(ctx, 3, domain.EquipmentStatusAvailable)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "EQUIPMENT_STILL_RENTED", apperr.CodeOf(err))
	})

	t.Run("Back to AVAILABLE after maintenance", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		mockRentalRepo := new(MockRentalRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, mockRentalRepo)

		inMaintenance := &domain.Equipment{ID: 3, Status: domain.EquipmentStatusMaintenance}
		mockEquipmentRepo.On("GetByID", ctx, int64(3)).Return(inMaintenance, nil).Once()
		mockRentalRepo.On("CountActiveByEquipment", ctx, int64(3)).Return(int64(0), nil).Once()
		mockEquipmentRepo.On("UpdateStatus", ctx, int64(3), domain.EquipmentStatusAvailable).Return(nil).Once()

		equipment, err := svc.ChangeStatus(ctx, 3, domain.EquipmentStatusAvailable)
		assert.NoError(t, err)
		assert.Equal(t, domain.EquipmentStatusAvailable, equipment.Status)
	})

	t.Run("Unknown status", func(t *testing.T) {
		svc := service.NewEquipmentService(new(MockEquipmentRepo), new(MockRentalRepo))

		_, err := svc.ChangeStatus(ctx, 3, domain.EquipmentStatus("BROKEN"))
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, "INVALID_STATUS", apperr.CodeOf(err))
	})
}

func TestEquipmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		mockRentalRepo := new(MockRentalRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, mockRentalRepo)

		mockEquipmentRepo.On("GetByID", ctx, int64(3)).Return(&domain.Equipment{ID: 3, Status: domain.EquipmentStatusAvailable}, nil).Once()
		mockRentalRepo.On("CountByEquipment", ctx, int64(3)).Return(int64(0), nil).Once()
		mockEquipmentRepo.On("Delete", ctx, int64(3)).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, 3))
		mockEquipmentRepo.AssertExpectations(t)
	})

	t.Run("Blocked while rented", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, new(MockRentalRepo))

		mockEquipmentRepo.On("GetByID", ctx, int64(3)).Return(&domain.Equipment{ID: 3, Status: domain.EquipmentStatusRented}, nil).Once()

		err := svc.Delete(ctx, 3)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "EQUIPMENT_RENTED", apperr.CodeOf(err))
	})

	t.Run("Blocked by rental history", func(t *testing.T) {
		mockEquipmentRepo := new(MockEquipmentRepo)
		mockRentalRepo := new(MockRentalRepo)
		svc := service.NewEquipmentService(mockEquipmentRepo, mockRentalRepo)

		mockEquipmentRepo.On("GetByID", ctx, int64(3)).Return(&domain.Equipment{ID: 3, Status: domain.EquipmentStatusAvailable}, nil).Once()
		mockRentalRepo.On("CountByEquipment", ctx, int64(3)).Return(int64(5), nil).Once()

		err := svc.Delete(ctx, 3)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "EQUIPMENT_HAS_RENTALS", apperr.CodeOf(err))
		mockEquipmentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
