package service_test

import (
	"context"
	"time"

	"ecorent-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) GetByDNI(ctx context.Context, dni string) (*domain.Client, error) {
	args := m.Called(ctx, dni)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) ExistsByDNI(ctx context.Context, dni string) (bool, error) {
	args := m.Called(ctx, dni)
	return args.Bool(0), args.Error(1)
}
func (m *MockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockClientRepo) TopByRentalCount(ctx context.Context, limit int) ([]domain.ClientRentalCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.ClientRentalCount), args.Error(1)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, equipment *domain.Equipment) error {
	args := m.Called(ctx, equipment)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ExistsByInternalCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, equipment *domain.Equipment) error {
	args := m.Called(ctx, equipment)
	return args.Error(0)
}
func (m *MockEquipmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.EquipmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) TopByRentalCount(ctx context.Context, limit int) ([]domain.EquipmentRentalCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.EquipmentRentalCount), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateAndMarkRented(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) FindOverlapping(ctx context.Context, equipmentID int64, start, end time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, equipmentID, start, end)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByClientDNI(ctx context.Context, dni string) ([]domain.Rental, error) {
	args := m.Called(ctx, dni)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) SetReturned(ctx context.Context, rentalID, equipmentID int64) error {
	args := m.Called(ctx, rentalID, equipmentID)
	return args.Error(0)
}
func (m *MockRentalRepo) SetCancelled(ctx context.Context, rentalID, equipmentID int64) error {
	args := m.Called(ctx, rentalID, equipmentID)
	return args.Error(0)
}
func (m *MockRentalRepo) CountActiveByEquipment(ctx context.Context, equipmentID int64) (int64, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRentalRepo) CountByEquipment(ctx context.Context, equipmentID int64) (int64, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRentalRepo) CountByClient(ctx context.Context, clientID int64) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRentalRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) CreateWithStatus(ctx context.Context, payment *domain.Payment, status domain.PaymentStatus) error {
	args := m.Called(ctx, payment, status)
	return args.Error(0)
}
func (m *MockPaymentRepo) SumByRental(ctx context.Context, rentalID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockPaymentRepo) ListByRental(ctx context.Context, rentalID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) SumBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}
