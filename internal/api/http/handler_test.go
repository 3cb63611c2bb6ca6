package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "ecorent-backend/internal/api/http"
	"ecorent-backend/internal/apperr"
	"ecorent-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) Create(ctx context.Context, clientDNI string, equipmentID int64, startDate, endDate time.Time) (*domain.Rental, error) {
	args := m.Called(ctx, clientDNI, equipmentID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListByClient(ctx context.Context, dni string) ([]domain.Rental, error) {
	args := m.Called(ctx, dni)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalService) MarkReturned(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) Cancel(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Register(ctx context.Context, rentalID int64, amount decimal.Decimal) (*domain.Payment, domain.PaymentStatus, error) {
	args := m.Called(ctx, rentalID, amount)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Get(1).(domain.PaymentStatus), args.Error(2)
}
func (m *MockPaymentService) ListForRental(ctx context.Context, rentalID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func newTestRouter(rentals *MockRentalService, payments *MockPaymentService) http.Handler {
	return api.NewRouter(api.Handlers{
		Client:    api.NewClientHandler(nil, nil),
		Equipment: api.NewEquipmentHandler(nil),
		Rental:    api.NewRentalHandler(rentals),
		Payment:   api.NewPaymentHandler(payments),
		Report:    api.NewReportHandler(nil),
	})
}

func TestRentalHandler_Create(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockRentals := new(MockRentalService)
		router := newTestRouter(mockRentals, new(MockPaymentService))

		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
		rental := &domain.Rental{
			ID:            42,
			EquipmentID:   3,
			StartDate:     start,
			EndDate:       end,
			TotalAmount:   decimal.RequireFromString("30.00"),
			Status:        domain.RentalStatusActive,
			PaymentStatus: domain.PaymentStatusPending,
		}
		mockRentals.On("Create", mock.Anything, "44556677", int64(3), start, end).Return(rental, nil).Once()

		body := `{"client_dni":"44556677","equipment_id":3,"start_date":"2024-03-01","end_date":"2024-03-03"}`
		req := httptest.NewRequest(http.MethodPost, "/api/rentals", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, float64(42), resp["id"])
		assert.Equal(t, "2024-03-01", resp["start_date"])
		// Decimal amounts travel as strings.
		assert.Equal(t, "30", resp["total_amount"])
		assert.Equal(t, "ACTIVE", resp["status"])
		mockRentals.AssertExpectations(t)
	})

	t.Run("Conflict envelope", func(t *testing.T) {
		mockRentals := new(MockRentalService)
		router := newTestRouter(mockRentals, new(MockPaymentService))

		mockRentals.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperr.Conflict("EQUIPMENT_UNAVAILABLE", "equipment 3 is already booked in the requested period")).Once()

		body := `{"client_dni":"44556677","equipment_id":3,"start_date":"2024-03-01","end_date":"2024-03-03"}`
		req := httptest.NewRequest(http.MethodPost, "/api/rentals", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, float64(http.StatusConflict), resp["status"])
		assert.Equal(t, "Conflict", resp["error"])
		assert.Equal(t, "EQUIPMENT_UNAVAILABLE", resp["code"])
		assert.Equal(t, "/api/rentals", resp["path"])
		assert.NotEmpty(t, resp["timestamp"])
	})

	t.Run("Malformed date", func(t *testing.T) {
		router := newTestRouter(new(MockRentalService), new(MockPaymentService))

		body := `{"client_dni":"44556677","equipment_id":3,"start_date":"03/01/2024","end_date":"2024-03-03"}`
		req := httptest.NewRequest(http.MethodPost, "/api/rentals", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Not found envelope", func(t *testing.T) {
		mockRentals := new(MockRentalService)
		router := newTestRouter(mockRentals, new(MockPaymentService))

		mockRentals.On("MarkReturned", mock.Anything, int64(404)).
			Return(nil, apperr.NotFound("RENTAL_NOT_FOUND", "rental 404 not found")).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/rentals/404/return", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Resource Not Found", resp["error"])
		assert.Equal(t, "RENTAL_NOT_FOUND", resp["code"])
	})
}

func TestPaymentHandler_Create(t *testing.T) {
	t.Run("Created with recomputed status", func(t *testing.T) {
		mockPayments := new(MockPaymentService)
		router := newTestRouter(new(MockRentalService), mockPayments)

		payment := &domain.Payment{
			ID:             5,
			RentalID:       42,
			Amount:         decimal.RequireFromString("40.50"),
			PaymentDate:    time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			StatusSnapshot: domain.PaymentStatusPartiallyPaid,
		}
		mockPayments.On("Register", mock.Anything, int64(42), mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.RequireFromString("40.50"))
		})).Return(payment, domain.PaymentStatusPartiallyPaid, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/rentals/42/payments", strings.NewReader(`{"amount":"40.50"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "40.5", resp["amount"])
		assert.Equal(t, "PARTIALLY_PAID", resp["payment_status"])
		mockPayments.AssertExpectations(t)
	})

	t.Run("Overpayment envelope", func(t *testing.T) {
		mockPayments := new(MockPaymentService)
		router := newTestRouter(new(MockRentalService), mockPayments)

		mockPayments.On("Register", mock.Anything, int64(42), mock.Anything).
			Return(nil, domain.PaymentStatus(""), apperr.Validation("AMOUNT_EXCEEDS_BALANCE", "payment of 500 exceeds outstanding balance 30")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/rentals/42/payments", strings.NewReader(`{"amount":"500"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Validation Error", resp["error"])
		assert.Equal(t, "AMOUNT_EXCEEDS_BALANCE", resp["code"])
	})
}
