package service

import (
	"context"
	"time"

	"ecorent-backend/internal/apperr"
	"ecorent-backend/internal/domain"
	"ecorent-backend/internal/repository"
)

// defaultReportLimit bounds top-N reports when the caller gives no limit.
const defaultReportLimit = 5

type reportService struct {
	paymentRepo   repository.PaymentRepository
	equipmentRepo repository.EquipmentRepository
	clientRepo    repository.ClientRepository
}

func NewReportService(
	paymentRepo repository.PaymentRepository,
	equipmentRepo repository.EquipmentRepository,
	clientRepo repository.ClientRepository,
) ReportService {
	return &reportService{
		paymentRepo:   paymentRepo,
		equipmentRepo: equipmentRepo,
		clientRepo:    clientRepo,
	}
}

func (s *reportService) IncomeBetween(ctx context.Context, start, end time.Time) (*domain.IncomeReport, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperr.Validation("MISSING_DATE_RANGE", "start and end dates are required")
	}
	if end.Before(start) {
		return nil, apperr.Validation("INVALID_DATE_RANGE", "end date must not be before start date")
	}

	total, count, err := s.paymentRepo.SumBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &domain.IncomeReport{
		StartDate:    start,
		EndDate:      end,
		TotalIncome:  total,
		PaymentCount: count,
	}, nil
}

func (s *reportService) TopEquipments(ctx context.Context, limit int) ([]domain.EquipmentRentalCount, error) {
	if limit <= 0 {
		limit = defaultReportLimit
	}
	return s.equipmentRepo.TopByRentalCount(ctx, limit)
}

func (s *reportService) TopClients(ctx context.Context, limit int) ([]domain.ClientRentalCount, error) {
	if limit <= 0 {
		limit = defaultReportLimit
	}
	return s.clientRepo.TopByRentalCount(ctx, limit)
}
