package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ecorent-backend/internal/apperr"
	"ecorent-backend/internal/domain"
	"ecorent-backend/internal/repository"
)

type clientService struct {
	clientRepo repository.ClientRepository
	rentalRepo repository.RentalRepository
}

func NewClientService(clientRepo repository.ClientRepository, rentalRepo repository.RentalRepository) ClientService {
	return &clientService{
		clientRepo: clientRepo,
		rentalRepo: rentalRepo,
	}
}

func (s *clientService) Register(ctx context.Context, name, dni, phone, email string) (*domain.Client, error) {
	name = strings.TrimSpace(name)
	dni = strings.TrimSpace(dni)
	if name == "" {
		return nil, apperr.Validation("NAME_REQUIRED", "client name must not be empty")
	}
	if dni == "" {
		return nil, apperr.Validation("DNI_REQUIRED", "client dni must not be empty")
	}

	exists, err := s.clientRepo.ExistsByDNI(ctx, dni)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("DUPLICATE_DNI", "a client with dni %s is already registered", dni)
	}

	client := &domain.Client{
		Name:  name,
		DNI:   dni,
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("DUPLICATE_DNI", "a client with dni %s is already registered", dni)
		}
		return nil, err
	}
	return client, nil
}

// Update changes the mutable client fields. DNI is immutable once assigned.
func (s *clientService) Update(ctx context.Context, id int64, name, phone, email string) (*domain.Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("NAME_REQUIRED", "client name must not be empty")
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("CLIENT_NOT_FOUND", "client %d not found", id)
		}
		return nil, err
	}

	client.Name = strings.TrimSpace(name)
	client.Phone = strings.TrimSpace(phone)
	client.Email = strings.TrimSpace(email)
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("CLIENT_NOT_FOUND", "client %d not found", id)
		}
		return err
	}

	count, err := s.rentalRepo.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("CLIENT_HAS_RENTALS", "client %d has rental history and cannot be deleted", id)
	}

	return s.clientRepo.Delete(ctx, id)
}

func (s *clientService) FindByDNI(ctx context.Context, dni string) (*domain.Client, error) {
	client, err := s.clientRepo.GetByDNI(ctx, dni)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("CLIENT_NOT_FOUND", "client with dni %s not found", dni)
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.clientRepo.List(ctx)
}
