package postgres

import (
	"database/sql"
	"errors"

	"ecorent-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ClientRepository
	repository.EquipmentRepository
	repository.RentalRepository
	repository.PaymentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		ClientRepository:    NewClientRepository(db),
		EquipmentRepository: NewEquipmentRepository(db),
		RentalRepository:    NewRentalRepository(db),
		PaymentRepository:   NewPaymentRepository(db),
	}
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
