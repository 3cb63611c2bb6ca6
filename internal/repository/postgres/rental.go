package postgres

import (
	"context"
	"database/sql"
	"time"

	"ecorent-backend/internal/domain"
	"ecorent-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, client_id, equipment_id, start_date, end_date, total_amount, returned, status, payment_status, created_on, updated_on`

func scanRental(row interface{ Scan(...any) error }, rt *domain.Rental) error {
	return row.Scan(&rt.ID, &rt.ClientID, &rt.EquipmentID, &rt.StartDate, &rt.EndDate, &rt.TotalAmount, &rt.Returned, &rt.Status, &rt.PaymentStatus, &rt.CreatedOn, &rt.UpdatedOn)
}

// CreateAndMarkRented inserts the rental and flips the equipment to RENTED
// as one transaction, so a booking is either fully visible or not at all.
func (r *rentalRepository) CreateAndMarkRented(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO rentals (client_id, equipment_id, start_date, end_date, total_amount, returned, status, payment_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, rt.ClientID, rt.EquipmentID, rt.StartDate, rt.EndDate, rt.TotalAmount, rt.Returned, rt.Status, rt.PaymentStatus, now, now).Scan(&rt.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE equipments SET status=$1, updated_on=$2 WHERE id=$3`,
		domain.EquipmentStatusRented, now, rt.EquipmentID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	if err := scanRental(r.db.QueryRowContext(ctx, query, id), rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// FindOverlapping applies the inclusive-interval predicate
// start <= $end AND end >= $start against ACTIVE rentals only.
func (r *rentalRepository) FindOverlapping(ctx context.Context, equipmentID int64, start, end time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE equipment_id = $1 AND status = $2 AND start_date <= $3 AND end_date >= $4`
	rows, err := r.db.QueryContext(ctx, query, equipmentID, domain.RentalStatusActive, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) ListByClientDNI(ctx context.Context, dni string) ([]domain.Rental, error) {
	query := `SELECT r.id, r.client_id, r.equipment_id, c.name, c.dni, e.name,
	                 r.start_date, r.end_date, r.total_amount, r.returned, r.status, r.payment_status, r.created_on, r.updated_on
	          FROM rentals r
	          JOIN clients c ON c.id = r.client_id
	          JOIN equipments e ON e.id = r.equipment_id
	          WHERE c.dni = $1
	          ORDER BY r.start_date DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, query, dni)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.ClientID, &rt.EquipmentID, &rt.ClientName, &rt.ClientDNI, &rt.EquipmentName,
			&rt.StartDate, &rt.EndDate, &rt.TotalAmount, &rt.Returned, &rt.Status, &rt.PaymentStatus, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) SetReturned(ctx context.Context, rentalID, equipmentID int64) error {
	return r.closeRental(ctx, rentalID, equipmentID, domain.RentalStatusReturned, true, false)
}

func (r *rentalRepository) SetCancelled(ctx context.Context, rentalID, equipmentID int64) error {
	return r.closeRental(ctx, rentalID, equipmentID, domain.RentalStatusCancelled, false, true)
}

// closeRental ends a rental and conditionally releases its equipment in one
// transaction. The rental row only transitions out of ACTIVE, and a
// cancellation additionally requires that no payment has touched it; a row
// that left the required state yields repository.ErrStateConflict. The
// equipment flips back to AVAILABLE only from RENTED (a manual MAINTENANCE
// override survives the return) and only when no other ACTIVE rental still
// references it.
func (r *rentalRepository) closeRental(ctx context.Context, rentalID, equipmentID int64, status domain.RentalStatus, returned, requireUnpaid bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `UPDATE rentals SET status=$1, returned=$2, updated_on=$3 WHERE id=$4 AND status=$5`
	args := []any{status, returned, now, rentalID, domain.RentalStatusActive}
	if requireUnpaid {
		query += ` AND payment_status=$6`
		args = append(args, domain.PaymentStatusPending)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrStateConflict
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE equipments SET status=$1, updated_on=$2
		 WHERE id=$3 AND status=$4
		   AND NOT EXISTS (SELECT 1 FROM rentals WHERE equipment_id=$3 AND status=$5)`,
		domain.EquipmentStatusAvailable, now, equipmentID, domain.EquipmentStatusRented, domain.RentalStatusActive); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *rentalRepository) CountActiveByEquipment(ctx context.Context, equipmentID int64) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM rentals WHERE equipment_id = $1 AND status = $2`
	err := r.db.QueryRowContext(ctx, query, equipmentID, domain.RentalStatusActive).Scan(&count)
	return count, err
}

func (r *rentalRepository) CountByEquipment(ctx context.Context, equipmentID int64) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM rentals WHERE equipment_id = $1`
	err := r.db.QueryRowContext(ctx, query, equipmentID).Scan(&count)
	return count, err
}

func (r *rentalRepository) CountByClient(ctx context.Context, clientID int64) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM rentals WHERE client_id = $1`
	err := r.db.QueryRowContext(ctx, query, clientID).Scan(&count)
	return count, err
}

func (r *rentalRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	query := `SELECT r.id, r.client_id, r.equipment_id, c.name, c.dni, e.name,
	                 r.start_date, r.end_date, r.total_amount, r.returned, r.status, r.payment_status, r.created_on, r.updated_on
	          FROM rentals r
	          JOIN clients c ON c.id = r.client_id
	          JOIN equipments e ON e.id = r.equipment_id
	          WHERE r.status = $1 AND r.end_date < $2
	          ORDER BY r.end_date ASC, r.id ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusActive, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.ClientID, &rt.EquipmentID, &rt.ClientName, &rt.ClientDNI, &rt.EquipmentName,
			&rt.StartDate, &rt.EndDate, &rt.TotalAmount, &rt.Returned, &rt.Status, &rt.PaymentStatus, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
