package postgres

import (
	"context"
	"database/sql"
	"time"

	"ecorent-backend/internal/domain"
	"ecorent-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

// CreateWithStatus inserts the payment and writes the rental's recomputed
// payment status in one transaction. The status write is guarded against a
// concurrent cancellation; when it matches no row the insert rolls back too
// and repository.ErrStateConflict is returned.
func (r *paymentRepository) CreateWithStatus(ctx context.Context, p *domain.Payment, status domain.PaymentStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO payments (rental_id, amount, payment_date, status_snapshot, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, p.RentalID, p.Amount, p.PaymentDate, p.StatusSnapshot, now).Scan(&p.ID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE rentals SET payment_status=$1, updated_on=$2 WHERE id=$3 AND status <> $4`,
		status, now, p.RentalID, domain.RentalStatusCancelled)
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

	return tx.Commit()
}

func (r *paymentRepository) SumByRental(ctx context.Context, rentalID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE rental_id = $1`
	if err := r.db.QueryRowContext(ctx, query, rentalID).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID int64) ([]domain.Payment, error) {
	query := `SELECT id, rental_id, amount, payment_date, status_snapshot, created_on
	          FROM payments WHERE rental_id = $1
	          ORDER BY payment_date ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.RentalID, &p.Amount, &p.PaymentDate, &p.StatusSnapshot, &p.CreatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) SumBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, int64, error) {
	var (
		sum   decimal.Decimal
		count int64
	)
	query := `SELECT COALESCE(SUM(amount), 0), count(*) FROM payments WHERE payment_date >= $1 AND payment_date <= $2`
	if err := r.db.QueryRowContext(ctx, query, start, end).Scan(&sum, &count); err != nil {
		return decimal.Zero, 0, err
	}
	return sum, count, nil
}
