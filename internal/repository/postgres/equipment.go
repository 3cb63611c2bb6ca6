package postgres

import (
	"context"
	"database/sql"
	"time"

	"ecorent-backend/internal/domain"
	"ecorent-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	query := `INSERT INTO equipments (name, category, internal_code, price_per_day, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	if err := r.db.QueryRowContext(ctx, query, e.Name, e.Category, e.InternalCode, e.PricePerDay, e.Status, now, now).Scan(&e.ID); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	query := `SELECT id, name, category, internal_code, price_per_day, status, created_on, updated_on
	          FROM equipments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Category, &e.InternalCode, &e.PricePerDay, &e.Status, &e.CreatedOn, &e.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) ExistsByInternalCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM equipments WHERE internal_code = $1)`
	err := r.db.QueryRowContext(ctx, query, code).Scan(&exists)
	return exists, err
}

// Update writes the mutable fields only. internal_code is never touched
// so historical rentals keep their linkage.
func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	query := `UPDATE equipments SET name=$1, category=$2, price_per_day=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, e.Name, e.Category, e.PricePerDay, time.Now(), e.ID)
	return err
}

func (r *equipmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.EquipmentStatus) error {
	query := `UPDATE equipments SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *equipmentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM equipments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	query := `SELECT id, name, category, internal_code, price_per_day, status, created_on, updated_on
	          FROM equipments ORDER BY internal_code, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var equipments []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.InternalCode, &e.PricePerDay, &e.Status, &e.CreatedOn, &e.UpdatedOn); err != nil {
			return nil, err
		}
		equipments = append(equipments, e)
	}
	return equipments, rows.Err()
}

// TopByRentalCount ranks equipment by the number of ACTIVE and RETURNED
// rentals referencing it. Cancelled rentals never count; ties break by id.
func (r *equipmentRepository) TopByRentalCount(ctx context.Context, limit int) ([]domain.EquipmentRentalCount, error) {
	query := `SELECT e.id, e.name, e.category, e.internal_code, e.price_per_day, e.status, e.created_on, e.updated_on,
	                 COUNT(r.id) AS rental_count
	          FROM equipments e
	          LEFT JOIN rentals r ON r.equipment_id = e.id AND r.status IN ('ACTIVE', 'RETURNED')
	          GROUP BY e.id
	          ORDER BY rental_count DESC, e.id ASC
	          LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.EquipmentRentalCount
	for rows.Next() {
		var rc domain.EquipmentRentalCount
		e := &rc.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.InternalCode, &e.PricePerDay, &e.Status, &e.CreatedOn, &e.UpdatedOn, &rc.RentalCount); err != nil {
			return nil, err
		}
		results = append(results, rc)
	}
	return results, rows.Err()
}
