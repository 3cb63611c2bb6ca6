package postgres

import (
	"context"
	"database/sql"
	"time"

	"ecorent-backend/internal/domain"
	"ecorent-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (name, dni, phone, email, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.Name, c.DNI, c.Phone, c.Email, time.Now()).Scan(&c.ID); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT id, name, dni, phone, email, created_on FROM clients WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.DNI, &c.Phone, &c.Email, &c.CreatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) GetByDNI(ctx context.Context, dni string) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT id, name, dni, phone, email, created_on FROM clients WHERE dni = $1`
	err := r.db.QueryRowContext(ctx, query, dni).Scan(&c.ID, &c.Name, &c.DNI, &c.Phone, &c.Email, &c.CreatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) ExistsByDNI(ctx context.Context, dni string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE dni = $1)`
	err := r.db.QueryRowContext(ctx, query, dni).Scan(&exists)
	return exists, err
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name=$1, phone=$2, email=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Email, c.ID)
	return err
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM clients WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT id, name, dni, phone, email, created_on FROM clients ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.DNI, &c.Phone, &c.Email, &c.CreatedOn); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientRepository) TopByRentalCount(ctx context.Context, limit int) ([]domain.ClientRentalCount, error) {
	query := `SELECT c.id, c.name, c.dni, c.phone, c.email, c.created_on, COUNT(r.id) AS rental_count
	          FROM clients c
	          LEFT JOIN rentals r ON r.client_id = c.id
	          GROUP BY c.id
	          ORDER BY rental_count DESC, c.id ASC
	          LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.ClientRentalCount
	for rows.Next() {
		var rc domain.ClientRentalCount
		c := &rc.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.DNI, &c.Phone, &c.Email, &c.CreatedOn, &rc.RentalCount); err != nil {
			return nil, err
		}
		results = append(results, rc)
	}
	return results, rows.Err()
}
