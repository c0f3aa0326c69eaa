package postgres

import (
	"context"
	"database/sql"
	"errors"

	"hail/internal/domain"
	"hail/internal/repository"
)

// CaptainRepository is a PostgreSQL implementation of repository.CaptainRepository.
type CaptainRepository struct {
	q Querier
}

// NewCaptainRepository creates a new PostgreSQL captain repository.
func NewCaptainRepository(db *sql.DB) *CaptainRepository {
	return &CaptainRepository{q: db}
}

// Create adds a new captain.
func (r *CaptainRepository) Create(ctx context.Context, captain *domain.Captain) error {
	query := `
		INSERT INTO captains (id, name, phone, password_hash, vehicle_plate, vehicle_class, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		captain.ID,
		captain.Name,
		captain.Phone,
		captain.PasswordHash,
		captain.VehiclePlate,
		captain.VehicleClass,
		captain.CreatedAt,
	)

	return err
}

// GetByID retrieves a captain by ID.
func (r *CaptainRepository) GetByID(ctx context.Context, id string) (*domain.Captain, error) {
	query := `
		SELECT id, name, phone, password_hash, vehicle_plate, vehicle_class, created_at
		FROM captains WHERE id = $1
	`

	return scanCaptain(r.q.QueryRowContext(ctx, query, id))
}

// GetByPhone retrieves a captain by phone number.
func (r *CaptainRepository) GetByPhone(ctx context.Context, phone string) (*domain.Captain, error) {
	query := `
		SELECT id, name, phone, password_hash, vehicle_plate, vehicle_class, created_at
		FROM captains WHERE phone = $1
	`

	return scanCaptain(r.q.QueryRowContext(ctx, query, phone))
}

func scanCaptain(row *sql.Row) (*domain.Captain, error) {
	var captain domain.Captain

	err := row.Scan(
		&captain.ID,
		&captain.Name,
		&captain.Phone,
		&captain.PasswordHash,
		&captain.VehiclePlate,
		&captain.VehicleClass,
		&captain.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &captain, nil
}
