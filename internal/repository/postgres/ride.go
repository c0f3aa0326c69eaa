package postgres

import (
	"context"
	"database/sql"
	"errors"

	"hail/internal/domain"
	"hail/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, rider_id, pickup, destination, class, fare, status, otp, captain_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var captainID sql.NullString
	if ride.CaptainID != "" {
		captainID = sql.NullString{String: ride.CaptainID, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.RiderID,
		ride.Pickup,
		ride.Destination,
		ride.Class,
		ride.Fare,
		ride.Status,
		ride.OTP,
		captainID,
		ride.CreatedAt,
	)

	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `
		SELECT id, rider_id, pickup, destination, class, fare, status, otp, captain_id, created_at
		FROM rides WHERE id = $1
	`

	return scanRide(r.q.QueryRowContext(ctx, query, id))
}

// UpdateStatus transitions a ride from an expected status to a new one,
// optionally assigning a captain. The WHERE clause on the expected
// status makes the transition a compare-and-swap: when two callers race
// on the same ride, only one update matches a row.
func (r *RideRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RideStatus, captainID string) error {
	query := `
		UPDATE rides
		SET status = $1, captain_id = COALESCE(NULLIF($2, ''), captain_id)
		WHERE id = $3 AND status = $4
	`

	result, err := r.q.ExecContext(ctx, query, to, captainID, id, from)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		// Distinguish a missing ride from a lost race.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return repository.ErrStaleStatus
	}

	return nil
}

// GetActiveByCaptainID retrieves the captain's confirmed or started ride.
func (r *RideRepository) GetActiveByCaptainID(ctx context.Context, captainID string) (*domain.Ride, error) {
	query := `
		SELECT id, rider_id, pickup, destination, class, fare, status, otp, captain_id, created_at
		FROM rides
		WHERE captain_id = $1 AND status IN ('confirmed', 'started')
		LIMIT 1
	`

	return scanRide(r.q.QueryRowContext(ctx, query, captainID))
}

// GetCompletedByCaptainID retrieves the captain's most recent completed rides.
func (r *RideRepository) GetCompletedByCaptainID(ctx context.Context, captainID string, limit int) ([]*domain.Ride, error) {
	query := `
		SELECT id, rider_id, pickup, destination, class, fare, status, otp, captain_id, created_at
		FROM rides
		WHERE captain_id = $1 AND status = 'completed'
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.QueryContext(ctx, query, captainID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRideRow(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}

	return rides, rows.Err()
}

func scanRide(row *sql.Row) (*domain.Ride, error) {
	var ride domain.Ride
	var captainID sql.NullString

	err := row.Scan(
		&ride.ID,
		&ride.RiderID,
		&ride.Pickup,
		&ride.Destination,
		&ride.Class,
		&ride.Fare,
		&ride.Status,
		&ride.OTP,
		&captainID,
		&ride.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if captainID.Valid {
		ride.CaptainID = captainID.String
	}

	return &ride, nil
}

func scanRideRow(rows *sql.Rows) (*domain.Ride, error) {
	var ride domain.Ride
	var captainID sql.NullString

	err := rows.Scan(
		&ride.ID,
		&ride.RiderID,
		&ride.Pickup,
		&ride.Destination,
		&ride.Class,
		&ride.Fare,
		&ride.Status,
		&ride.OTP,
		&captainID,
		&ride.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if captainID.Valid {
		ride.CaptainID = captainID.String
	}

	return &ride, nil
}
