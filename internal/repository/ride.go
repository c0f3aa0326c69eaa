package repository

import (
	"context"

	"hail/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// UpdateStatus transitions a ride from an expected status to a new
	// one, optionally assigning a captain. It returns ErrStaleStatus
	// when the ride was not in the expected status at commit time, so
	// concurrent transitions on the same ride cannot both win.
	UpdateStatus(ctx context.Context, id string, from, to domain.RideStatus, captainID string) error

	// GetActiveByCaptainID retrieves the captain's ride in confirmed or
	// started status, or ErrNotFound when there is none.
	GetActiveByCaptainID(ctx context.Context, captainID string) (*domain.Ride, error)

	// GetCompletedByCaptainID retrieves the captain's most recent
	// completed rides, newest first, up to limit.
	GetCompletedByCaptainID(ctx context.Context, captainID string, limit int) ([]*domain.Ride, error)
}
