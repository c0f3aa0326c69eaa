package repository

import (
	"context"

	"hail/internal/domain"
)

// CaptainRepository defines the persistence operations for captains.
type CaptainRepository interface {
	// Create adds a new captain.
	Create(ctx context.Context, captain *domain.Captain) error

	// GetByID retrieves a captain by ID.
	GetByID(ctx context.Context, id string) (*domain.Captain, error)

	// GetByPhone retrieves a captain by phone number.
	GetByPhone(ctx context.Context, phone string) (*domain.Captain, error)
}
