package redis

import (
	"context"
	"time"

	"hail/internal/domain"
)

// LocationStoreInterface defines the interface for captain location operations.
type LocationStoreInterface interface {
	UpdateLocation(ctx context.Context, captainID string, lat, lng float64) error
	FindNearbyCaptains(ctx context.Context, lat, lng, radiusKm float64) ([]domain.CaptainLocation, error)
	RemoveLocation(ctx context.Context, captainID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error)
	ReleaseRideLock(ctx context.Context, rideID string) error
}

// PresenceStoreInterface defines the interface for captain online tracking.
type PresenceStoreInterface interface {
	SetOnline(ctx context.Context, captainID string) error
	SetOffline(ctx context.Context, captainID string) error
	FilterOnline(ctx context.Context, captainIDs []string) ([]string, error)
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ PresenceStoreInterface = (*PresenceStore)(nil)
)
