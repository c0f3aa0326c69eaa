package service

import (
	"context"

	"hail/internal/redis"
)

// CaptainService handles captain location and presence.
type CaptainService struct {
	locationStore redis.LocationStoreInterface
	presenceStore redis.PresenceStoreInterface
}

// NewCaptainService creates a new CaptainService.
func NewCaptainService(
	locationStore redis.LocationStoreInterface,
	presenceStore redis.PresenceStoreInterface,
) *CaptainService {
	return &CaptainService{
		locationStore: locationStore,
		presenceStore: presenceStore,
	}
}

// UpdateLocation records a captain's position in the geo index and
// refreshes their online presence. Called continuously over the
// realtime channel while the captain is connected.
func (s *CaptainService) UpdateLocation(ctx context.Context, captainID string, lat, lng float64) error {
	if captainID == "" {
		return ErrInvalidCaptainID
	}

	if !validCoordinates(lat, lng) {
		return ErrInvalidLocation
	}

	if err := s.locationStore.UpdateLocation(ctx, captainID, lat, lng); err != nil {
		return err
	}

	return s.presenceStore.SetOnline(ctx, captainID)
}

// SetOnline marks a captain as online without moving them.
func (s *CaptainService) SetOnline(ctx context.Context, captainID string) error {
	if captainID == "" {
		return ErrInvalidCaptainID
	}

	return s.presenceStore.SetOnline(ctx, captainID)
}

// SetOffline clears a captain's presence and location. Called when
// their live connection drops.
func (s *CaptainService) SetOffline(ctx context.Context, captainID string) error {
	if captainID == "" {
		return ErrInvalidCaptainID
	}

	if err := s.presenceStore.SetOffline(ctx, captainID); err != nil {
		return err
	}

	return s.locationStore.RemoveLocation(ctx, captainID)
}
