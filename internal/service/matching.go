package service

import (
	"context"
	"math"

	"hail/internal/domain"
	"hail/internal/redis"
)

// DefaultDispatchRadiusKm is the radius used to fan out new rides to
// nearby captains.
const DefaultDispatchRadiusKm = 2.0

// MatchingService finds online captains near a point. The candidate set
// is ephemeral: it is recomputed on every ride creation and never
// cached, because captains move.
type MatchingService struct {
	locationStore redis.LocationStoreInterface
	presenceStore redis.PresenceStoreInterface
}

// NewMatchingService creates a new MatchingService.
func NewMatchingService(
	locationStore redis.LocationStoreInterface,
	presenceStore redis.PresenceStoreInterface,
) *MatchingService {
	return &MatchingService{
		locationStore: locationStore,
		presenceStore: presenceStore,
	}
}

// FindCaptainsNear returns captains within radiusKm of the point that
// currently hold a live connection, nearest first. Offline captains are
// excluded by an explicit presence filter, not left to notification
// time. Invalid input and no matches both return an empty set, never an
// error.
func (s *MatchingService) FindCaptainsNear(ctx context.Context, lat, lng, radiusKm float64) ([]domain.CaptainLocation, error) {
	if !validCoordinates(lat, lng) || math.IsNaN(radiusKm) || radiusKm < 0 {
		return nil, nil
	}

	nearby, err := s.locationStore.FindNearbyCaptains(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}

	if len(nearby) == 0 {
		return nil, nil
	}

	ids := make([]string, len(nearby))
	for i, loc := range nearby {
		ids[i] = loc.CaptainID
	}

	online, err := s.presenceStore.FilterOnline(ctx, ids)
	if err != nil {
		return nil, err
	}

	onlineSet := make(map[string]bool, len(online))
	for _, id := range online {
		onlineSet[id] = true
	}

	matched := make([]domain.CaptainLocation, 0, len(online))
	for _, loc := range nearby {
		if onlineSet[loc.CaptainID] {
			matched = append(matched, loc)
		}
	}

	return matched, nil
}

func validCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
