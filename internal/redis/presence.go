package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const onlineCaptainsKey = "captains:online"

// PresenceStore tracks which captains currently hold a live connection.
// The realtime layer adds a captain on join and removes them on
// disconnect; the matcher intersects proximity results with this set so
// offline captains are never matched, even when their last location is
// still in the geo index.
type PresenceStore struct {
	client *redis.Client
}

// NewPresenceStore creates a new PresenceStore.
func NewPresenceStore(client *redis.Client) *PresenceStore {
	return &PresenceStore{client: client}
}

// SetOnline marks a captain as online.
func (s *PresenceStore) SetOnline(ctx context.Context, captainID string) error {
	return s.client.SAdd(ctx, onlineCaptainsKey, captainID).Err()
}

// SetOffline marks a captain as offline.
func (s *PresenceStore) SetOffline(ctx context.Context, captainID string) error {
	return s.client.SRem(ctx, onlineCaptainsKey, captainID).Err()
}

// FilterOnline returns the subset of the given captains that are online,
// preserving the input order.
func (s *PresenceStore) FilterOnline(ctx context.Context, captainIDs []string) ([]string, error) {
	if len(captainIDs) == 0 {
		return nil, nil
	}

	members := make([]any, len(captainIDs))
	for i, id := range captainIDs {
		members[i] = id
	}

	results, err := s.client.SMIsMember(ctx, onlineCaptainsKey, members...).Result()
	if err != nil {
		return nil, err
	}

	online := make([]string, 0, len(captainIDs))
	for i, isMember := range results {
		if isMember {
			online = append(online, captainIDs[i])
		}
	}

	return online, nil
}
