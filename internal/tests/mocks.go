package tests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"hail/internal/domain"
	"hail/internal/geo"
	"hail/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is an in-memory implementation of RideRepository.
// UpdateStatus keeps the compare-and-swap semantics of the PostgreSQL
// implementation so state-machine race tests are faithful.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Error injection
	CreateError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{rides: make(map[string]*domain.Ride)}
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *ride
	m.rides[ride.ID] = &copied
	return nil
}

// Len reports how many rides the repository holds.
func (m *MockRideRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rides)
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *ride
	return &copied, nil
}

func (m *MockRideRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RideStatus, captainID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return repository.ErrNotFound
	}
	if ride.Status != from {
		return repository.ErrStaleStatus
	}
	ride.Status = to
	if captainID != "" {
		ride.CaptainID = captainID
	}
	return nil
}

func (m *MockRideRepository) GetActiveByCaptainID(ctx context.Context, captainID string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ride := range m.rides {
		if ride.CaptainID == captainID &&
			(ride.Status == domain.RideStatusConfirmed || ride.Status == domain.RideStatusStarted) {
			copied := *ride
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockRideRepository) GetCompletedByCaptainID(ctx context.Context, captainID string, limit int) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var completed []*domain.Ride
	for _, ride := range m.rides {
		if ride.CaptainID == captainID && ride.Status == domain.RideStatusCompleted {
			copied := *ride
			completed = append(completed, &copied)
		}
	}

	sort.Slice(completed, func(i, j int) bool {
		return completed[i].CreatedAt.After(completed[j].CreatedAt)
	})

	if len(completed) > limit {
		completed = completed[:limit]
	}

	return completed, nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory ride confirmation lock.
type MockLockStore struct {
	mu    sync.Mutex
	held  map[string]bool
	Fails bool // when set, every acquire reports the lock as held
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{held: make(map[string]bool)}
}

func (m *MockLockStore) AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fails || m.held[rideID] {
		return false, nil
	}
	m.held[rideID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseRideLock(ctx context.Context, rideID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, rideID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCATION + PRESENCE STORES
// ──────────────────────────────────────────────

// MockLocationStore keeps captain positions in memory and answers
// radius queries with real great-circle distances.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations map[string]domain.CaptainLocation
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{locations: make(map[string]domain.CaptainLocation)}
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, captainID string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[captainID] = domain.CaptainLocation{CaptainID: captainID, Lat: lat, Lng: lng}
	return nil
}

func (m *MockLocationStore) FindNearbyCaptains(ctx context.Context, lat, lng, radiusKm float64) ([]domain.CaptainLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type candidate struct {
		loc  domain.CaptainLocation
		dist float64
	}

	var within []candidate
	for _, loc := range m.locations {
		d := geo.HaversineKm(lat, lng, loc.Lat, loc.Lng)
		if d <= radiusKm {
			within = append(within, candidate{loc: loc, dist: d})
		}
	}

	sort.Slice(within, func(i, j int) bool { return within[i].dist < within[j].dist })

	result := make([]domain.CaptainLocation, len(within))
	for i, c := range within {
		result[i] = c.loc
	}
	return result, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, captainID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, captainID)
	return nil
}

// MockPresenceStore tracks online captains in memory.
type MockPresenceStore struct {
	mu     sync.RWMutex
	online map[string]bool
}

// NewMockPresenceStore creates a new mock presence store.
func NewMockPresenceStore() *MockPresenceStore {
	return &MockPresenceStore{online: make(map[string]bool)}
}

func (m *MockPresenceStore) SetOnline(ctx context.Context, captainID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online[captainID] = true
	return nil
}

func (m *MockPresenceStore) SetOffline(ctx context.Context, captainID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.online, captainID)
	return nil
}

func (m *MockPresenceStore) FilterOnline(ctx context.Context, captainIDs []string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var online []string
	for _, id := range captainIDs {
		if m.online[id] {
			online = append(online, id)
		}
	}
	return online, nil
}

// ──────────────────────────────────────────────
// MOCK GEO PROVIDER
// ──────────────────────────────────────────────

// MockProvider resolves addresses from a fixed table and derives trip
// estimates the same way the real client does.
type MockProvider struct {
	Coords map[string]geo.Coordinates

	// Error injection
	ResolveError error
}

// NewMockProvider creates a provider with the given address table.
func NewMockProvider(coords map[string]geo.Coordinates) *MockProvider {
	return &MockProvider{Coords: coords}
}

func (p *MockProvider) ResolveCoordinates(ctx context.Context, address string) (geo.Coordinates, error) {
	if p.ResolveError != nil {
		return geo.Coordinates{}, p.ResolveError
	}
	coords, ok := p.Coords[address]
	if !ok {
		return geo.Coordinates{}, geo.ErrAddressNotFound
	}
	return coords, nil
}

func (p *MockProvider) Suggestions(ctx context.Context, input string) ([]geo.Suggestion, error) {
	return nil, nil
}

func (p *MockProvider) EstimateTrip(ctx context.Context, origin, destination string) (geo.TripEstimate, error) {
	from, err := p.ResolveCoordinates(ctx, origin)
	if err != nil {
		return geo.TripEstimate{}, err
	}
	to, err := p.ResolveCoordinates(ctx, destination)
	if err != nil {
		return geo.TripEstimate{}, err
	}
	distance := geo.HaversineKm(from.Lat, from.Lng, to.Lat, to.Lng)
	return geo.TripEstimate{DistanceKm: distance, DurationMin: geo.DurationMinutes(distance)}, nil
}

// ──────────────────────────────────────────────
// RECORDING CONNECTION REGISTRY
// ──────────────────────────────────────────────

var errNotConnected = errors.New("no live connection")

// SentEvent is one delivery recorded by the registry.
type SentEvent struct {
	AccountID string
	Event     string
}

// RecordingRegistry implements service.ConnectionRegistry, recording
// every successful delivery. Accounts not marked connected behave like
// a missing live connection.
type RecordingRegistry struct {
	mu        sync.Mutex
	connected map[string]bool
	sent      []SentEvent
	SendError error // injected for connected accounts
}

// NewRecordingRegistry creates a registry with the given accounts connected.
func NewRecordingRegistry(connected ...string) *RecordingRegistry {
	r := &RecordingRegistry{connected: make(map[string]bool)}
	for _, id := range connected {
		r.connected[id] = true
	}
	return r
}

func (r *RecordingRegistry) IsConnected(accountID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected[accountID]
}

func (r *RecordingRegistry) Send(accountID, event string, data any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.connected[accountID] {
		return errNotConnected
	}
	if r.SendError != nil {
		return r.SendError
	}
	r.sent = append(r.sent, SentEvent{AccountID: accountID, Event: event})
	return nil
}

// Sent returns a snapshot of recorded deliveries.
func (r *RecordingRegistry) Sent() []SentEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SentEvent(nil), r.sent...)
}
