package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"hail/internal/domain"
	"hail/internal/redis"
	"hail/internal/repository"
)

const (
	confirmLockTTL   = 10 * time.Second
	rideHistoryLimit = 10
)

// RideService owns the ride state machine: creation, confirmation,
// start and completion, and enforces who may perform each transition.
// It never dispatches notifications itself; callers dispatch after the
// transition commits.
type RideService struct {
	rideRepo    repository.RideRepository
	lockStore   redis.LockStoreInterface
	fareService *FareService
}

// NewRideService creates a new RideService.
func NewRideService(
	rideRepo repository.RideRepository,
	lockStore redis.LockStoreInterface,
	fareService *FareService,
) *RideService {
	return &RideService{
		rideRepo:    rideRepo,
		lockStore:   lockStore,
		fareService: fareService,
	}
}

// CreateRideRequest contains the parameters for creating a ride.
type CreateRideRequest struct {
	RiderID     string
	Pickup      string
	Destination string
	Class       domain.RideClass
}

// CreateRide prices the trip, generates the handoff OTP and persists a
// new pending ride with no captain. Nothing is persisted when pricing
// fails.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.Ride, error) {
	if req.RiderID == "" {
		return nil, ErrInvalidRiderID
	}

	if req.Pickup == "" {
		return nil, ErrMissingPickup
	}

	if req.Destination == "" {
		return nil, ErrMissingDestination
	}

	if !domain.ValidRideClass(req.Class) {
		return nil, ErrInvalidRideClass
	}

	quote, err := s.fareService.Quote(ctx, req.Pickup, req.Destination)
	if err != nil {
		return nil, err
	}

	fare := quote.Solo
	if req.Class == domain.RideClassShare {
		fare = quote.Share
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}

	ride := &domain.Ride{
		ID:          uuid.New().String(),
		RiderID:     req.RiderID,
		Pickup:      req.Pickup,
		Destination: req.Destination,
		Class:       req.Class,
		Fare:        fare,
		Status:      domain.RideStatusPending,
		OTP:         otp,
		CreatedAt:   time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	return ride, nil
}

// ConfirmRide assigns a captain to a pending ride and transitions it to
// confirmed. A short Redis lock plus a compare-and-swap on status make
// sure two captains racing on the same pending ride cannot both win.
func (s *RideService) ConfirmRide(ctx context.Context, rideID, captainID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireRideLock(ctx, rideID, confirmLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrRideBeingConfirmed
		}
		defer s.lockStore.ReleaseRideLock(ctx, rideID)
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.Status != domain.RideStatusPending {
		return nil, ErrRideNotPending
	}

	// A captain may hold at most one confirmed or started ride.
	if _, err := s.rideRepo.GetActiveByCaptainID(ctx, captainID); err == nil {
		return nil, ErrCaptainHasActiveRide
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	err = s.rideRepo.UpdateStatus(ctx, rideID, domain.RideStatusPending, domain.RideStatusConfirmed, captainID)
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrRideNotPending
		}
		return nil, err
	}

	ride.Status = domain.RideStatusConfirmed
	ride.CaptainID = captainID

	return ride, nil
}

// StartRide transitions a confirmed ride to started. The caller must be
// the assigned captain and must present the exact OTP generated at
// creation.
func (s *RideService) StartRide(ctx context.Context, rideID, otp, captainID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.Status != domain.RideStatusConfirmed {
		return nil, ErrRideNotConfirmed
	}

	if ride.CaptainID != captainID {
		return nil, ErrCaptainNotAssigned
	}

	if ride.OTP != otp {
		return nil, ErrOTPMismatch
	}

	err = s.rideRepo.UpdateStatus(ctx, rideID, domain.RideStatusConfirmed, domain.RideStatusStarted, "")
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrRideNotConfirmed
		}
		return nil, err
	}

	ride.Status = domain.RideStatusStarted

	return ride, nil
}

// EndRide transitions a started ride to completed. The caller must be
// the assigned captain.
func (s *RideService) EndRide(ctx context.Context, rideID, captainID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.Status != domain.RideStatusStarted {
		return nil, ErrRideNotStarted
	}

	if ride.CaptainID != captainID {
		return nil, ErrCaptainNotAssigned
	}

	err = s.rideRepo.UpdateStatus(ctx, rideID, domain.RideStatusStarted, domain.RideStatusCompleted, "")
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrRideNotStarted
		}
		return nil, err
	}

	ride.Status = domain.RideStatusCompleted

	return ride, nil
}

// CancelRide cancels a pending or confirmed ride. Only the requesting
// rider may cancel.
func (s *RideService) CancelRide(ctx context.Context, rideID, riderID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	if riderID == "" {
		return nil, ErrInvalidRiderID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.RiderID != riderID {
		return nil, ErrNotRideOwner
	}

	if !ride.CanTransitionTo(domain.RideStatusCancelled) {
		return nil, ErrRideNotCancellable
	}

	err = s.rideRepo.UpdateStatus(ctx, rideID, ride.Status, domain.RideStatusCancelled, "")
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrRideNotCancellable
		}
		return nil, err
	}

	ride.Status = domain.RideStatusCancelled

	return ride, nil
}

// GetActiveRide returns the captain's single confirmed or started ride.
func (s *RideService) GetActiveRide(ctx context.Context, captainID string) (*domain.Ride, error) {
	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}

	return s.rideRepo.GetActiveByCaptainID(ctx, captainID)
}

// GetRideHistory returns up to the 10 most recent completed rides for
// the captain, newest first.
func (s *RideService) GetRideHistory(ctx context.Context, captainID string) ([]*domain.Ride, error) {
	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}

	return s.rideRepo.GetCompletedByCaptainID(ctx, captainID, rideHistoryLimit)
}
