package service

import "errors"

var (
	// ErrInvalidRiderID is returned when the rider ID is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidCaptainID is returned when the captain ID is empty.
	ErrInvalidCaptainID = errors.New("invalid captain id")

	// ErrInvalidRideID is returned when the ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrMissingPickup is returned when the pickup address is empty.
	ErrMissingPickup = errors.New("pickup address is required")

	// ErrMissingDestination is returned when the destination address is empty.
	ErrMissingDestination = errors.New("destination address is required")

	// ErrInvalidRideClass is returned for an unrecognized ride class.
	ErrInvalidRideClass = errors.New("invalid ride class")

	// ErrRideNotPending is returned when confirming a ride that is not pending.
	ErrRideNotPending = errors.New("ride is not pending")

	// ErrRideNotConfirmed is returned when starting a ride that is not confirmed.
	ErrRideNotConfirmed = errors.New("ride is not confirmed")

	// ErrRideNotStarted is returned when ending a ride that is not started.
	ErrRideNotStarted = errors.New("ride is not started")

	// ErrRideNotCancellable is returned when cancelling a ride that has
	// already started, completed, or been cancelled.
	ErrRideNotCancellable = errors.New("ride cannot be cancelled in current state")

	// ErrRideBeingConfirmed is returned when another captain holds the
	// confirmation lock for the ride.
	ErrRideBeingConfirmed = errors.New("ride is being confirmed by another captain")

	// ErrOTPMismatch is returned when the supplied OTP differs from the
	// one generated at ride creation.
	ErrOTPMismatch = errors.New("otp does not match")

	// ErrCaptainNotAssigned is returned when a captain operates on a
	// ride assigned to someone else.
	ErrCaptainNotAssigned = errors.New("captain not assigned to this ride")

	// ErrCaptainHasActiveRide is returned when a captain with an active
	// ride tries to confirm another one.
	ErrCaptainHasActiveRide = errors.New("captain already has an active ride")

	// ErrNotRideOwner is returned when a rider cancels a ride they did
	// not request.
	ErrNotRideOwner = errors.New("ride belongs to a different rider")

	// ErrInvalidLocation is returned when location coordinates are invalid.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrPhoneAlreadyRegistered is returned when registering with a
	// phone number that already has an account.
	ErrPhoneAlreadyRegistered = errors.New("phone number already registered")

	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
