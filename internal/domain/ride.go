package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusPending   RideStatus = "pending"
	RideStatusConfirmed RideStatus = "confirmed"
	RideStatusStarted   RideStatus = "started"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// RideClass represents the pricing and matching category of a ride.
type RideClass string

const (
	RideClassSolo  RideClass = "solo"
	RideClassShare RideClass = "share"
)

// ValidRideClass reports whether the given class is recognized.
func ValidRideClass(class RideClass) bool {
	return class == RideClassSolo || class == RideClassShare
}

// Ride represents a ride request in the system.
//
// Status only moves forward: pending -> confirmed -> started -> completed,
// with cancelled reachable from pending or confirmed. Fare and OTP are
// fixed at creation and never recomputed.
type Ride struct {
	ID          string
	RiderID     string
	Pickup      string
	Destination string
	Class       RideClass
	Fare        int // whole rupees
	Status      RideStatus
	OTP         string // exactly 6 digits, zero-padded
	CaptainID   string // empty until the ride is confirmed
	CreatedAt   time.Time
}

// CanTransitionTo reports whether the ride may move to the given status.
func (r *Ride) CanTransitionTo(next RideStatus) bool {
	switch next {
	case RideStatusConfirmed:
		return r.Status == RideStatusPending
	case RideStatusStarted:
		return r.Status == RideStatusConfirmed
	case RideStatusCompleted:
		return r.Status == RideStatusStarted
	case RideStatusCancelled:
		return r.Status == RideStatusPending || r.Status == RideStatusConfirmed
	default:
		return false
	}
}
