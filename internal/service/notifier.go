package service

import (
	"errors"
	"log"
	"time"

	"hail/internal/domain"
	"hail/internal/ws"
)

// Realtime event names pushed to clients.
const (
	EventNewRide       = "new-ride"
	EventRideConfirmed = "ride-confirmed"
	EventRideStarted   = "ride-started"
	EventRideEnded     = "ride-ended"
	EventRideCancelled = "ride-cancelled"
)

// ConnectionRegistry is the slice of the realtime hub the dispatcher
// needs. The registry is injected; the dispatcher never reaches into
// ambient state.
type ConnectionRegistry interface {
	Send(accountID, event string, data any) error
	IsConnected(accountID string) bool
}

// RideEvent is the payload attached to every ride lifecycle event. The
// OTP is deliberately absent: the rider already holds it from the
// creation response, and captains must obtain it in person.
type RideEvent struct {
	RideID      string  `json:"ride_id"`
	RiderID     string  `json:"rider_id"`
	Pickup      string  `json:"pickup"`
	Destination string  `json:"destination"`
	Class       string  `json:"ride_class"`
	Fare        int     `json:"fare"`
	Status      string  `json:"status"`
	CaptainID   string  `json:"captain_id,omitempty"`
	SentAt      string  `json:"sent_at"`
}

// Notifier delivers ride lifecycle events over the live-connection
// registry. Delivery is at-most-once and fire-and-forget: each dispatch
// runs in its own goroutine after the caller's state change has
// committed, failures are logged and swallowed, and no dispatch outcome
// ever reaches the lifecycle caller.
type Notifier struct {
	registry ConnectionRegistry
}

// NewNotifier creates a new Notifier.
func NewNotifier(registry ConnectionRegistry) *Notifier {
	return &Notifier{registry: registry}
}

// NotifyNewRide fans a freshly created ride out to every candidate
// captain.
func (n *Notifier) NotifyNewRide(ride *domain.Ride, captainIDs []string) {
	payload := rideEvent(ride)
	for _, captainID := range captainIDs {
		go n.push(captainID, EventNewRide, payload)
	}
}

// NotifyRideConfirmed tells the rider a captain took their ride.
func (n *Notifier) NotifyRideConfirmed(ride *domain.Ride) {
	go n.push(ride.RiderID, EventRideConfirmed, rideEvent(ride))
}

// NotifyRideStarted tells the rider the trip is underway.
func (n *Notifier) NotifyRideStarted(ride *domain.Ride) {
	go n.push(ride.RiderID, EventRideStarted, rideEvent(ride))
}

// NotifyRideEnded tells the rider the trip is complete.
func (n *Notifier) NotifyRideEnded(ride *domain.Ride) {
	go n.push(ride.RiderID, EventRideEnded, rideEvent(ride))
}

// NotifyRideCancelled tells the assigned captain, if any, that the
// rider cancelled.
func (n *Notifier) NotifyRideCancelled(ride *domain.Ride) {
	if ride.CaptainID == "" {
		return
	}
	go n.push(ride.CaptainID, EventRideCancelled, rideEvent(ride))
}

// push sends one event, logging rather than surfacing failures. A
// recipient without a live connection simply misses the event.
func (n *Notifier) push(accountID, event string, payload RideEvent) {
	err := n.registry.Send(accountID, event, payload)
	if err == nil {
		return
	}

	if errors.Is(err, ws.ErrNotConnected) {
		log.Printf("[DISPATCH] dropped %s for %s: not connected", event, accountID)
		return
	}

	log.Printf("[DISPATCH] failed to deliver %s to %s: %v", event, accountID, err)
}

func rideEvent(ride *domain.Ride) RideEvent {
	return RideEvent{
		RideID:      ride.ID,
		RiderID:     ride.RiderID,
		Pickup:      ride.Pickup,
		Destination: ride.Destination,
		Class:       string(ride.Class),
		Fare:        ride.Fare,
		Status:      string(ride.Status),
		CaptainID:   ride.CaptainID,
		SentAt:      time.Now().UTC().Format(time.RFC3339),
	}
}
