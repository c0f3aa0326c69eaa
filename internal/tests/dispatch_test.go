package tests

import (
	"context"
	"testing"
	"time"

	"hail/internal/domain"
	"hail/internal/service"
)

// ──────────────────────────────────────────────
// 4. NOTIFICATION DISPATCH
// ──────────────────────────────────────────────

// waitFor polls cond until it holds or the deadline passes. Dispatch is
// asynchronous, so assertions on deliveries must wait.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func countEvents(registry *RecordingRegistry, event string) int {
	n := 0
	for _, sent := range registry.Sent() {
		if sent.Event == event {
			n++
		}
	}
	return n
}

func TestDispatch_NewRideFansOutToNearbyOnlineCaptains(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	locationStore := NewMockLocationStore()
	presenceStore := NewMockPresenceStore()

	// Three online captains within 2 km of the pickup, a fourth about
	// 5.5 km out, and a fifth nearby but offline.
	_ = locationStore.UpdateLocation(ctx, "captain-1", 0, 0.001)
	_ = locationStore.UpdateLocation(ctx, "captain-2", 0, 0.005)
	_ = locationStore.UpdateLocation(ctx, "captain-3", 0, 0.010)
	_ = locationStore.UpdateLocation(ctx, "captain-far", 0, 0.050)
	_ = locationStore.UpdateLocation(ctx, "captain-dark", 0, 0.002)
	for _, id := range []string{"captain-1", "captain-2", "captain-3", "captain-far"} {
		_ = presenceStore.SetOnline(ctx, id)
	}

	matcher := service.NewMatchingService(locationStore, presenceStore)
	registry := NewRecordingRegistry("captain-1", "captain-2", "captain-3", "captain-far", "captain-dark")
	notifier := service.NewNotifier(registry)

	ride := &domain.Ride{
		ID:      "ride-1",
		RiderID: "rider-1",
		Status:  domain.RideStatusPending,
	}

	matched, err := matcher.FindCaptainsNear(ctx, 0, 0, service.DefaultDispatchRadiusKm)
	if err != nil {
		t.Fatalf("matching: %v", err)
	}

	ids := make([]string, len(matched))
	for i, loc := range matched {
		ids[i] = loc.CaptainID
	}
	notifier.NotifyNewRide(ride, ids)

	if !waitFor(t, time.Second, func() bool {
		return countEvents(registry, service.EventNewRide) == 3
	}) {
		t.Fatalf("expected 3 new-ride deliveries, got %d", countEvents(registry, service.EventNewRide))
	}

	delivered := make(map[string]bool)
	for _, sent := range registry.Sent() {
		delivered[sent.AccountID] = true
	}
	for _, want := range []string{"captain-1", "captain-2", "captain-3"} {
		if !delivered[want] {
			t.Errorf("expected %s to receive new-ride", want)
		}
	}
	if delivered["captain-far"] {
		t.Error("captain beyond the dispatch radius received new-ride")
	}
	if delivered["captain-dark"] {
		t.Error("offline captain received new-ride")
	}
}

func TestDispatch_LifecycleEventsTargetTheRider(t *testing.T) {
	t.Parallel()

	registry := NewRecordingRegistry("rider-1", "captain-1")
	notifier := service.NewNotifier(registry)

	ride := &domain.Ride{
		ID:        "ride-1",
		RiderID:   "rider-1",
		CaptainID: "captain-1",
		Status:    domain.RideStatusConfirmed,
		OTP:       "123456",
	}

	notifier.NotifyRideConfirmed(ride)
	notifier.NotifyRideStarted(ride)
	notifier.NotifyRideEnded(ride)

	if !waitFor(t, time.Second, func() bool { return len(registry.Sent()) == 3 }) {
		t.Fatalf("expected 3 deliveries, got %d", len(registry.Sent()))
	}

	for _, sent := range registry.Sent() {
		if sent.AccountID != "rider-1" {
			t.Errorf("lifecycle event %s delivered to %s, want rider-1", sent.Event, sent.AccountID)
		}
	}
}

func TestDispatch_CancelNotifiesAssignedCaptainOnly(t *testing.T) {
	t.Parallel()

	registry := NewRecordingRegistry("rider-1", "captain-1")
	notifier := service.NewNotifier(registry)

	notifier.NotifyRideCancelled(&domain.Ride{
		ID:        "ride-1",
		RiderID:   "rider-1",
		CaptainID: "captain-1",
		Status:    domain.RideStatusCancelled,
	})

	if !waitFor(t, time.Second, func() bool { return len(registry.Sent()) == 1 }) {
		t.Fatalf("expected 1 delivery, got %d", len(registry.Sent()))
	}
	if got := registry.Sent()[0]; got.AccountID != "captain-1" || got.Event != service.EventRideCancelled {
		t.Errorf("unexpected delivery %+v", got)
	}

	// No captain assigned: nothing to deliver.
	quiet := NewRecordingRegistry("rider-1")
	service.NewNotifier(quiet).NotifyRideCancelled(&domain.Ride{
		ID:      "ride-2",
		RiderID: "rider-1",
		Status:  domain.RideStatusCancelled,
	})
	time.Sleep(50 * time.Millisecond)
	if len(quiet.Sent()) != 0 {
		t.Errorf("expected no deliveries for unassigned cancel, got %d", len(quiet.Sent()))
	}
}

func TestDispatch_FailuresDoNotReachTheCaller(t *testing.T) {
	t.Parallel()

	// Recipient without a live connection: the event is dropped and the
	// call returns immediately without error.
	registry := NewRecordingRegistry()
	notifier := service.NewNotifier(registry)

	done := make(chan struct{})
	go func() {
		notifier.NotifyRideConfirmed(&domain.Ride{ID: "ride-1", RiderID: "rider-gone"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notify blocked on a disconnected recipient")
	}

	time.Sleep(50 * time.Millisecond)
	if len(registry.Sent()) != 0 {
		t.Errorf("expected no deliveries, got %d", len(registry.Sent()))
	}
}
