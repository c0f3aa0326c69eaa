package tests

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"hail/internal/domain"
	"hail/internal/geo"
	"hail/internal/service"
)

// ──────────────────────────────────────────────
// 1. RIDE CREATION
// ──────────────────────────────────────────────

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

// One degree of longitude on the equator is 111.2 km after the
// one-decimal round-up, so the fares below are exact.
func equatorProvider() *MockProvider {
	return NewMockProvider(map[string]geo.Coordinates{
		"MG Road": {Lat: 0, Lng: 0},
		"Airport": {Lat: 0, Lng: 1},
	})
}

func newRideService(repo *MockRideRepository, provider geo.Provider) *service.RideService {
	return service.NewRideService(repo, NewMockLockStore(), service.NewFareService(provider))
}

func TestRideCreation_PendingWithPricedFareAndOTP(t *testing.T) {
	t.Parallel()

	repo := NewMockRideRepository()
	svc := newRideService(repo, equatorProvider())

	ride, err := svc.CreateRide(context.Background(), service.CreateRideRequest{
		RiderID:     "rider-1",
		Pickup:      "MG Road",
		Destination: "Airport",
		Class:       domain.RideClassSolo,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.Status != domain.RideStatusPending {
		t.Errorf("expected status pending, got %s", ride.Status)
	}
	if ride.CaptainID != "" {
		t.Errorf("expected no captain on a new ride, got %q", ride.CaptainID)
	}
	if ride.Fare != 1698 {
		t.Errorf("expected solo fare 1698 for 111.2 km, got %d", ride.Fare)
	}
	if !otpPattern.MatchString(ride.OTP) {
		t.Errorf("expected a 6-digit OTP, got %q", ride.OTP)
	}

	stored, err := repo.GetByID(context.Background(), ride.ID)
	if err != nil {
		t.Fatalf("expected ride to be persisted: %v", err)
	}
	if stored.OTP != ride.OTP {
		t.Errorf("persisted OTP %q differs from returned OTP %q", stored.OTP, ride.OTP)
	}
}

func TestRideCreation_ShareClassUsesShareFare(t *testing.T) {
	t.Parallel()

	svc := newRideService(NewMockRideRepository(), equatorProvider())

	ride, err := svc.CreateRide(context.Background(), service.CreateRideRequest{
		RiderID:     "rider-1",
		Pickup:      "MG Road",
		Destination: "Airport",
		Class:       domain.RideClassShare,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.Fare != 1132 {
		t.Errorf("expected share fare 1132 for 111.2 km, got %d", ride.Fare)
	}
}

func TestRideCreation_ValidationErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		req     service.CreateRideRequest
		wantErr error
	}{
		{
			name: "missing rider",
			req: service.CreateRideRequest{
				Pickup:      "MG Road",
				Destination: "Airport",
				Class:       domain.RideClassSolo,
			},
			wantErr: service.ErrInvalidRiderID,
		},
		{
			name: "missing pickup",
			req: service.CreateRideRequest{
				RiderID:     "rider-1",
				Destination: "Airport",
				Class:       domain.RideClassSolo,
			},
			wantErr: service.ErrMissingPickup,
		},
		{
			name: "missing destination",
			req: service.CreateRideRequest{
				RiderID: "rider-1",
				Pickup:  "MG Road",
				Class:   domain.RideClassSolo,
			},
			wantErr: service.ErrMissingDestination,
		},
		{
			name: "unknown ride class",
			req: service.CreateRideRequest{
				RiderID:     "rider-1",
				Pickup:      "MG Road",
				Destination: "Airport",
				Class:       domain.RideClass("premium"),
			},
			wantErr: service.ErrInvalidRideClass,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := NewMockRideRepository()
			svc := newRideService(repo, equatorProvider())

			_, err := svc.CreateRide(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if repo.Len() != 0 {
				t.Errorf("expected no persisted rides, got %d", repo.Len())
			}
		})
	}
}

func TestRideCreation_NothingPersistedWhenPricingFails(t *testing.T) {
	t.Parallel()

	repo := NewMockRideRepository()
	provider := equatorProvider()
	provider.ResolveError = &geo.ProviderError{Op: "search", Err: errors.New("upstream down")}
	svc := newRideService(repo, provider)

	_, err := svc.CreateRide(context.Background(), service.CreateRideRequest{
		RiderID:     "rider-1",
		Pickup:      "MG Road",
		Destination: "Airport",
		Class:       domain.RideClassSolo,
	})

	var provErr *geo.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected provider error to propagate, got %v", err)
	}
	if repo.Len() != 0 {
		t.Errorf("expected no persisted rides after pricing failure, got %d", repo.Len())
	}
}

func TestRideCreation_UnresolvableAddress(t *testing.T) {
	t.Parallel()

	repo := NewMockRideRepository()
	svc := newRideService(repo, equatorProvider())

	_, err := svc.CreateRide(context.Background(), service.CreateRideRequest{
		RiderID:     "rider-1",
		Pickup:      "Nowhere Lane",
		Destination: "Airport",
		Class:       domain.RideClassSolo,
	})
	if !errors.Is(err, geo.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
	if repo.Len() != 0 {
		t.Errorf("expected no persisted rides, got %d", repo.Len())
	}
}
