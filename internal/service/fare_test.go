package service

import (
	"context"
	"errors"
	"testing"

	"hail/internal/domain"
	"hail/internal/geo"
)

func TestComputeFare_ReferenceValues(t *testing.T) {
	testCases := []struct {
		name       string
		distanceKm float64
		class      domain.RideClass
		want       int
	}{
		{"solo zero distance", 0, domain.RideClassSolo, 30},
		{"share zero distance", 0, domain.RideClassShare, 20},
		{"solo 10 km", 10, domain.RideClassSolo, 180},
		{"share 10 km", 10, domain.RideClassShare, 120},
		{"solo 12.3 km", 12.3, domain.RideClassSolo, 215},
		{"share 12.3 km", 12.3, domain.RideClassShare, 143},
		{"solo fractional rounds up", 0.1, domain.RideClassSolo, 32},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeFare(tc.distanceKm, tc.class)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ComputeFare(%f, %s) = %d, want %d", tc.distanceKm, tc.class, got, tc.want)
			}
		})
	}
}

func TestComputeFare_NeverBelowMinimum(t *testing.T) {
	for _, class := range []domain.RideClass{domain.RideClassSolo, domain.RideClassShare} {
		for _, d := range []float64{0, 0.001, 0.1, 1, 5, 100} {
			fare, err := ComputeFare(d, class)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fare < minFare[class] {
				t.Errorf("fare %d for %f km %s below minimum %d", fare, d, class, minFare[class])
			}
		}
	}
}

func TestComputeFare_MonotonicInDistance(t *testing.T) {
	distances := []float64{0, 0.5, 1, 2.7, 5, 12.3, 50, 200}

	for _, class := range []domain.RideClass{domain.RideClassSolo, domain.RideClassShare} {
		prev := -1
		for _, d := range distances {
			fare, err := ComputeFare(d, class)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fare < prev {
				t.Errorf("fare decreased from %d to %d at %f km (%s)", prev, fare, d, class)
			}
			prev = fare
		}
	}
}

func TestComputeFare_InvalidClass(t *testing.T) {
	if _, err := ComputeFare(5, "luxury"); !errors.Is(err, ErrInvalidRideClass) {
		t.Errorf("expected ErrInvalidRideClass, got %v", err)
	}
}

// stubProvider returns a fixed estimate or error for fare quote tests.
type stubProvider struct {
	estimate geo.TripEstimate
	err      error
}

func (s *stubProvider) ResolveCoordinates(ctx context.Context, address string) (geo.Coordinates, error) {
	return geo.Coordinates{}, s.err
}

func (s *stubProvider) Suggestions(ctx context.Context, input string) ([]geo.Suggestion, error) {
	return nil, s.err
}

func (s *stubProvider) EstimateTrip(ctx context.Context, origin, destination string) (geo.TripEstimate, error) {
	return s.estimate, s.err
}

func TestQuote_PricesBothClassesFromOneEstimate(t *testing.T) {
	fareService := NewFareService(&stubProvider{
		estimate: geo.TripEstimate{DistanceKm: 12.3, DurationMin: 25},
	})

	quote, err := fareService.Quote(context.Background(), "A", "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Solo != 215 {
		t.Errorf("solo fare = %d, want 215", quote.Solo)
	}
	if quote.Share != 143 {
		t.Errorf("share fare = %d, want 143", quote.Share)
	}
	if quote.DistanceKm != 12.3 {
		t.Errorf("distance = %f, want 12.3", quote.DistanceKm)
	}
	if quote.DurationMin != 25 {
		t.Errorf("duration = %d, want 25", quote.DurationMin)
	}
}

func TestQuote_ValidatesAddresses(t *testing.T) {
	fareService := NewFareService(&stubProvider{})

	if _, err := fareService.Quote(context.Background(), "", "B"); !errors.Is(err, ErrMissingPickup) {
		t.Errorf("expected ErrMissingPickup, got %v", err)
	}

	if _, err := fareService.Quote(context.Background(), "A", ""); !errors.Is(err, ErrMissingDestination) {
		t.Errorf("expected ErrMissingDestination, got %v", err)
	}
}

func TestQuote_PropagatesProviderFailure(t *testing.T) {
	providerErr := &geo.ProviderError{Op: "search", Err: errors.New("boom")}
	fareService := NewFareService(&stubProvider{err: providerErr})

	_, err := fareService.Quote(context.Background(), "A", "B")
	if !errors.Is(err, providerErr) {
		t.Errorf("expected provider error to propagate, got %v", err)
	}
}
