package service

import (
	"context"
	"math"

	"hail/internal/domain"
	"hail/internal/geo"
)

// Fare constants in whole rupees.
var (
	baseFare = map[domain.RideClass]float64{
		domain.RideClassSolo:  30,
		domain.RideClassShare: 20,
	}
	perKmRate = map[domain.RideClass]float64{
		domain.RideClassSolo:  15,
		domain.RideClassShare: 10,
	}
	minFare = map[domain.RideClass]int{
		domain.RideClassSolo:  30,
		domain.RideClassShare: 20,
	}
)

// ComputeFare prices a trip of the given distance for a ride class:
// base + perKm * distance, rounded up to the nearest rupee and floored
// at the class minimum.
func ComputeFare(distanceKm float64, class domain.RideClass) (int, error) {
	if !domain.ValidRideClass(class) {
		return 0, ErrInvalidRideClass
	}

	fare := int(math.Ceil(baseFare[class] + perKmRate[class]*distanceKm))
	if fare < minFare[class] {
		fare = minFare[class]
	}

	return fare, nil
}

// FareQuote prices both ride classes for one trip so the rider can
// choose before committing.
type FareQuote struct {
	Solo        int     `json:"solo"`
	Share       int     `json:"share"`
	DistanceKm  float64 `json:"distance_km"`
	DurationMin int     `json:"duration_min"`
}

// FareService computes fare quotes from provider trip estimates.
type FareService struct {
	provider geo.Provider
}

// NewFareService creates a new FareService.
func NewFareService(provider geo.Provider) *FareService {
	return &FareService{provider: provider}
}

// Quote resolves the trip once and prices both classes from the same
// distance estimate. Provider failures propagate unchanged.
func (s *FareService) Quote(ctx context.Context, pickup, destination string) (*FareQuote, error) {
	if pickup == "" {
		return nil, ErrMissingPickup
	}

	if destination == "" {
		return nil, ErrMissingDestination
	}

	estimate, err := s.provider.EstimateTrip(ctx, pickup, destination)
	if err != nil {
		return nil, err
	}

	solo, err := ComputeFare(estimate.DistanceKm, domain.RideClassSolo)
	if err != nil {
		return nil, err
	}

	share, err := ComputeFare(estimate.DistanceKm, domain.RideClassShare)
	if err != nil {
		return nil, err
	}

	return &FareQuote{
		Solo:        solo,
		Share:       share,
		DistanceKm:  estimate.DistanceKm,
		DurationMin: estimate.DurationMin,
	}, nil
}
