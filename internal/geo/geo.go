package geo

import (
	"context"
	"errors"
	"fmt"
)

// ErrAddressNotFound is returned when the provider has no match for an address.
var ErrAddressNotFound = errors.New("no coordinates found for address")

// ProviderError wraps a transport, auth, or decoding failure from the
// geocoding provider. Provider calls are never retried automatically;
// the caller may retry the whole operation.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("geo provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Suggestion is a single autocomplete result.
type Suggestion struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// TripEstimate is the distance and travel time between two addresses.
type TripEstimate struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin int     `json:"duration_min"`
}

// Provider resolves addresses and estimates trips.
type Provider interface {
	ResolveCoordinates(ctx context.Context, address string) (Coordinates, error)
	Suggestions(ctx context.Context, input string) ([]Suggestion, error)
	EstimateTrip(ctx context.Context, origin, destination string) (TripEstimate, error)
}
