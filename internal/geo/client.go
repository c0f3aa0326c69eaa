package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

// Client is an HTTP client for a Nominatim-style geocoding service.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a new geocoding client. Every provider call is
// bounded by the given timeout; expiry surfaces as a ProviderError.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements Provider.
var _ Provider = (*Client)(nil)

// place is the provider's search result document.
type place struct {
	PlaceID     json.Number `json:"place_id"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
	DisplayName string      `json:"display_name"`
}

// ResolveCoordinates converts an address into coordinates using the
// first search hit. It returns ErrAddressNotFound when the provider has
// no match.
func (c *Client) ResolveCoordinates(ctx context.Context, address string) (Coordinates, error) {
	places, err := c.search(ctx, address, 1)
	if err != nil {
		return Coordinates{}, err
	}

	if len(places) == 0 {
		return Coordinates{}, ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Coordinates{}, &ProviderError{Op: "parse latitude", Err: err}
	}

	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Coordinates{}, &ProviderError{Op: "parse longitude", Err: err}
	}

	return Coordinates{Lat: lat, Lng: lng}, nil
}

// Suggestions returns up to five autocomplete matches for the input.
// No matches is an empty slice, never an error.
func (c *Client) Suggestions(ctx context.Context, input string) ([]Suggestion, error) {
	places, err := c.search(ctx, input, 5)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(places))
	for _, p := range places {
		main, secondary, _ := strings.Cut(p.DisplayName, ",")
		suggestions = append(suggestions, Suggestion{
			PlaceID:       p.PlaceID.String(),
			Description:   p.DisplayName,
			MainText:      strings.TrimSpace(main),
			SecondaryText: strings.TrimSpace(secondary),
		})
	}

	return suggestions, nil
}

// EstimateTrip resolves both endpoints and derives distance and travel
// time. Distance is the great-circle distance rounded up to one decimal
// place; duration assumes an average speed of 30 km/h, rounded up to
// the nearest whole minute.
func (c *Client) EstimateTrip(ctx context.Context, origin, destination string) (TripEstimate, error) {
	from, err := c.ResolveCoordinates(ctx, origin)
	if err != nil {
		return TripEstimate{}, err
	}

	to, err := c.ResolveCoordinates(ctx, destination)
	if err != nil {
		return TripEstimate{}, err
	}

	distance := HaversineKm(from.Lat, from.Lng, to.Lat, to.Lng)

	return TripEstimate{
		DistanceKm:  distance,
		DurationMin: DurationMinutes(distance),
	}, nil
}

// search performs a provider search query and decodes the result list.
func (c *Client) search(ctx context.Context, query string, limit int) ([]place, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=%d",
		c.baseURL, url.QueryEscape(query), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ProviderError{Op: "build request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Op: "search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Op: "search", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, &ProviderError{Op: "decode response", Err: err}
	}

	return places, nil
}
