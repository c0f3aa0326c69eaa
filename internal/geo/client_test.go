package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestResolveCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "MG Road, Bangalore" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"place_id": 42, "lat": "12.9752", "lon": "77.6057", "display_name": "MG Road, Bangalore, India"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	coords, err := client.ResolveCoordinates(context.Background(), "MG Road, Bangalore")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if coords.Lat != 12.9752 || coords.Lng != 77.6057 {
		t.Errorf("unexpected coordinates %+v", coords)
	}
}

func TestResolveCoordinates_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.ResolveCoordinates(context.Background(), "nowhere at all")
	if !errors.Is(err, ErrAddressNotFound) {
		t.Errorf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestResolveCoordinates_ProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.ResolveCoordinates(context.Background(), "MG Road")

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}

func TestResolveCoordinates_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)

	_, err := client.ResolveCoordinates(context.Background(), "MG Road")

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError on timeout, got %v", err)
	}
}

func TestSuggestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("unexpected limit %q", got)
		}
		w.Write([]byte(`[
			{"place_id": 1, "lat": "12.9", "lon": "77.6", "display_name": "Indiranagar, Bangalore, Karnataka"},
			{"place_id": 2, "lat": "12.8", "lon": "77.5", "display_name": "Indiranagar Metro"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	suggestions, err := client.Suggestions(context.Background(), "Indiranagar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}

	first := suggestions[0]
	if first.MainText != "Indiranagar" {
		t.Errorf("unexpected main text %q", first.MainText)
	}
	if first.SecondaryText != "Bangalore, Karnataka" {
		t.Errorf("unexpected secondary text %q", first.SecondaryText)
	}

	second := suggestions[1]
	if second.MainText != "Indiranagar Metro" || second.SecondaryText != "" {
		t.Errorf("unexpected second suggestion %+v", second)
	}
}

func TestSuggestions_NoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	suggestions, err := client.Suggestions(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("expected empty slice, got %v", suggestions)
	}
}

func TestEstimateTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "A":
			w.Write([]byte(`[{"place_id": 1, "lat": "12.9716", "lon": "77.5946", "display_name": "A"}]`))
		case "B":
			w.Write([]byte(`[{"place_id": 2, "lat": "13.0827", "lon": "80.2707", "display_name": "B"}]`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	estimate, err := client.EstimateTrip(context.Background(), "A", "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := HaversineKm(12.9716, 77.5946, 13.0827, 80.2707)
	if estimate.DistanceKm != want {
		t.Errorf("distance = %f, want %f", estimate.DistanceKm, want)
	}
	if estimate.DurationMin != DurationMinutes(want) {
		t.Errorf("duration = %d, want %d", estimate.DurationMin, DurationMinutes(want))
	}
}

func TestEstimateTrip_UnresolvableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "A" {
			w.Write([]byte(`[{"place_id": 1, "lat": "12.9716", "lon": "77.5946", "display_name": "A"}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.EstimateTrip(context.Background(), "A", "unknown")
	if !errors.Is(err, ErrAddressNotFound) {
		t.Errorf("expected ErrAddressNotFound, got %v", err)
	}
}
