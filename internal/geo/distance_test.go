package geo

import (
	"math"
	"testing"
)

func TestHaversineKm_ZeroDistance(t *testing.T) {
	if d := HaversineKm(12.9716, 77.5946, 12.9716, 77.5946); d != 0 {
		t.Errorf("expected 0 for identical points, got %f", d)
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Bangalore to Mysore is roughly 130-140 km great-circle.
	d := HaversineKm(12.9716, 77.5946, 12.2958, 76.6394)
	if d < 125 || d > 145 {
		t.Errorf("unexpected distance %f", d)
	}
}

func TestHaversineKm_RoundsUpToOneDecimal(t *testing.T) {
	d := HaversineKm(12.9716, 77.5946, 12.9800, 77.6000)
	if math.Abs(d*10-math.Round(d*10)) > 1e-9 {
		t.Errorf("distance %f not rounded to one decimal place", d)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := HaversineKm(12.9716, 77.5946, 13.0827, 80.2707)
	b := HaversineKm(13.0827, 80.2707, 12.9716, 77.5946)
	if a != b {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestDurationMinutes(t *testing.T) {
	testCases := []struct {
		distanceKm float64
		want       int
	}{
		{0, 0},
		{30, 60},   // one hour at 30 km/h
		{12.3, 25}, // 24.6 rounded up
		{0.5, 1},
	}

	for _, tc := range testCases {
		if got := DurationMinutes(tc.distanceKm); got != tc.want {
			t.Errorf("DurationMinutes(%f) = %d, want %d", tc.distanceKm, got, tc.want)
		}
	}
}
