package geo

import "math"

const (
	earthRadiusKm = 6371

	// averageSpeedKmh is the assumed average travel speed used to derive
	// duration when the provider supplies no travel time.
	averageSpeedKmh = 30
)

// HaversineKm returns the great-circle distance between two points in
// kilometers, rounded up to one decimal place.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Ceil(earthRadiusKm*c*10) / 10
}

// DurationMinutes estimates travel time for a distance in kilometers,
// rounded up to the nearest whole minute.
func DurationMinutes(distanceKm float64) int {
	return int(math.Ceil(distanceKm / averageSpeedKmh * 60))
}

func toRad(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
