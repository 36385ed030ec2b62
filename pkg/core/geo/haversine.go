package geo

import (
	"math"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
)

const earthRadiusKm = 6371

// DistanceKm calculates the Haversine (great-circle) distance between two
// points on the Earth's surface, in kilometers.
//
// The result is rounded to one decimal place. Scoring and display both use
// this rounded value, so distance comparisons are consistent everywhere.
func DistanceKm(a, b model.Point) float64 {
	latDiff := (b.Latitude - a.Latitude) * (math.Pi / 180)
	lonDiff := (b.Longitude - a.Longitude) * (math.Pi / 180)
	lat1 := a.Latitude * (math.Pi / 180)
	lat2 := b.Latitude * (math.Pi / 180)

	// h is the square of half the chord length between the points
	h := math.Sin(latDiff/2)*math.Sin(latDiff/2) +
		math.Sin(lonDiff/2)*math.Sin(lonDiff/2)*math.Cos(lat1)*math.Cos(lat2)
	// c is the angular distance in radians
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(earthRadiusKm*c*10) / 10
}
