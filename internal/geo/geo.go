// Package geo computes great-circle distances between WGS84 coordinates.
//
// All computations are done in meters; kilometer figures are converted at
// the boundary so every caller shares the same formula and Earth radius.
package geo

import (
	"math"

	"github.com/banshee-data/trackstats/internal/units"
)

// EarthRadiusMeters is the mean Earth radius used by the Haversine formula.
const EarthRadiusMeters = 6371e3

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the Haversine distance between a and b.
func Distance(a, b Point) units.Distance {
	phi1 := toRadians(a.Lat)
	phi2 := toRadians(b.Lat)
	deltaPhi := toRadians(b.Lat - a.Lat)
	deltaLambda := toRadians(b.Lon - a.Lon)

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return units.Meters(EarthRadiusMeters * c)
}

// DistanceKm returns the Haversine distance between a and b in kilometers.
func DistanceKm(a, b Point) float64 {
	return Distance(a, b).ToKM()
}

// Within reports whether b lies within radiusKm kilometers of a.
func Within(a, b Point, radiusKm float64) bool {
	return DistanceKm(a, b) <= radiusKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
