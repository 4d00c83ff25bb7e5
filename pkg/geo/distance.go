package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

const (
	earthRadiusKM = 6371.0
	earthRadiusM  = 6371007
)

func EuclideanDistance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// CalculateHaversineDistance distance in km between two WGS84 coordinates.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	longOne = degreeToRadians(longOne)
	latTwo = degreeToRadians(latTwo)
	longTwo = degreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// SphericalDistanceM distance in metres on the s2 sphere. Used to sanity
// check projected edge lengths against the unprojected geometry at load time.
func SphericalDistanceM(latOne, longOne, latTwo, longTwo float64) float64 {
	p1 := s2.LatLngFromDegrees(latOne, longOne)
	p2 := s2.LatLngFromDegrees(latTwo, longTwo)
	return p1.Distance(p2).Radians() * earthRadiusM
}
