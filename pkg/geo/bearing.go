package geo

import "math"

// PlanarBearing returns the angle in degrees of the vector (fromX,fromY) ->
// (toX,toY) in the projection plane, measured counter-clockwise from the
// +X (east) axis and normalised to [-180, 180).
func PlanarBearing(fromX, fromY, toX, toY float64) float64 {
	deg := math.Atan2(toY-fromY, toX-fromX) * 180.0 / math.Pi
	return NormalizeBearing(deg)
}

// NormalizeBearing wraps an angle in degrees into [-180, 180).
func NormalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg >= 180.0 {
		deg -= 360.0
	}
	if deg < -180.0 {
		deg += 360.0
	}
	return deg
}
