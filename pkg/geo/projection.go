package geo

import "math"

// WGS84 ellipsoid
const (
	wgs84A = 6378137.0
	wgs84F = 1.0 / 298.257223563

	utmScaleFactor  = 0.9996
	utmFalseEasting = 500000.0
	utmFalseNorth   = 10000000.0
)

// UTMZone for a longitude in degrees.
func UTMZone(lon float64) int {
	zone := int(math.Floor((lon+180.0)/6.0)) + 1
	if zone < 1 {
		zone = 1
	}
	if zone > 60 {
		zone = 60
	}
	return zone
}

// ProjectUTM projects a WGS84 lat/lon (degrees) to UTM easting/northing in
// metres for the given zone. All coordinates in one run must use the same
// zone so that planar distances and bearings are consistent across the graph.
func ProjectUTM(lat, lon float64, zone int) (x, y float64) {
	e2 := wgs84F * (2 - wgs84F)
	ep2 := e2 / (1 - e2)

	phi := lat * math.Pi / 180.0
	lam := lon * math.Pi / 180.0
	lam0 := (float64(zone-1)*6.0 - 180.0 + 3.0) * math.Pi / 180.0

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	n := wgs84A / math.Sqrt(1-e2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	a := (lam - lam0) * cosPhi

	m := wgs84A * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*phi -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*phi) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*phi) -
		(35*e2*e2*e2/3072)*math.Sin(6*phi))

	x = utmScaleFactor*n*(a+(1-t+c)*a*a*a/6+
		(5-18*t+t*t+72*c-58*ep2)*a*a*a*a*a/120) + utmFalseEasting

	y = utmScaleFactor * (m + n*tanPhi*(a*a/2+
		(5-t+9*c+4*c*c)*a*a*a*a/24+
		(61-58*t+t*t+600*c-330*ep2)*a*a*a*a*a*a/720))

	if lat < 0 {
		y += utmFalseNorth
	}
	return x, y
}
