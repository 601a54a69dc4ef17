package jgd

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// ecef is an Earth-centered, Earth-fixed cartesian coordinate in meters, the
// intermediate frame for the closed-form three-parameter transform.
type ecef struct {
	x, y, z float64
}

func (c ecef) add(o ecef) ecef { return ecef{x: c.x + o.x, y: c.y + o.y, z: c.z + o.z} }
func (c ecef) sub(o ecef) ecef { return ecef{x: c.x - o.x, y: c.y - o.y, z: c.z - o.z} }

// ellipsoid is a reference solid modeling the Earth's shape.
type ellipsoid struct {
	equatorialRadius float64 // meters
	polarRadius      float64 // meters
}

var (
	// grs80 underlies the world geodetic datums JGD2000 and JGD2011.
	grs80 = ellipsoid{equatorialRadius: 6378137.0, polarRadius: 6356752.31424518}
	// bessel underlies the Tokyo Datum.
	bessel = ellipsoid{equatorialRadius: 6377397.155, polarRadius: 6356078.963}
)

// toECEF converts a geodetic coordinate on the ellipsoid surface to ECEF.
func (e ellipsoid) toECEF(p LatLon) ecef {
	lat := p.Lat * degToRad
	lon := p.Lon * degToRad
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)
	n := e.equatorialRadius / math.Sqrt(1-e.equatorialEccentricity()*sinLat*sinLat)
	return ecef{
		x: n * cosLat * cosLon,
		y: n * cosLat * sinLon,
		z: n * (1 - e.equatorialEccentricity()) * sinLat,
	}
}

// toGeodetic converts an ECEF coordinate back to geodetic degrees using
// Bowring's closed approximation, accurate well below the millimeter for
// points near the ellipsoid surface.
func (e ellipsoid) toGeodetic(c ecef) LatLon {
	p := math.Hypot(c.x, c.y)
	theta := math.Atan(c.z * e.equatorialRadius / (p * e.polarRadius))
	sinTheta, cosTheta := math.Sincos(theta)
	lat := math.Atan2(
		c.z+e.polarEccentricity()*e.polarRadius*sinTheta*sinTheta*sinTheta,
		p-e.equatorialEccentricity()*e.equatorialRadius*cosTheta*cosTheta*cosTheta,
	)
	lon := math.Atan2(c.y, c.x)
	return LatLon{Lat: lat * radToDeg, Lon: lon * radToDeg}
}

// equatorialEccentricity is the first eccentricity squared, (a²-b²)/a².
func (e ellipsoid) equatorialEccentricity() float64 {
	a2 := e.equatorialRadius * e.equatorialRadius
	b2 := e.polarRadius * e.polarRadius
	return (a2 - b2) / a2
}

// polarEccentricity is the second eccentricity squared, (a²-b²)/b².
func (e ellipsoid) polarEccentricity() float64 {
	a2 := e.equatorialRadius * e.equatorialRadius
	b2 := e.polarRadius * e.polarRadius
	return (a2 - b2) / b2
}
