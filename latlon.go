package jgd

import (
	"fmt"
	"math"
)

// Angular unit factors relative to one decimal degree.
const (
	secsPerDegree      = 3_600.0
	milliSecsPerDegree = secsPerDegree * 1_000
	microSecsPerDegree = milliSecsPerDegree * 1_000
)

// LatLon is a latitude and longitude pair in decimal degrees.
//
// The zero value is the intersection of the equator and the prime meridian,
// which is never a valid Japanese coordinate; treat it as "unset".
type LatLon struct {
	Lat float64
	Lon float64
}

// FromSecs returns a LatLon from arcsecond values.
//
//	p := jgd.FromSecs(126000, 486000) // 35N 135E
func FromSecs(lat, lon float64) LatLon {
	return LatLon{Lat: lat / secsPerDegree, Lon: lon / secsPerDegree}
}

// FromMilliSecs returns a LatLon from milli-arcsecond values.
func FromMilliSecs(lat, lon float64) LatLon {
	return LatLon{Lat: lat / milliSecsPerDegree, Lon: lon / milliSecsPerDegree}
}

// FromMicroSecs returns a LatLon from micro-arcsecond values.
func FromMicroSecs(lat, lon float64) LatLon {
	return LatLon{Lat: lat / microSecsPerDegree, Lon: lon / microSecsPerDegree}
}

// Add returns p shifted by q on both axes.
func (p LatLon) Add(q LatLon) LatLon {
	return LatLon{Lat: p.Lat + q.Lat, Lon: p.Lon + q.Lon}
}

// Sub returns p minus q on both axes.
func (p LatLon) Sub(q LatLon) LatLon {
	return LatLon{Lat: p.Lat - q.Lat, Lon: p.Lon - q.Lon}
}

// ToDms converts both axes to degrees, minutes, seconds.
func (p LatLon) ToDms() (lat, lon Dms) {
	return DmsFromDegrees(p.Lat), DmsFromDegrees(p.Lon)
}

// FromDms returns a LatLon from per-axis degrees, minutes, seconds.
//
//	// 日本経緯度原点 (the Japanese geodetic origin)
//	p := jgd.FromDms(jgd.Dms{35, 39, 29.1572}, jgd.Dms{139, 44, 28.8869})
func FromDms(lat, lon Dms) LatLon {
	return LatLon{Lat: lat.Degrees(), Lon: lon.Degrees()}
}

// validate checks that p is inside the representable degree range.
// The reversed hint catches the common (lon, lat) argument-order mistake.
func (p LatLon) validate() *DegreesError {
	if inDegreesRange(p.Lat, p.Lon) {
		return nil
	}
	return &DegreesError{PossiblyReversed: inDegreesRange(p.Lon, p.Lat)}
}

func inDegreesRange(lat, lon float64) bool {
	return math.Abs(lat) <= 90 && math.Abs(lon) <= 180
}

// Dms is an angle in degrees, minutes, seconds.
type Dms struct {
	D int
	M int
	S float64
}

// Degrees converts to decimal degrees.
func (d Dms) Degrees() float64 {
	return float64(d.D) + float64(d.M)/60 + d.S/3_600
}

// DmsFromDegrees splits decimal degrees into degrees, minutes, seconds.
// Components keep the sign of deg.
func DmsFromDegrees(deg float64) Dms {
	return Dms{
		D: int(deg),
		M: int(math.Mod(deg*60, 60)),
		S: math.Mod(deg*3_600, 60),
	}
}

// String formats as d°m's".
func (d Dms) String() string {
	return fmt.Sprintf("%d°%d′%.5f″", d.D, d.M, d.S)
}

// DegreesError reports a latitude or longitude outside ±90 / ±180 degrees.
type DegreesError struct {
	// PossiblyReversed is set when swapping latitude and longitude would
	// produce a valid pair, the most common caller mistake.
	PossiblyReversed bool
}

func (e *DegreesError) Error() string {
	if e.PossiblyReversed {
		return "degrees out of range; may be lat and lon reversed?"
	}
	return "degrees out of range"
}
