// Package jgd transforms geodetic datums used in Japan.
//
// Coordinates surveyed on the older Tokyo Datum are carried to JGD2000 with
// the TKY2JGD parameter grid and on to JGD2011 with the
// touhokutaiheiyouoki2011 earthquake correction grid; where no grid
// parameters exist, a closed-form three-parameter transform takes over:
//
//	tokyo, err := jgd.NewTokyo(jgd.LatLon{Lat: 35.0, Lon: 135.0})
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := tokyo.ToJGD2000().ToJGD2011().Degrees()
//
// The transforms cover Japanese land only; coordinates at sea or abroad fall
// outside the parameter grids. Grid-based results match the GSI TKY2JGD and
// PatchJGD programs; the three-parameter transform matches proj's towgs84.
package jgd

import (
	"fmt"
	"strings"
)

// Tokyo is the older Japanese datum (Tokyo Datum, EPSG 4301), the frame of
// coordinates surveyed before 2002.
type Tokyo struct {
	degrees LatLon
}

// NewTokyo wraps a Tokyo Datum coordinate given in decimal degrees.
func NewTokyo(degrees LatLon) (Tokyo, error) {
	if err := degrees.validate(); err != nil {
		return Tokyo{}, err
	}
	return Tokyo{degrees: degrees}, nil
}

// ToJGD2000 transforms to JGD2000 using the TKY2JGD parameter grid, accurate
// to roughly 9cm within its coverage. Where the grid has no parameters, or no
// table is installed, the Tokyo97 three-parameter transform takes over with
// considerably lower accuracy. Intended for coordinates on the ground
// surface; the offset grows underground or in the air.
func (t Tokyo) ToJGD2000() JGD2000 {
	if grid, err := TKY2JGD(); err == nil {
		if shift, ok := grid.Bilinear(t.degrees); ok {
			return JGD2000{degrees: t.degrees.Add(shift)}
		}
	}
	return Tokyo97{degrees: t.degrees}.ToJGD2000()
}

// Degrees returns the coordinate in decimal degrees.
func (t Tokyo) Degrees() LatLon {
	return t.degrees
}

// Tokyo97 is the 1997 redefinition of the older Japanese datum: the same
// Bessel ellipsoid, positioned against the world geodetic frame by three
// translation parameters. Coordinates actually surveyed on the old datum are
// better served by Tokyo.
type Tokyo97 struct {
	degrees LatLon
}

// toITRF94 translates the Bessel-based Tokyo97 frame to ITRF94 in meters.
var toITRF94 = ecef{x: -146.414, y: 507.337, z: 680.507}

// NewTokyo97 wraps a Tokyo97 coordinate given in decimal degrees.
func NewTokyo97(degrees LatLon) (Tokyo97, error) {
	if err := degrees.validate(); err != nil {
		return Tokyo97{}, err
	}
	return Tokyo97{degrees: degrees}, nil
}

// ToJGD2000 applies the three-parameter translation through the ECEF frame.
// The parameters were derived around Tokyo, so the error grows with distance
// from it, largest in Hokkaido and Kyushu.
func (t Tokyo97) ToJGD2000() JGD2000 {
	itrf94 := bessel.toECEF(t.degrees).add(toITRF94)
	return JGD2000{degrees: grs80.toGeodetic(itrf94)}
}

// Degrees returns the coordinate in decimal degrees.
func (t Tokyo97) Degrees() LatLon {
	return t.degrees
}

// JGD2000 is Japanese Geodetic Datum 2000 (EPSG 4612), the world geodetic
// system adopted for surveying in Japan in 2002.
type JGD2000 struct {
	degrees LatLon
}

// NewJGD2000 wraps a JGD2000 coordinate given in decimal degrees.
func NewJGD2000(degrees LatLon) (JGD2000, error) {
	if err := degrees.validate(); err != nil {
		return JGD2000{}, err
	}
	return JGD2000{degrees: degrees}, nil
}

// ToJGD2011 applies the touhokutaiheiyouoki2011 correction for the crustal
// deformation of the 2011 Tohoku earthquake. Outside the affected region, or
// with no table installed, the coordinate is unchanged.
func (j JGD2000) ToJGD2011() JGD2011 {
	var shift LatLon
	if grid, err := Touhokutaiheiyouoki2011(); err == nil {
		if s, ok := grid.Bilinear(j.degrees); ok {
			shift = s
		}
	}
	return JGD2011{degrees: j.degrees.Add(shift)}
}

// ToTokyo97 is the inverse of Tokyo97.ToJGD2000.
func (j JGD2000) ToTokyo97() Tokyo97 {
	itrf94 := grs80.toECEF(j.degrees).sub(toITRF94)
	return Tokyo97{degrees: bessel.toGeodetic(itrf94)}
}

// Degrees returns the coordinate in decimal degrees.
func (j JGD2000) Degrees() LatLon {
	return j.degrees
}

// JGD2011 is Japanese Geodetic Datum 2011 (EPSG 6668), the datum in force
// since the post-earthquake revision.
type JGD2011 struct {
	degrees LatLon
}

// NewJGD2011 wraps a JGD2011 coordinate given in decimal degrees.
func NewJGD2011(degrees LatLon) (JGD2011, error) {
	if err := degrees.validate(); err != nil {
		return JGD2011{}, err
	}
	return JGD2011{degrees: degrees}, nil
}

// Degrees returns the coordinate in decimal degrees.
func (j JGD2011) Degrees() LatLon {
	return j.degrees
}

// Datum names a geodetic datum for dynamic transform selection, as used by
// the jgd command and the GeoJSON adapter.
type Datum string

const (
	DatumTokyo   Datum = "tokyo"
	DatumTokyo97 Datum = "tokyo97"
	DatumJGD2000 Datum = "jgd2000"
	DatumJGD2011 Datum = "jgd2011"
)

// ParseDatum resolves a datum name, case-insensitively.
func ParseDatum(s string) (Datum, error) {
	switch d := Datum(strings.ToLower(s)); d {
	case DatumTokyo, DatumTokyo97, DatumJGD2000, DatumJGD2011:
		return d, nil
	}
	return "", fmt.Errorf("unknown datum %q (want tokyo, tokyo97, jgd2000 or jgd2011)", s)
}

// TransformFunc converts a single coordinate between two datums.
type TransformFunc func(LatLon) (LatLon, error)

// Transform returns the function converting coordinates from one named datum
// to another, following the transform chain tokyo → jgd2000 → jgd2011 with
// tokyo97 as the three-parameter branch. Pairs the chain cannot reach
// (inverses of the grid transforms among them) are an error.
func Transform(from, to Datum) (TransformFunc, error) {
	switch [2]Datum{from, to} {
	case [2]Datum{DatumTokyo, DatumJGD2000}:
		return func(p LatLon) (LatLon, error) {
			t, err := NewTokyo(p)
			if err != nil {
				return LatLon{}, err
			}
			return t.ToJGD2000().Degrees(), nil
		}, nil
	case [2]Datum{DatumTokyo, DatumJGD2011}:
		return func(p LatLon) (LatLon, error) {
			t, err := NewTokyo(p)
			if err != nil {
				return LatLon{}, err
			}
			return t.ToJGD2000().ToJGD2011().Degrees(), nil
		}, nil
	case [2]Datum{DatumTokyo97, DatumJGD2000}:
		return func(p LatLon) (LatLon, error) {
			t, err := NewTokyo97(p)
			if err != nil {
				return LatLon{}, err
			}
			return t.ToJGD2000().Degrees(), nil
		}, nil
	case [2]Datum{DatumTokyo97, DatumJGD2011}:
		return func(p LatLon) (LatLon, error) {
			t, err := NewTokyo97(p)
			if err != nil {
				return LatLon{}, err
			}
			return t.ToJGD2000().ToJGD2011().Degrees(), nil
		}, nil
	case [2]Datum{DatumJGD2000, DatumJGD2011}:
		return func(p LatLon) (LatLon, error) {
			j, err := NewJGD2000(p)
			if err != nil {
				return LatLon{}, err
			}
			return j.ToJGD2011().Degrees(), nil
		}, nil
	case [2]Datum{DatumJGD2000, DatumTokyo97}:
		return func(p LatLon) (LatLon, error) {
			j, err := NewJGD2000(p)
			if err != nil {
				return LatLon{}, err
			}
			return j.ToTokyo97().Degrees(), nil
		}, nil
	}
	return nil, fmt.Errorf("no transform from %s to %s", from, to)
}
