package jgd_test

import (
	"testing"

	"github.com/golang/geo/s2"

	"github.com/andreiashu/jgd"
)

// mmInDegrees is one millimeter of ground distance in degrees, the accuracy
// the transforms promise against the official implementations.
const mmInDegrees = 0.000000009

// earthRadiusMeters converts unit-sphere angles to ground distance.
const earthRadiusMeters = 6371010.0

// assertDistance fails when got and want are a millimeter or more of ground
// distance apart.
func assertDistance(t *testing.T, got, want jgd.LatLon) {
	t.Helper()
	meters := s2.LatLngFromDegrees(got.Lat, got.Lon).
		Distance(s2.LatLngFromDegrees(want.Lat, want.Lon)).Radians() * earthRadiusMeters
	if meters >= 0.001 {
		t.Errorf("%v meters apart:\n got %+v\nwant %+v", meters, got, want)
	}
}
