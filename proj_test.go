package jgd_test

import (
	"math"
	"testing"

	"github.com/andreiashu/jgd"
)

// Expected values computed with proj's towgs84 parameters for the Tokyo
// Datum, the same transform QGIS applies.

func TestTowgs84(t *testing.T) {
	tokyo97, err := jgd.NewTokyo97(jgd.LatLon{Lat: 35, Lon: 135})
	if err != nil {
		t.Fatal(err)
	}
	got := tokyo97.ToJGD2000().Degrees()
	assertAxes(t, got, jgd.LatLon{Lat: 35.00319718, Lon: 134.99720425})
}

func TestTowgs84Inverse(t *testing.T) {
	jgd2000, err := jgd.NewJGD2000(jgd.LatLon{Lat: 35, Lon: 135})
	if err != nil {
		t.Fatal(err)
	}
	got := jgd2000.ToTokyo97().Degrees()
	assertAxes(t, got, jgd.LatLon{Lat: 34.99680236, Lon: 135.00279591})
}

func TestTokyo97RoundTrip(t *testing.T) {
	p := jgd.LatLon{Lat: 35, Lon: 135}
	jgd2000, err := jgd.NewJGD2000(p)
	if err != nil {
		t.Fatal(err)
	}
	got := jgd2000.ToTokyo97().ToJGD2000().Degrees()
	assertDistance(t, got, p)
}

func assertAxes(t *testing.T, got, want jgd.LatLon) {
	t.Helper()
	if math.Abs(got.Lat-want.Lat) > mmInDegrees || math.Abs(got.Lon-want.Lon) > mmInDegrees {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
