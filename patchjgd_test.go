package jgd_test

import (
	"testing"

	"github.com/andreiashu/jgd"
)

// Expected values computed with the original PatchJGD program.
func TestPatchjgdReferencePoints(t *testing.T) {
	if _, err := jgd.Touhokutaiheiyouoki2011(); err != nil {
		t.Skipf("table not installed: %v", err)
	}
	tests := []struct {
		name    string
		jgd2000 jgd.LatLon
		want    jgd.LatLon
	}{
		{
			"sendai",
			jgd.LatLon{Lat: 38.26, Lon: 140.87},
			jgd.LatLon{Lat: 38.259991997, Lon: 140.870036378},
		},
		{
			"iwaki",
			jgd.LatLon{Lat: 37.090536, Lon: 140.840350},
			jgd.LatLon{Lat: 37.090532997, Lon: 140.840375142},
		},
		{
			// No grid parameters here; the coordinate passes through.
			"iwaki off grid",
			jgd.LatLon{Lat: 37.093698, Lon: 140.829111},
			jgd.LatLon{Lat: 37.093698, Lon: 140.829111},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jgd2000, err := jgd.NewJGD2000(tt.jgd2000)
			if err != nil {
				t.Fatal(err)
			}
			assertDistance(t, jgd2000.ToJGD2011().Degrees(), tt.want)
		})
	}
}
