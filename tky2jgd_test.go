package jgd_test

import (
	"testing"

	"github.com/andreiashu/jgd"
)

// Survey control points in Ibaraki, with expected output of the original
// TKY2JGD program.
var tky2jgdPoints = []struct {
	name  string
	tokyo jgd.LatLon
	want  jgd.LatLon
}{
	{
		"村松",
		jgd.FromDms(jgd.Dms{36, 27, 39.20500}, jgd.Dms{140, 35, 6.11100}),
		jgd.FromDms(jgd.Dms{36, 27, 50.58487}, jgd.Dms{140, 34, 54.10080}),
	},
	{
		"高野",
		jgd.FromDms(jgd.Dms{36, 25, 45.63400}, jgd.Dms{140, 32, 47.46200}),
		jgd.FromDms(jgd.Dms{36, 25, 57.02524}, jgd.Dms{140, 32, 35.46640}),
	},
	{
		"東石川",
		jgd.FromDms(jgd.Dms{36, 24, 51.26200}, jgd.Dms{140, 32, 15.86100}),
		jgd.FromDms(jgd.Dms{36, 25, 2.65997}, jgd.Dms{140, 32, 3.86700}),
	},
	{
		"長砂",
		jgd.FromDms(jgd.Dms{36, 24, 45.41400}, jgd.Dms{140, 34, 58.52400}),
		jgd.FromDms(jgd.Dms{36, 24, 56.81069}, jgd.Dms{140, 34, 46.51725}),
	},
	{
		"防風",
		jgd.FromDms(jgd.Dms{36, 24, 26.50200}, jgd.Dms{140, 36, 17.04000}),
		jgd.FromDms(jgd.Dms{36, 24, 37.90364}, jgd.Dms{140, 36, 5.02858}),
	},
	{
		"雷",
		jgd.FromDms(jgd.Dms{36, 24, 9.22100}, jgd.Dms{140, 31, 26.34100}),
		jgd.FromDms(jgd.Dms{36, 24, 20.61785}, jgd.Dms{140, 31, 14.36101}),
	},
	{
		"前浜",
		jgd.FromDms(jgd.Dms{36, 22, 57.11200}, jgd.Dms{140, 36, 16.01100}),
		jgd.FromDms(jgd.Dms{36, 23, 8.52178}, jgd.Dms{140, 36, 3.99552}),
	},
	{ // offshore, still covered by the grid
		"海上",
		jgd.FromDms(jgd.Dms{36, 18, 35.99000}, jgd.Dms{143, 0, 0}),
		jgd.FromDms(jgd.Dms{36, 18, 47.72512}, jgd.Dms{142, 59, 47.29009}),
	},
}

func TestTky2jgdReferencePoints(t *testing.T) {
	if _, err := jgd.TKY2JGD(); err != nil {
		t.Skipf("table not installed: %v", err)
	}
	for _, tt := range tky2jgdPoints {
		t.Run(tt.name, func(t *testing.T) {
			tokyo, err := jgd.NewTokyo(tt.tokyo)
			if err != nil {
				t.Fatal(err)
			}
			assertAxes(t, tokyo.ToJGD2000().Degrees(), tt.want)
		})
	}
}
