// Command jgd converts coordinates between Japanese geodetic datums.
//
// Usage:
//
//	jgd convert --from tokyo --to jgd2011 36.460890 140.585051
//	jgd geojson --from jgd2000 --to jgd2011 wards.geojson
//	jgd grids
package main

func main() {
	Execute()
}
