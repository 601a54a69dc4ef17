package jgd

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"math"
	"slices"
)

// Extent of a 3rd-level mesh cell in arcseconds.
const (
	meshLatSecs = 30.0
	meshLonSecs = 45.0
)

// meshCell is the serial index pair of a 3rd-level mesh, counted from
// latitude 0 and longitude 0. Ordering is lexicographic, latitude major.
type meshCell struct {
	lat int16
	lon int16
}

// meshFloor returns the cell whose southwest corner the parameter dot for p
// sits on. The scale factor must stay a single folded constant: scaling to
// arcseconds and then dividing rounds twice, which pushes cell corners whose
// nearest double sits below the true corner value into the neighboring cell.
// Truncation equals flooring only for non-negative coordinates; validated
// Japanese coordinates never leave that domain.
func meshFloor(p LatLon) meshCell {
	return meshCell{
		lat: clampInt16(p.Lat * (secsPerDegree / meshLatSecs)),
		lon: clampInt16(p.Lon * (secsPerDegree / meshLonSecs)),
	}
}

// clampInt16 truncates toward zero, saturating at the int16 bounds and
// mapping NaN to 0. Converting an out-of-range float is implementation
// defined in Go; a saturated index matches no record, so coordinates far
// outside the degree domain report no coverage.
func clampInt16(v float64) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	case math.IsNaN(v):
		return 0
	}
	return int16(v)
}

func (c meshCell) north() meshCell { return meshCell{lat: c.lat + 1, lon: c.lon} }
func (c meshCell) east() meshCell  { return meshCell{lat: c.lat, lon: c.lon + 1} }

// degrees returns the coordinate of the cell's southwest corner.
func (c meshCell) degrees() LatLon {
	return FromSecs(float64(c.lat)*meshLatSecs, float64(c.lon)*meshLonSecs)
}

// diagonalWeight is the distance of p from the cell's own corner coordinate
// in units of the cell extent per axis. Measured from the southwest corner it
// weights the north/east blend; measured from the northeast corner it weights
// the south/west blend. The two are not exact complements of each other, and
// the tables were calibrated with this exact formula, so it must not be
// simplified to 1-weight.
func (c meshCell) diagonalWeight(p LatLon) (wLat, wLon float64) {
	diff := p.Sub(c.degrees())
	wLat = math.Abs(diff.Lat) * secsPerDegree / meshLatSecs
	wLon = math.Abs(diff.Lon) * secsPerDegree / meshLonSecs
	return wLat, wLon
}

func (c meshCell) compare(o meshCell) int {
	if v := cmp.Compare(c.lat, o.lat); v != 0 {
		return v
	}
	return cmp.Compare(c.lon, o.lon)
}

// gridShift is a correction in micro-arcseconds, the fixed-point storage unit
// of the parameter tables. int32 covers every correction the source tables
// contain with almost two orders of magnitude to spare.
type gridShift struct {
	lat int32
	lon int32
}

// degrees converts the fixed-point shift to decimal degrees.
func (s gridShift) degrees() LatLon {
	return FromMicroSecs(float64(s.lat), float64(s.lon))
}

// quantizeShift is the inverse of degrees, rounding to the nearest
// micro-arcsecond. Converting a shift to degrees and back recovers the
// original integers exactly.
func quantizeShift(p LatLon) gridShift {
	return gridShift{
		lat: int32(math.Round(p.Lat * microSecsPerDegree)),
		lon: int32(math.Round(p.Lon * microSecsPerDegree)),
	}
}

// gridPoint is one 12-byte table record: a southwest corner cell and the
// measured shift at it.
type gridPoint struct {
	mesh  meshCell
	shift gridShift
}

// Grid is an immutable datum-shift parameter table: grid points strictly
// sorted by cell, one per 3rd-level mesh southwest corner with a known
// correction. Every lookup is a binary search, so the sort invariant is
// established when a table is built or loaded and never re-checked on the
// query path. Safe for any number of concurrent readers.
type Grid struct {
	points []gridPoint
}

// NewGrid loads a parameter table from its binary form: a flat sequence of
// 12-byte little-endian records {lat_mesh int16, lon_mesh int16,
// lat_shift int32, lon_shift int32}, shifts in micro-arcseconds, sorted
// ascending by (lat_mesh, lon_mesh), with no header. The record count is the
// blob length divided by 12.
func NewGrid(data []byte) (*Grid, error) {
	g := &Grid{}
	if err := g.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return g, nil
}

const gridRecordSize = 12

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It verifies the
// record size and strict cell ordering, so a corrupt blob fails at load time
// instead of silently corrupting query results later.
func (g *Grid) UnmarshalBinary(data []byte) error {
	if len(data)%gridRecordSize != 0 {
		return fmt.Errorf("grid table: %d bytes is not a multiple of the %d-byte record size", len(data), gridRecordSize)
	}
	points := make([]gridPoint, len(data)/gridRecordSize)
	for i := range points {
		rec := data[i*gridRecordSize : (i+1)*gridRecordSize]
		points[i] = gridPoint{
			mesh: meshCell{
				lat: int16(binary.LittleEndian.Uint16(rec[0:2])),
				lon: int16(binary.LittleEndian.Uint16(rec[2:4])),
			},
			shift: gridShift{
				lat: int32(binary.LittleEndian.Uint32(rec[4:8])),
				lon: int32(binary.LittleEndian.Uint32(rec[8:12])),
			},
		}
		if i > 0 && points[i-1].mesh.compare(points[i].mesh) >= 0 {
			return fmt.Errorf("grid table: record %d breaks the strict cell ordering", i)
		}
	}
	g.points = points
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler, emitting the format
// documented on NewGrid.
func (g *Grid) MarshalBinary() ([]byte, error) {
	buf := make([]byte, len(g.points)*gridRecordSize)
	for i, p := range g.points {
		rec := buf[i*gridRecordSize : (i+1)*gridRecordSize]
		binary.LittleEndian.PutUint16(rec[0:2], uint16(p.mesh.lat))
		binary.LittleEndian.PutUint16(rec[2:4], uint16(p.mesh.lon))
		binary.LittleEndian.PutUint32(rec[4:8], uint32(p.shift.lat))
		binary.LittleEndian.PutUint32(rec[8:12], uint32(p.shift.lon))
	}
	return buf, nil
}

// Len returns the number of grid points in the table.
func (g *Grid) Len() int {
	return len(g.points)
}

// Bounds returns the bounding box of the table in degrees: the southwest
// corner of the lowest covered cell and the northeast corner of the highest.
// Coverage inside the box is typically sparse. ok is false for an empty
// table.
func (g *Grid) Bounds() (sw, ne LatLon, ok bool) {
	if len(g.points) == 0 {
		return LatLon{}, LatLon{}, false
	}
	lo := g.points[0].mesh
	hi := lo
	for _, p := range g.points[1:] {
		lo.lat = min(lo.lat, p.mesh.lat)
		lo.lon = min(lo.lon, p.mesh.lon)
		hi.lat = max(hi.lat, p.mesh.lat)
		hi.lon = max(hi.lon, p.mesh.lon)
	}
	return lo.degrees(), hi.north().east().degrees(), true
}

// Bilinear interpolates the datum shift at p, in degrees, from the measured
// shifts at the four corners of the 3rd-level mesh cell containing it.
//
// The parameter dots sit on southwest corners, so the cell's corners are the
// dot for the cell itself plus its east, north, and northeast neighbors. All
// four must be present; if any is missing the whole lookup reports no
// coverage and ok is false. A miss is an expected outcome, not an error:
// uninhabited islets, land reclaimed after the survey, and open sea carry no
// parameters even inside the covered region.
func (g *Grid) Bilinear(p LatLon) (shift LatLon, ok bool) {
	sw := meshFloor(p)
	i, ok := g.searchAfter(0, sw)
	if !ok {
		return LatLon{}, false
	}
	swShift := g.points[i].shift

	// The east neighbor of a present cell is almost always the next record,
	// so the remaining corners are resolved relative to the previous match.
	i, ok = g.searchAt(i+1, sw.east())
	if !ok {
		return LatLon{}, false
	}
	seShift := g.points[i].shift

	i, ok = g.searchAfter(i+1, sw.north())
	if !ok {
		return LatLon{}, false
	}
	nwShift := g.points[i].shift

	i, ok = g.searchAt(i+1, sw.north().east())
	if !ok {
		return LatLon{}, false
	}
	neShift := g.points[i].shift

	nWeight, eWeight := sw.diagonalWeight(p)
	sWeight, wWeight := sw.north().east().diagonalWeight(p)

	swDeg := swShift.degrees()
	seDeg := seShift.degrees()
	nwDeg := nwShift.degrees()
	neDeg := neShift.degrees()
	return LatLon{
		Lat: swDeg.Lat*sWeight*wWeight +
			seDeg.Lat*sWeight*eWeight +
			nwDeg.Lat*nWeight*wWeight +
			neDeg.Lat*nWeight*eWeight,
		Lon: swDeg.Lon*sWeight*wWeight +
			seDeg.Lon*sWeight*eWeight +
			nwDeg.Lon*nWeight*wWeight +
			neDeg.Lon*nWeight*eWeight,
	}, true
}

// searchAfter binary-searches for query in the points from index first
// onward, returning the absolute index of the exact match. Restricting the
// range is an optimization for corner sequences, valid because the table is
// globally sorted.
func (g *Grid) searchAfter(first int, query meshCell) (int, bool) {
	if first > len(g.points) {
		return 0, false
	}
	i, found := slices.BinarySearchFunc(g.points[first:], query, func(p gridPoint, c meshCell) int {
		return p.mesh.compare(c)
	})
	if !found {
		return 0, false
	}
	return first + i, true
}

// searchAt reports whether the record at exactly index is query.
func (g *Grid) searchAt(index int, query meshCell) (int, bool) {
	if index >= len(g.points) || g.points[index].mesh != query {
		return 0, false
	}
	return index, true
}
