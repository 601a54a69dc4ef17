package jgd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// parHeader is the column header separating the free-form preamble of a .par
// source from its records.
const parHeader = "MeshCode   dB(sec)   dL(sec)"

// CompilePar compiles a GSI .par parameter source into a Grid.
//
// The source is fixed-width text. After a preamble terminated by the header
// line "MeshCode   dB(sec)   dL(sec)", each record line carries an 8-digit
// 3rd-level mesh code (latitude and longitude digits interleaved: two, two,
// one, one, one, one) followed by the latitude and longitude corrections in
// arcseconds, each a right-justified 4-character integer part, a literal
// decimal point, and a 5-digit fraction.
//
// Record lines are not trusted to be sorted (the published TKY2JGD.par is
// unsorted from line 378632 on) and may repeat: exact duplicates collapse to
// one grid point, while the same mesh cell with a different shift aborts
// compilation. Any malformed record aborts as well; failing the compile is
// always preferable to emitting a subtly wrong table.
//
// Compilation is an offline step. Query-path code loads the compiled output
// through NewGrid and never parses text.
func CompilePar(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)

	lineno, err := skipPreamble(sc)
	if err != nil {
		return nil, err
	}

	seen := make(map[meshCell]gridShift)
	for sc.Scan() {
		lineno++
		point, err := parseParRecord(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		if prev, dup := seen[point.mesh]; dup {
			if prev != point.shift {
				return nil, fmt.Errorf("line %d: mesh (%d, %d) has conflicting shifts (%d, %d) and (%d, %d)",
					lineno, point.mesh.lat, point.mesh.lon,
					prev.lat, prev.lon, point.shift.lat, point.shift.lon)
			}
			continue
		}
		seen[point.mesh] = point.shift
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading par source: %w", err)
	}

	points := make([]gridPoint, 0, len(seen))
	for mesh, shift := range seen {
		points = append(points, gridPoint{mesh: mesh, shift: shift})
	}
	slices.SortFunc(points, func(a, b gridPoint) int {
		return a.mesh.compare(b.mesh)
	})
	return &Grid{points: points}, nil
}

// skipPreamble consumes lines up to and including the header, returning how
// many were consumed.
func skipPreamble(sc *bufio.Scanner) (int, error) {
	lineno := 0
	for sc.Scan() {
		lineno++
		if sc.Text() == parHeader {
			return lineno, nil
		}
	}
	if err := sc.Err(); err != nil {
		return lineno, fmt.Errorf("reading par source: %w", err)
	}
	return lineno, fmt.Errorf("par source has no %q header", parHeader)
}

func parseParRecord(line string) (gridPoint, error) {
	f := fixedFields{rest: line}

	mesh1Lat, mesh1Lon, err := f.meshPair(2)
	if err != nil {
		return gridPoint{}, fmt.Errorf("1st mesh: %w", err)
	}
	mesh2Lat, mesh2Lon, err := f.meshPair(1)
	if err != nil {
		return gridPoint{}, fmt.Errorf("2nd mesh: %w", err)
	}
	mesh3Lat, mesh3Lon, err := f.meshPair(1)
	if err != nil {
		return gridPoint{}, fmt.Errorf("3rd mesh: %w", err)
	}

	lat, err := meshIndex(mesh1Lat, mesh2Lat, mesh3Lat)
	if err != nil {
		return gridPoint{}, fmt.Errorf("mesh lat: %w", err)
	}
	lon, err := meshIndex(mesh1Lon, mesh2Lon, mesh3Lon)
	if err != nil {
		return gridPoint{}, fmt.Errorf("mesh lon: %w", err)
	}

	dLat, err := f.shiftField()
	if err != nil {
		return gridPoint{}, fmt.Errorf("dB(sec): %w", err)
	}
	dLon, err := f.shiftField()
	if err != nil {
		return gridPoint{}, fmt.Errorf("dL(sec): %w", err)
	}

	if f.rest != "" {
		return gridPoint{}, fmt.Errorf("trailing data %q after record", f.rest)
	}
	return gridPoint{
		mesh:  meshCell{lat: lat, lon: lon},
		shift: gridShift{lat: dLat, lon: dLon},
	}, nil
}

// meshIndex combines the three per-axis mesh code fields into the serial
// cell index counted from 0 degrees. The first field spans 80 cells per unit
// on both axes: 40 arcminutes of latitude, one degree of longitude.
func meshIndex(m1, m2, m3 int64) (int16, error) {
	serial := m1*80 + m2*10 + m3
	if serial < math.MinInt16 || serial > math.MaxInt16 {
		return 0, fmt.Errorf("mesh index %d overflows int16", serial)
	}
	return int16(serial), nil
}

// fixedFields steps through the fixed-width columns of one record line.
type fixedFields struct {
	rest string
}

func (f *fixedFields) field(width int) (string, error) {
	if len(f.rest) < width {
		return "", fmt.Errorf("record too short: %d columns left, want %d", len(f.rest), width)
	}
	field := f.rest[:width]
	f.rest = f.rest[width:]
	return field, nil
}

// number parses the next width columns as a right-justified, space-padded
// integer.
func (f *fixedFields) number(width int) (int64, error) {
	field, err := f.field(width)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimLeft(field, " "), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", field)
	}
	return n, nil
}

// meshPair parses one latitude field and one longitude field of equal width.
func (f *fixedFields) meshPair(width int) (lat, lon int64, err error) {
	if lat, err = f.number(width); err != nil {
		return 0, 0, err
	}
	if lon, err = f.number(width); err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

// shiftField parses one correction column into micro-arcseconds: a 4-column
// integer part, a mandatory decimal point, and a 5-digit fraction worth 10
// micro-arcseconds per unit.
//
// The fraction is printed unsigned and inherits the sign of the integer
// part. The sign has to be read from the text: "-0" parses to plain zero,
// and deciding by the parsed value would drop the sign of every record
// between 0 and -1 arcseconds.
func (f *fixedFields) shiftField() (int32, error) {
	intField, err := f.field(4)
	if err != nil {
		return 0, err
	}
	intPart, err := strconv.ParseInt(strings.TrimLeft(intField, " "), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", intField)
	}
	if !strings.HasPrefix(f.rest, ".") {
		return 0, fmt.Errorf("expected decimal point, have %q", f.rest)
	}
	f.rest = f.rest[1:]
	fracPart, err := f.number(5)
	if err != nil {
		return 0, err
	}
	if fracPart < 0 {
		return 0, fmt.Errorf("fraction %d must be unsigned", fracPart)
	}

	frac := fracPart * 10
	if strings.Contains(intField, "-") {
		frac = -frac
	}
	micro := intPart*1_000_000 + frac
	if micro < math.MinInt32 || micro > math.MaxInt32 {
		return 0, fmt.Errorf("shift %d micro-arcseconds overflows int32", micro)
	}
	return int32(micro), nil
}
