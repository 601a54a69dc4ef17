package jgd

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// TransformGeometry returns a copy of g with every coordinate converted by
// fn. The input geometry is left untouched.
func TransformGeometry(g orb.Geometry, fn TransformFunc) (orb.Geometry, error) {
	switch g := g.(type) {
	case orb.Point:
		return transformPoint(g, fn)
	case orb.MultiPoint:
		out, err := transformPoints(g, fn)
		return orb.MultiPoint(out), err
	case orb.LineString:
		out, err := transformPoints(g, fn)
		return orb.LineString(out), err
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(g))
		for i, ls := range g {
			pts, err := transformPoints(ls, fn)
			if err != nil {
				return nil, err
			}
			out[i] = orb.LineString(pts)
		}
		return out, nil
	case orb.Ring:
		out, err := transformPoints(g, fn)
		return orb.Ring(out), err
	case orb.Polygon:
		out := make(orb.Polygon, len(g))
		for i, ring := range g {
			pts, err := transformPoints(ring, fn)
			if err != nil {
				return nil, err
			}
			out[i] = orb.Ring(pts)
		}
		return out, nil
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, poly := range g {
			tp, err := TransformGeometry(poly, fn)
			if err != nil {
				return nil, err
			}
			out[i] = tp.(orb.Polygon)
		}
		return out, nil
	case orb.Collection:
		out := make(orb.Collection, len(g))
		for i, member := range g {
			tg, err := TransformGeometry(member, fn)
			if err != nil {
				return nil, err
			}
			out[i] = tg
		}
		return out, nil
	case orb.Bound:
		min, err := transformPoint(g.Min, fn)
		if err != nil {
			return nil, err
		}
		max, err := transformPoint(g.Max, fn)
		if err != nil {
			return nil, err
		}
		return orb.Bound{Min: min, Max: max}, nil
	}
	return nil, fmt.Errorf("unsupported geometry type %T", g)
}

// TransformFeatureCollection converts every feature geometry in place.
// Feature ids, properties and foreign members are kept as they are.
func TransformFeatureCollection(fc *geojson.FeatureCollection, fn TransformFunc) error {
	for i, feat := range fc.Features {
		if feat.Geometry == nil {
			continue
		}
		g, err := TransformGeometry(feat.Geometry, fn)
		if err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
		feat.Geometry = g
	}
	return nil
}

// transformPoint runs one GeoJSON position through fn. GeoJSON and orb order
// coordinates longitude first.
func transformPoint(p orb.Point, fn TransformFunc) (orb.Point, error) {
	out, err := fn(LatLon{Lat: p.Lat(), Lon: p.Lon()})
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{out.Lon, out.Lat}, nil
}

func transformPoints(pts []orb.Point, fn TransformFunc) ([]orb.Point, error) {
	out := make([]orb.Point, len(pts))
	for i, p := range pts {
		tp, err := transformPoint(p, fn)
		if err != nil {
			return nil, err
		}
		out[i] = tp
	}
	return out, nil
}
