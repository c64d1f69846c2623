package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Bounds computes the WGS84 bounding box of a feature collection. When the
// plain lon extent spans more than half the globe but the coordinates
// cluster around the ±180° seam, the wrapped form (MinLon > MaxLon) is
// returned instead. The second return value is false for an empty input.
func Bounds(fc *geojson.FeatureCollection) (BoundingBox, bool) {
	var lons []float64
	minLat, maxLat := math.MaxFloat64, -math.MaxFloat64

	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		EachPoint(f.Geometry, func(p orb.Point) {
			lons = append(lons, p.Lon())
			if p.Lat() < minLat {
				minLat = p.Lat()
			}
			if p.Lat() > maxLat {
				maxLat = p.Lat()
			}
		})
	}
	if len(lons) == 0 {
		return BoundingBox{}, false
	}

	minLon, maxLon := lons[0], lons[0]
	for _, lon := range lons[1:] {
		minLon = math.Min(minLon, lon)
		maxLon = math.Max(maxLon, lon)
	}

	if maxLon-minLon > 180 {
		// candidate wraparound: re-measure with longitudes shifted to [0,360)
		sMin, sMax := math.MaxFloat64, -math.MaxFloat64
		for _, lon := range lons {
			if lon < 0 {
				lon += 360
			}
			sMin = math.Min(sMin, lon)
			sMax = math.Max(sMax, lon)
		}
		if sMax-sMin < maxLon-minLon {
			minLon, maxLon = normalizeLon(sMin), normalizeLon(sMax)
		}
	}
	return BoundingBox{MinLon: minLon, MinLat: minLat, MaxLon: maxLon, MaxLat: maxLat}, true
}

func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

// EachPoint visits every coordinate of a geometry.
func EachPoint(g orb.Geometry, fn func(orb.Point)) {
	switch v := g.(type) {
	case orb.Point:
		fn(v)
	case orb.MultiPoint:
		for _, p := range v {
			fn(p)
		}
	case orb.LineString:
		for _, p := range v {
			fn(p)
		}
	case orb.MultiLineString:
		for _, ls := range v {
			for _, p := range ls {
				fn(p)
			}
		}
	case orb.Ring:
		for _, p := range v {
			fn(p)
		}
	case orb.Polygon:
		for _, r := range v {
			for _, p := range r {
				fn(p)
			}
		}
	case orb.MultiPolygon:
		for _, poly := range v {
			for _, r := range poly {
				for _, p := range r {
					fn(p)
				}
			}
		}
	case orb.Collection:
		for _, sub := range v {
			EachPoint(sub, fn)
		}
	case orb.Bound:
		fn(v.Min)
		fn(v.Max)
	}
}
