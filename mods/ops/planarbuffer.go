package ops

import (
	"fmt"
	"math"

	"github.com/neospatial/geofit/mods/geodesic"
	"github.com/paulmach/orb"
)

// planarbuffer.go buffers geometries in an already-projected plane. Points
// become sampled circles; lines and ring boundaries become unions of
// per-segment capsules; polygons union their own interior with the buffered
// boundary.

func planarCircle(c orb.Point, radius float64, segments int) orb.Polygon {
	ring := make(orb.Ring, 0, segments+1)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		ring = append(ring, orb.Point{c[0] + radius*math.Cos(a), c[1] + radius*math.Sin(a)})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// segmentCapsule covers a segment with an oriented rectangle plus full
// circles at both ends; the union of the three is the capsule.
func segmentCapsule(a, b orb.Point, radius float64, segments int) []orb.Geometry {
	out := []orb.Geometry{planarCircle(a, radius, segments)}
	dx, dy := b[0]-a[0], b[1]-a[1]
	length := math.Hypot(dx, dy)
	if length == 0 {
		return out
	}
	out = append(out, planarCircle(b, radius, segments))
	nx, ny := -dy/length*radius, dx/length*radius
	rect := orb.Ring{
		{a[0] + nx, a[1] + ny},
		{b[0] + nx, b[1] + ny},
		{b[0] - nx, b[1] - ny},
		{a[0] - nx, a[1] - ny},
	}
	rect = append(rect, rect[0])
	return append(out, orb.Polygon{rect})
}

func lineCapsules(points []orb.Point, radius float64, segments int) []orb.Geometry {
	var out []orb.Geometry
	if len(points) == 1 {
		return []orb.Geometry{planarCircle(points[0], radius, segments)}
	}
	for i := 0; i+1 < len(points); i++ {
		out = append(out, segmentCapsule(points[i], points[i+1], radius, segments)...)
	}
	return out
}

// bufferPlanar buffers a geometry by radius (plane units, meters) and
// returns a polygonal result.
func bufferPlanar(g orb.Geometry, radius float64) (orb.Geometry, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("buffer radius must be positive, got %v", radius)
	}
	segments := geodesic.CircleSegments(radius)
	switch v := g.(type) {
	case orb.Point:
		return planarCircle(v, radius, segments), nil
	case orb.MultiPoint:
		geoms := make([]orb.Geometry, 0, len(v))
		for _, p := range v {
			geoms = append(geoms, planarCircle(p, radius, segments))
		}
		return unionAll(geoms)
	case orb.LineString:
		return unionAll(lineCapsules(v, radius, segments))
	case orb.MultiLineString:
		var geoms []orb.Geometry
		for _, ls := range v {
			geoms = append(geoms, lineCapsules(ls, radius, segments)...)
		}
		return unionAll(geoms)
	case orb.Ring:
		return bufferPlanar(orb.Polygon{v}, radius)
	case orb.Polygon:
		geoms := []orb.Geometry{v}
		for _, ring := range v {
			geoms = append(geoms, lineCapsules(ring, radius, segments)...)
		}
		return unionAll(geoms)
	case orb.MultiPolygon:
		var geoms []orb.Geometry
		for _, poly := range v {
			buffered, err := bufferPlanar(poly, radius)
			if err != nil {
				return nil, err
			}
			geoms = append(geoms, buffered)
		}
		return unionAll(geoms)
	case orb.Collection:
		var geoms []orb.Geometry
		for _, sub := range v {
			buffered, err := bufferPlanar(sub, radius)
			if err != nil {
				return nil, err
			}
			geoms = append(geoms, buffered)
		}
		return unionAll(geoms)
	}
	return nil, fmt.Errorf("unsupported geometry type %s", g.GeoJSONType())
}
