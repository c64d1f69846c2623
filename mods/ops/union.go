package ops

import (
	"fmt"

	"github.com/engelsjk/polygol"
	"github.com/paulmach/orb"
)

// union.go bridges orb geometries to polygol's boolean clipping. polygol
// works on MultiPolygon-shaped float slices, so everything funnels through
// that form.

func polygolFromPolygon(p orb.Polygon) [][][]float64 {
	rings := make([][][]float64, 0, len(p))
	for _, r := range p {
		ring := make([][]float64, 0, len(r))
		for _, pt := range r {
			ring = append(ring, []float64{pt[0], pt[1]})
		}
		rings = append(rings, ring)
	}
	return rings
}

func polygolFromOrb(g orb.Geometry) ([][][][]float64, error) {
	switch v := g.(type) {
	case orb.Polygon:
		return [][][][]float64{polygolFromPolygon(v)}, nil
	case orb.MultiPolygon:
		mp := make([][][][]float64, 0, len(v))
		for _, p := range v {
			mp = append(mp, polygolFromPolygon(p))
		}
		return mp, nil
	case orb.Ring:
		return [][][][]float64{polygolFromPolygon(orb.Polygon{v})}, nil
	}
	return nil, fmt.Errorf("geometry type %s is not polygonal", g.GeoJSONType())
}

func orbFromPolygol(mp [][][][]float64) orb.Geometry {
	out := make(orb.MultiPolygon, 0, len(mp))
	for _, poly := range mp {
		p := make(orb.Polygon, 0, len(poly))
		for _, ring := range poly {
			r := make(orb.Ring, 0, len(ring))
			for _, pt := range ring {
				r = append(r, orb.Point{pt[0], pt[1]})
			}
			p = append(p, r)
		}
		out = append(out, p)
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// unionAll merges polygonal geometries into one. Non-polygonal inputs are
// rejected by polygolFromOrb.
func unionAll(geoms []orb.Geometry) (orb.Geometry, error) {
	if len(geoms) == 0 {
		return nil, fmt.Errorf("nothing to union")
	}
	first, err := polygolFromOrb(geoms[0])
	if err != nil {
		return nil, err
	}
	rest := make([]polygol.Geom, 0, len(geoms)-1)
	for _, g := range geoms[1:] {
		pg, err := polygolFromOrb(g)
		if err != nil {
			return nil, err
		}
		rest = append(rest, pg)
	}
	merged, err := polygol.Union(first, rest...)
	if err != nil {
		return nil, fmt.Errorf("union: %w", err)
	}
	return orbFromPolygol(merged), nil
}
