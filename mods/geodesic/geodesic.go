// Package geodesic computes on the WGS84 ellipsoid: forward problem point
// buffers and polygon areas. Everything here is exact Karney math via
// geographiclib; the spherical shortcuts live in mods/geom.
package geodesic

import (
	"math"

	"github.com/paulmach/orb"
	geod "github.com/pymaxion/geographiclib-go/geodesic"
	"gonum.org/v1/gonum/floats"
)

// CircleSegments is the azimuth sampling resolution for geodesic circles:
// coarse for small radii, fine for continental ones.
func CircleSegments(radiusM float64) int {
	switch {
	case radiusM <= 100_000:
		return 36
	case radiusM <= 500_000:
		return 72
	default:
		return 180
	}
}

// Destination solves the forward geodesic problem.
func Destination(lat, lon, azimuthDeg, distanceM float64) (lat2, lon2 float64) {
	r := geod.WGS84.Direct(lat, lon, azimuthDeg, distanceM)
	return r.Lat2, r.Lon2
}

// PointBuffer builds a closed polygon approximating the set of points at
// the given geodesic distance from the center.
func PointBuffer(center orb.Point, radiusM float64) orb.Polygon {
	n := CircleSegments(radiusM)
	azimuths := floats.Span(make([]float64, n+1), 0, 360)
	ring := make(orb.Ring, 0, n+1)
	for _, az := range azimuths[:n] {
		lat, lon := Destination(center.Lat(), center.Lon(), az, radiusM)
		ring = append(ring, orb.Point{lon, lat})
	}
	ring = append(ring, ring[0]) // close
	return orb.Polygon{ring}
}

// RingArea returns the unsigned ellipsoidal area (m²) and perimeter (m) of
// a ring.
func RingArea(ring orb.Ring) (area, perimeter float64) {
	if len(ring) < 3 {
		return 0, 0
	}
	pa := geod.NewPolygonArea(geod.WGS84, false)
	last := len(ring)
	if ring[0] == ring[len(ring)-1] {
		last-- // geographiclib closes the loop itself
	}
	for _, p := range ring[:last] {
		pa.AddPoint(p.Lat(), p.Lon())
	}
	r := pa.Compute(false, true)
	return math.Abs(r.Area), r.Perimeter
}

// PolygonArea returns the ellipsoidal area of a polygon; interior rings
// subtract. Perimeter is the exterior ring's.
func PolygonArea(poly orb.Polygon) (area, perimeter float64) {
	if len(poly) == 0 {
		return 0, 0
	}
	area, perimeter = RingArea(orb.Ring(poly[0]))
	for _, hole := range poly[1:] {
		holeArea, _ := RingArea(orb.Ring(hole))
		area -= holeArea
	}
	if area < 0 {
		area = 0
	}
	return area, perimeter
}

// Area returns the ellipsoidal area of any geometry; non-areal geometries
// contribute zero.
func Area(g orb.Geometry) (area, perimeter float64) {
	switch v := g.(type) {
	case orb.Polygon:
		return PolygonArea(v)
	case orb.MultiPolygon:
		for _, poly := range v {
			a, p := PolygonArea(poly)
			area += a
			perimeter += p
		}
		return area, perimeter
	case orb.Ring:
		return RingArea(v)
	case orb.Collection:
		for _, sub := range v {
			a, p := Area(sub)
			area += a
			perimeter += p
		}
		return area, perimeter
	}
	return 0, 0
}
