package geodesic_test

import (
	"testing"

	"github.com/neospatial/geofit/mods/geodesic"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestCircleSegments(t *testing.T) {
	require.Equal(t, 36, geodesic.CircleSegments(1000))
	require.Equal(t, 36, geodesic.CircleSegments(100_000))
	require.Equal(t, 72, geodesic.CircleSegments(100_001))
	require.Equal(t, 72, geodesic.CircleSegments(500_000))
	require.Equal(t, 180, geodesic.CircleSegments(2_000_000))
}

func TestDestinationNorth(t *testing.T) {
	// One degree of latitude along a meridian is about 110.57 km at the
	// equator on the WGS84 ellipsoid.
	lat2, lon2 := geodesic.Destination(0, 0, 0, 110_574)
	require.InDelta(t, 1.0, lat2, 1e-3)
	require.InDelta(t, 0.0, lon2, 1e-9)
}

func TestDestinationEast(t *testing.T) {
	lat2, lon2 := geodesic.Destination(0, 0, 90, 111_319.49)
	require.InDelta(t, 1.0, lon2, 1e-3)
	require.InDelta(t, 0.0, lat2, 1e-3)
}

func TestPointBuffer(t *testing.T) {
	poly := geodesic.PointBuffer(orb.Point{13.4, 52.52}, 10_000)
	require.Len(t, poly, 1)
	ring := poly[0]
	require.Len(t, ring, 37)
	require.Equal(t, ring[0], ring[len(ring)-1], "ring must be closed")

	// The circle's ellipsoidal area should be close to pi*r^2.
	area, _ := geodesic.RingArea(ring)
	require.InDelta(t, 3.14159e8, area, 0.05e8)
}

func TestRingAreaEquatorSquare(t *testing.T) {
	// A 1x1 degree quad at the equator covers roughly 12,300 km².
	ring := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	area, perimeter := geodesic.RingArea(ring)
	require.Greater(t, area, 11.0e9)
	require.Less(t, area, 13.0e9)
	require.Greater(t, perimeter, 4*110_000.0)
	require.Less(t, perimeter, 4*112_000.0)
}

func TestRingAreaOrientationInsensitive(t *testing.T) {
	ccw := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	cw := orb.Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}
	a1, _ := geodesic.RingArea(ccw)
	a2, _ := geodesic.RingArea(cw)
	require.InDelta(t, a1, a2, 1.0)
}

func TestRingAreaDegenerate(t *testing.T) {
	area, perimeter := geodesic.RingArea(orb.Ring{{0, 0}, {1, 1}})
	require.Zero(t, area)
	require.Zero(t, perimeter)
}

func TestPolygonAreaWithHole(t *testing.T) {
	outer := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	hole := orb.Ring{{0.25, 0.25}, {0.75, 0.25}, {0.75, 0.75}, {0.25, 0.75}, {0.25, 0.25}}

	outerArea, outerPerim := geodesic.RingArea(outer)
	holeArea, _ := geodesic.RingArea(hole)

	area, perimeter := geodesic.PolygonArea(orb.Polygon{outer, hole})
	require.InDelta(t, outerArea-holeArea, area, 1.0)
	require.InDelta(t, outerPerim, perimeter, 1e-9)
}

func TestAreaGeometries(t *testing.T) {
	poly := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	single, _ := geodesic.Area(poly)
	double, _ := geodesic.Area(orb.MultiPolygon{poly, poly})
	require.InDelta(t, 2*single, double, 1.0)

	collected, _ := geodesic.Area(orb.Collection{poly, orb.Point{5, 5}})
	require.InDelta(t, single, collected, 1.0)

	area, perimeter := geodesic.Area(orb.LineString{{0, 0}, {1, 1}})
	require.Zero(t, area)
	require.Zero(t, perimeter)
}
