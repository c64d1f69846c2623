package ops

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/require"
)

func planarAreaOf(t *testing.T, g orb.Geometry) float64 {
	t.Helper()
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return math.Abs(planar.Area(g))
	}
	t.Fatalf("expected polygonal geometry, got %s", g.GeoJSONType())
	return 0
}

func TestBufferPlanarPointCircle(t *testing.T) {
	g, err := bufferPlanar(orb.Point{100, 100}, 10)
	require.NoError(t, err)
	poly, ok := g.(orb.Polygon)
	require.True(t, ok)
	// inscribed polygon area is slightly under pi*r^2
	area := math.Abs(planar.Area(poly))
	require.Greater(t, area, 300.0)
	require.Less(t, area, 315.0)
}

func TestBufferPlanarLine(t *testing.T) {
	g, err := bufferPlanar(orb.LineString{{0, 0}, {100, 0}}, 10)
	require.NoError(t, err)
	// capsule area: 100*20 rectangle plus two half circles
	area := planarAreaOf(t, g)
	require.Greater(t, area, 2200.0)
	require.Less(t, area, 2320.0)
}

func TestBufferPlanarPolygonGrows(t *testing.T) {
	square := orb.Polygon{{{0, 0}, {100, 0}, {100, 100}, {0, 100}, {0, 0}}}
	g, err := bufferPlanar(square, 10)
	require.NoError(t, err)
	area := planarAreaOf(t, g)
	require.Greater(t, area, math.Abs(planar.Area(square)))
	// grown square: 120x120 minus rounded corners
	require.Less(t, area, 14400.0)
	require.Greater(t, area, 14000.0)
}

func TestBufferPlanarRejectsBadRadius(t *testing.T) {
	_, err := bufferPlanar(orb.Point{0, 0}, 0)
	require.Error(t, err)
	_, err = bufferPlanar(orb.Point{0, 0}, -1)
	require.Error(t, err)
}

func TestUnionAllMergesOverlapping(t *testing.T) {
	a := orb.Polygon{{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}
	b := orb.Polygon{{{1, 0}, {3, 0}, {3, 2}, {1, 2}, {1, 0}}}
	merged, err := unionAll([]orb.Geometry{a, b})
	require.NoError(t, err)
	require.InDelta(t, 6.0, planarAreaOf(t, merged), 1e-9)
}

func TestUnionAllDisjointKeepsParts(t *testing.T) {
	a := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	b := orb.Polygon{{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {5, 5}}}
	merged, err := unionAll([]orb.Geometry{a, b})
	require.NoError(t, err)
	mp, ok := merged.(orb.MultiPolygon)
	require.True(t, ok)
	require.Len(t, mp, 2)
}

func TestUnionAllRejectsNonPolygonal(t *testing.T) {
	_, err := unionAll([]orb.Geometry{orb.Point{0, 0}})
	require.Error(t, err)
	_, err = unionAll(nil)
	require.Error(t, err)
}
