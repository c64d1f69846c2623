package geom_test

import (
	"math"
	"testing"

	"github.com/neospatial/geofit/mods/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"
)

func TestUTMZone(t *testing.T) {
	require.Equal(t, 1, geom.UTMZone(-180))
	require.Equal(t, 31, geom.UTMZone(0))
	require.Equal(t, 33, geom.UTMZone(13.25))
	require.Equal(t, 60, geom.UTMZone(179.9))
	require.Equal(t, 60, geom.UTMZone(180))
}

func TestKmPerDegreeLon(t *testing.T) {
	require.InDelta(t, 111.32, geom.KmPerDegreeLon(0), 1e-9)
	require.InDelta(t, 111.32/2, geom.KmPerDegreeLon(60), 1e-6)
}

func TestZoneSpan(t *testing.T) {
	require.Equal(t, 1, geom.ZoneSpan(geom.BoundingBox{MinLon: 13.0, MinLat: 52.0, MaxLon: 13.5, MaxLat: 52.5}))
	require.Equal(t, 2, geom.ZoneSpan(geom.BoundingBox{MinLon: 5.9, MinLat: 50, MaxLon: 6.1, MaxLat: 51}))
	// antimeridian sentinel
	require.Equal(t, 10, geom.ZoneSpan(geom.BoundingBox{MinLon: 170, MinLat: -10, MaxLon: -170, MaxLat: 10}))
}

func TestBoundingBoxValid(t *testing.T) {
	require.True(t, geom.BoundingBox{MinLon: 13, MinLat: 52, MaxLon: 13.5, MaxLat: 52.5}.Valid())
	require.True(t, geom.BoundingBox{MinLon: 170, MinLat: -10, MaxLon: -170, MaxLat: 10}.Valid())
	require.False(t, geom.BoundingBox{MinLon: 200, MinLat: 0, MaxLon: 210, MaxLat: 10}.Valid())
	require.False(t, geom.BoundingBox{MinLon: 0, MinLat: 50, MaxLon: 1, MaxLat: 40}.Valid())
}

func TestComputeMetricsBerlin(t *testing.T) {
	m := geom.ComputeMetrics(geom.BoundingBox{MinLon: 13.0, MinLat: 52.0, MaxLon: 13.5, MaxLat: 52.5})
	require.InDelta(t, 13.25, m.CenterLon, 1e-9)
	require.InDelta(t, 52.25, m.CenterLat, 1e-9)
	require.InDelta(t, 0.5, m.LonExtentDeg, 1e-9)
	require.Equal(t, 33, m.CenterZone)
	require.Equal(t, 1, m.ZoneSpan)
	require.False(t, m.Polar)
	require.False(t, m.NearEquator)
	require.False(t, m.AntimeridianCrossing)
}

func TestComputeMetricsAntimeridian(t *testing.T) {
	m := geom.ComputeMetrics(geom.BoundingBox{MinLon: 170, MinLat: -10, MaxLon: -170, MaxLat: 10})
	require.True(t, m.AntimeridianCrossing)
	require.InDelta(t, 20.0, m.LonExtentDeg, 1e-9)
	require.InDelta(t, 0.0, m.CenterLat, 1e-9)
	require.True(t, m.NearEquator)
	require.InDelta(t, 180.0, math.Abs(m.CenterLon), 1e-9)
	require.Equal(t, 10, m.ZoneSpan)
}

func TestComputeMetricsPolar(t *testing.T) {
	m := geom.ComputeMetrics(geom.BoundingBox{MinLon: -60, MinLat: -88, MaxLon: -50, MaxLat: -78})
	require.True(t, m.Polar)
	// extreme edge beyond 85° flags polar even with a lower center
	m = geom.ComputeMetrics(geom.BoundingBox{MinLon: 0, MinLat: 70, MaxLon: 10, MaxLat: 86})
	require.True(t, m.Polar)
}

func TestOrientationRatio(t *testing.T) {
	// wide east-west strip
	m := geom.ComputeMetrics(geom.BoundingBox{MinLon: -120, MinLat: 40, MaxLon: -80, MaxLat: 45})
	require.Greater(t, m.OrientationRatio, 1.5)
	// degenerate lat extent is clamped, no division blowup
	m = geom.ComputeMetrics(geom.BoundingBox{MinLon: 0, MinLat: 10, MaxLon: 1, MaxLat: 10})
	require.False(t, math.IsInf(m.OrientationRatio, 0))
}

func TestBounds(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{13.0, 52.0}))
	fc.Append(geojson.NewFeature(orb.LineString{{13.2, 52.1}, {13.5, 52.5}}))
	b, ok := geom.Bounds(fc)
	require.True(t, ok)
	require.Equal(t, geom.BoundingBox{MinLon: 13.0, MinLat: 52.0, MaxLon: 13.5, MaxLat: 52.5}, b)

	empty := geojson.NewFeatureCollection()
	_, ok = geom.Bounds(empty)
	require.False(t, ok)
}

func TestBoundsAntimeridian(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{175.0, -5.0}))
	fc.Append(geojson.NewFeature(orb.Point{-178.0, 5.0}))
	b, ok := geom.Bounds(fc)
	require.True(t, ok)
	require.True(t, b.CrossesAntimeridian())
	require.InDelta(t, 175.0, b.MinLon, 1e-9)
	require.InDelta(t, -178.0, b.MaxLon, 1e-9)
}
