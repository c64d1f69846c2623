package crs_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/neospatial/geofit/mods/crs"
	"github.com/neospatial/geofit/mods/geom"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func requireRoundTrip(t *testing.T, tr *crs.Transformer, lon, lat, tol float64) {
	t.Helper()
	projected := tr.Forward(orb.Point{lon, lat})
	back := tr.Inverse(projected)
	require.InDelta(t, lon, back.Lon(), tol)
	require.InDelta(t, lat, back.Lat(), tol)
}

func TestResolveUTM(t *testing.T) {
	sel := crs.Selection{Kind: crs.KindUTM, Zone: 33, Hemisphere: "north", EPSG: 32633}
	tr, err := crs.Resolve(sel)
	require.NoError(t, err)

	// Berlin in UTM 33N, well-known reference coordinates.
	p := tr.Forward(orb.Point{13.4, 52.52})
	require.InDelta(t, 391000, p[0], 5000)
	require.InDelta(t, 5820000, p[1], 5000)
	// the transverse mercator inverse converges to a few meters, not exactly
	requireRoundTrip(t, tr, 13.4, 52.52, 1e-4)
}

func TestResolveUTMSouth(t *testing.T) {
	sel := crs.Selection{Kind: crs.KindUTM, Zone: 55, Hemisphere: "south", EPSG: 32755}
	tr, err := crs.Resolve(sel)
	require.NoError(t, err)

	p := tr.Forward(orb.Point{145.0, -37.8})
	require.Greater(t, p[1], 0.0, "false northing keeps southern coordinates positive")
	requireRoundTrip(t, tr, 145.0, -37.8, 1e-4)
}

func TestResolveUTMBadZone(t *testing.T) {
	err := crs.Validate(crs.Selection{Kind: crs.KindUTM, Zone: 61})
	require.Error(t, err)
}

func TestResolveWebMercator(t *testing.T) {
	sel := crs.Selection{Kind: crs.KindFallback, EPSG: 3857}
	tr, err := crs.Resolve(sel)
	require.NoError(t, err)

	p := tr.Forward(orb.Point{0, 0})
	require.InDelta(t, 0, p[0], 1e-6)
	require.InDelta(t, 0, p[1], 1e-6)

	p = tr.Forward(orb.Point{180, 0})
	require.InDelta(t, 20037508.34, p[0], 10)
	requireRoundTrip(t, tr, -73.98, 40.71, 1e-7)
}

func TestResolvePolarStereographic(t *testing.T) {
	build := crs.NewPolarStereographic(true, 0)
	sel := crs.Selection{Kind: crs.KindCustomWKT, Family: build.Family, Params: build.Params}
	tr, err := crs.Resolve(sel)
	require.NoError(t, err)

	// The pole itself maps to the projection origin.
	p := tr.Forward(orb.Point{0, 90})
	require.InDelta(t, 0, p[0], 1e-3)
	require.InDelta(t, 0, p[1], 1e-3)

	// A point one degree off the pole sits roughly 111 km out.
	p = tr.Forward(orb.Point{0, 89})
	dist := math.Hypot(p[0], p[1])
	require.InDelta(t, 111700, dist, 1000)

	requireRoundTrip(t, tr, 10, 78.5, 1e-6)
	requireRoundTrip(t, tr, -150, 82, 1e-6)
}

func TestResolvePolarStereographicSouth(t *testing.T) {
	build := crs.NewPolarStereographic(false, 0)
	sel := crs.Selection{Kind: crs.KindCustomWKT, Family: build.Family, Params: build.Params}
	tr, err := crs.Resolve(sel)
	require.NoError(t, err)
	requireRoundTrip(t, tr, -55, -82.5, 1e-6)
}

func TestResolvePolarLAEA(t *testing.T) {
	build := crs.NewPolarLAEA(true, 0)
	sel := crs.Selection{Kind: crs.KindCustomWKT, Family: build.Family, Params: build.Params}
	tr, err := crs.Resolve(sel)
	require.NoError(t, err)

	p := tr.Forward(orb.Point{0, 90})
	require.InDelta(t, 0, p[0], 1e-3)
	require.InDelta(t, 0, p[1], 1e-3)

	requireRoundTrip(t, tr, 10.5, 78.5, 1e-4)
	requireRoundTrip(t, tr, 179, 76, 1e-4)
}

func TestResolveConics(t *testing.T) {
	midwest := geom.BoundingBox{MinLon: -110, MinLat: 30, MaxLon: -90, MaxLat: 48}
	lcc := crs.NewLambertConformalConic(midwest)
	sel := crs.Selection{Kind: crs.KindCustomWKT, Family: lcc.Family, Params: lcc.Params}
	tr, err := crs.Resolve(sel)
	require.NoError(t, err)
	requireRoundTrip(t, tr, -100, 39, 1e-6)
	requireRoundTrip(t, tr, -92.5, 33, 1e-6)

	albers := crs.NewAlbersEqualArea(midwest)
	sel = crs.Selection{Kind: crs.KindCustomWKT, Family: albers.Family, Params: albers.Params}
	tr, err = crs.Resolve(sel)
	require.NoError(t, err)
	requireRoundTrip(t, tr, -100, 39, 1e-6)
}

func TestResolveUnknownEPSG(t *testing.T) {
	err := crs.Validate(crs.Selection{Kind: crs.KindFallback, EPSG: 999999})
	require.Error(t, err)
}

func TestSelectionFromSpecEPSG(t *testing.T) {
	sel, err := crs.SelectionFromSpec("EPSG:32633")
	require.NoError(t, err)
	require.Equal(t, crs.KindUTM, sel.Kind)
	require.Equal(t, 33, sel.Zone)
	require.Equal(t, "north", sel.Hemisphere)

	sel, err = crs.SelectionFromSpec("EPSG:32755")
	require.NoError(t, err)
	require.Equal(t, crs.KindUTM, sel.Kind)
	require.Equal(t, "south", sel.Hemisphere)

	sel, err = crs.SelectionFromSpec("EPSG:3857")
	require.NoError(t, err)
	require.Equal(t, crs.KindFallback, sel.Kind)
	require.Equal(t, 3857, sel.EPSG)
}

func TestSelectionFromSpecWKT(t *testing.T) {
	build := crs.NewPolarLAEA(true, 0)
	record := `{"authority":"WKT","wkt":` + strconv.Quote(build.WKT) + `}`
	sel, err := crs.SelectionFromSpec(record)
	require.NoError(t, err)
	require.Equal(t, crs.KindCustomWKT, sel.Kind)
	require.Equal(t, crs.FamilyPolarLAEA, sel.Family)
	require.Equal(t, build.Hash, sel.WKTHash)
}

func TestSelectionFromSpecInvalid(t *testing.T) {
	_, err := crs.SelectionFromSpec("urn:ogc:def:crs:EPSG::4326")
	require.Error(t, err)
	_, err = crs.SelectionFromSpec(`{"authority":"PROJ4","wkt":"x"}`)
	require.Error(t, err)
	_, err = crs.SelectionFromSpec(`{"authority":"WKT"`)
	require.Error(t, err)
}
