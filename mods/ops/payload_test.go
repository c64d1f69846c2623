package ops_test

import (
	"testing"

	"github.com/neospatial/geofit/mods/ops"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCollectionFeatureCollection(t *testing.T) {
	fc, err := ops.NormalizeCollection([]byte(`{
		"type":"FeatureCollection",
		"features":[
			{"type":"Feature","properties":{"name":"a"},"geometry":{"type":"Point","coordinates":[13.4,52.52]}}
		]}`))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	require.Equal(t, "a", fc.Features[0].Properties["name"])
}

func TestNormalizeCollectionFeature(t *testing.T) {
	fc, err := ops.NormalizeCollection([]byte(`{"type":"Feature","properties":null,"geometry":{"type":"Point","coordinates":[1,2]}}`))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	require.Equal(t, "Point", fc.Features[0].Geometry.GeoJSONType())
}

func TestNormalizeCollectionBareGeometry(t *testing.T) {
	fc, err := ops.NormalizeCollection([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	require.Equal(t, "Polygon", fc.Features[0].Geometry.GeoJSONType())
}

func TestNormalizeCollectionUnsupported(t *testing.T) {
	_, err := ops.NormalizeCollection([]byte(`{"type":"Topology"}`))
	require.Error(t, err)
	_, err = ops.NormalizeCollection([]byte(`[]`))
	require.Error(t, err)
}
