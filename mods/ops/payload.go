package ops

import (
	"fmt"

	"github.com/neospatial/geofit/mods/crs"
	"github.com/neospatial/geofit/mods/geom"
	"github.com/paulmach/orb/geojson"
	"github.com/tidwall/gjson"
)

// Layer is one named input feature collection.
type Layer struct {
	Name       string
	Title      string
	Collection *geojson.FeatureCollection
}

func (l Layer) label() string {
	switch {
	case l.Title != "" && l.Name != "":
		return fmt.Sprintf("%s (%s)", l.Title, l.Name)
	case l.Title != "":
		return l.Title
	case l.Name != "":
		return l.Name
	}
	return "unnamed layer"
}

// NormalizeCollection accepts a GeoJSON FeatureCollection, single Feature,
// or bare geometry and returns a feature collection.
func NormalizeCollection(data []byte) (*geojson.FeatureCollection, error) {
	switch gjson.GetBytes(data, "type").String() {
	case "FeatureCollection":
		return geojson.UnmarshalFeatureCollection(data)
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		fc := geojson.NewFeatureCollection()
		fc.Append(f)
		return fc, nil
	case "Point", "MultiPoint", "LineString", "MultiLineString", "Polygon", "MultiPolygon", "GeometryCollection":
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		fc := geojson.NewFeatureCollection()
		fc.Append(geojson.NewFeature(g.Geometry()))
		return fc, nil
	}
	return nil, fmt.Errorf("unsupported GeoJSON payload type %q", gjson.GetBytes(data, "type").String())
}

// backfillProperties makes sure every feature carries a properties object,
// strict GeoJSON consumers reject null properties.
func backfillProperties(fc *geojson.FeatureCollection) {
	for _, f := range fc.Features {
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
	}
}

// buildCRSMetadata renders the _crs_metadata object per the interchange
// contract: projection selection fields plus the method decision.
func buildCRSMetadata(sel crs.Selection, methodKey string, method Method, methodReason string) map[string]any {
	meta := map[string]any{
		"selection_reason": sel.SelectionReason,
		"auto_selected":    sel.AutoSelected,
		"decision_path":    sel.DecisionPath,
		"decision_inputs":  sel.DecisionInputs,
	}
	meta[methodKey] = string(method)
	meta[methodKey+"_reason"] = methodReason
	if sel.Kind == crs.KindCustomWKT {
		meta["wkt"] = sel.WKT
		meta["crs_name"] = sel.CRSName
		meta["wkt_hash"] = sel.WKTHash
		meta["wkt_params"] = sel.Params
	} else {
		meta["epsg_code"] = sel.EPSG
		if sel.CRSName != "" {
			meta["crs_name"] = sel.CRSName
		}
	}
	return meta
}

// attachMetadata places the metadata under the collection's top-level
// properties member.
func attachMetadata(fc *geojson.FeatureCollection, meta map[string]any) {
	if fc.ExtraMembers == nil {
		fc.ExtraMembers = geojson.Properties{}
	}
	props, _ := fc.ExtraMembers["properties"].(map[string]any)
	if props == nil {
		props = map[string]any{}
	}
	props["_crs_metadata"] = meta
	fc.ExtraMembers["properties"] = props
}

// boundsOf wraps geom.Bounds for readability at call sites.
func boundsOf(fc *geojson.FeatureCollection) (geom.BoundingBox, bool) {
	return geom.Bounds(fc)
}
