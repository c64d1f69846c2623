package ops

import (
	"fmt"
	"math"
	"runtime/debug"

	"github.com/neospatial/geofit/mods/crs"
	"github.com/neospatial/geofit/mods/geodesic"
	"github.com/neospatial/geofit/mods/geom"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// square meters → requested unit
var areaUnitFactor = map[string]float64{
	"square_meters":     1,
	"square_kilometers": 1e-6,
	"hectares":          1e-4,
}

type AreaOptions struct {
	// Unit is square_meters (default), square_kilometers, or hectares.
	Unit               string
	FallbackCRS        string
	AutoOptimizeCRS    bool
	OverrideCRS        string
	ProjectionMetadata bool
}

// Area annotates every feature of the layer with its area, computed
// geodesically on the ellipsoid or planar in an equal-area projection,
// using the same trigger set as buffering. Geometries pass through
// unchanged; non-areal features get area zero.
func Area(layer Layer, opts AreaOptions) (result *geojson.FeatureCollection, err error) {
	defer func() {
		if r := recover(); r != nil {
			plog.Errorf("area: panic: %v\n%s", r, debug.Stack())
			result, err = nil, fmt.Errorf("area: internal error: %v", r)
		}
	}()

	unit := opts.Unit
	factor, ok := areaUnitFactor[unit]
	if !ok {
		if unit != "" {
			plog.Warnf("area: unknown unit %q, defaulting to square_meters", unit)
		}
		unit, factor = "square_meters", 1
	}

	fc := layer.Collection
	if fc == nil || len(fc.Features) == 0 {
		return geojson.NewFeatureCollection(), nil
	}
	backfillProperties(fc)

	bbox, ok := boundsOf(fc)
	if !ok {
		return geojson.NewFeatureCollection(), nil
	}
	metrics := geom.ComputeMetrics(bbox)
	method, methodReason := ChooseAreaMethod(metrics)
	plog.Debugf("area: method=%s (%s)", method, methodReason)

	sel := selectCRS(fc, crs.OpArea, opts.AutoOptimizeCRS, opts.OverrideCRS, opts.FallbackCRS)
	var transformer *crs.Transformer
	if method == MethodPlanar {
		transformer, sel = resolveSelection(sel)
	}

	out := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		props := geojson.Properties{}
		for k, v := range f.Properties {
			props[k] = v
		}

		var areaM2 float64
		if method == MethodGeodesic {
			var perimeter float64
			areaM2, perimeter = geodesic.Area(f.Geometry)
			if perimeter > 0 {
				props["perimeter_m"] = perimeter
			}
		} else {
			projected, finite := projectGeometry(f.Geometry, transformer.Forward)
			if !finite {
				plog.Warnf("area: reprojection produced non-finite coordinates, using geodesic area for this feature")
				areaM2, _ = geodesic.Area(f.Geometry)
			} else {
				areaM2 = math.Abs(planar.Area(projected))
			}
		}
		if areaM2 == 0 && !isAreal(f.Geometry.GeoJSONType()) {
			plog.Debugf("area: %s contributes zero area", f.Geometry.GeoJSONType())
		}

		props["area"] = areaM2 * factor
		props["area_unit"] = unit

		nf := geojson.NewFeature(f.Geometry)
		nf.ID = f.ID
		nf.Properties = props
		out.Append(nf)
	}

	if opts.ProjectionMetadata {
		attachMetadata(out, buildCRSMetadata(sel, "area_method", method, methodReason))
	}
	return out, nil
}

func isAreal(geoJSONType string) bool {
	return geoJSONType == "Polygon" || geoJSONType == "MultiPolygon"
}
