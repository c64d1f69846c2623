package ops

import (
	"math"

	"github.com/neospatial/geofit/mods/crs"
	"github.com/neospatial/geofit/mods/geom"
	"github.com/neospatial/geofit/mods/logging"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
)

var plog = logging.GetLog("ops")

// selectCRS runs the override/auto/fallback ladder for an operation and
// returns the projection selection. Projection problems never escape as
// errors here; they degrade to the fallback with the reason recorded.
func selectCRS(fc *geojson.FeatureCollection, op crs.Operation, autoOptimize bool, overrideCRS, fallbackCRS string) crs.Selection {
	if fallbackCRS == "" {
		fallbackCRS = crs.DefaultFallback
	}

	if overrideCRS != "" {
		if sel, err := crs.SelectionFromSpec(overrideCRS); err == nil {
			sel.AutoSelected = false
			sel.DecisionPath = append(sel.DecisionPath, "manual override accepted")
			return sel
		} else {
			plog.Warnf("override CRS %q is invalid, continuing with auto-selection: %s", overrideCRS, err.Error())
		}
	}

	fallbackCode := 3857
	if code, err := crs.ParseEPSG(fallbackCRS); err == nil {
		fallbackCode = code
	}

	if !autoOptimize {
		return crs.Selection{
			Kind:            crs.KindFallback,
			EPSG:            fallbackCode,
			SelectionReason: "Auto-optimization disabled",
			DecisionPath:    []string{"auto-optimization disabled, fallback CRS used verbatim"},
			AutoSelected:    false,
		}
	}

	bbox, ok := geom.Bounds(fc)
	if !ok {
		return crs.Selection{
			Kind:            crs.KindFallback,
			EPSG:            fallbackCode,
			SelectionReason: "Empty geometry, fallback CRS",
			DecisionPath:    []string{"no coordinates to derive a bounding box from"},
			AutoSelected:    true,
		}
	}

	sel := crs.Decide(bbox, op, "", fallbackCRS)
	if err := crs.Validate(sel); err != nil {
		plog.Warnf("selected CRS failed validation: %s", err.Error())
		return crs.Selection{
			Kind:            crs.KindFallback,
			EPSG:            3857,
			SelectionReason: "Selected CRS invalid",
			DecisionPath:    append(sel.DecisionPath, "selected CRS failed validation, EPSG:3857 fallback"),
			DecisionInputs:  sel.DecisionInputs,
			AutoSelected:    true,
		}
	}
	return sel
}

// resolveSelection turns a selection into a transformer, degrading to Web
// Mercator when the selection cannot be resolved. The returned selection is
// the one actually in effect.
func resolveSelection(sel crs.Selection) (*crs.Transformer, crs.Selection) {
	t, err := crs.Resolve(sel)
	if err == nil {
		return t, sel
	}
	plog.Warnf("resolving selected CRS failed: %s", err.Error())
	fallback := crs.Selection{
		Kind:            crs.KindFallback,
		EPSG:            3857,
		SelectionReason: "Selected CRS invalid",
		DecisionPath:    append(sel.DecisionPath, "CRS resolution failed, EPSG:3857 fallback"),
		DecisionInputs:  sel.DecisionInputs,
		AutoSelected:    sel.AutoSelected,
	}
	t, _ = crs.Resolve(fallback) // parametric Web Mercator cannot fail
	return t, fallback
}

func pointFinite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsInf(p[0], 0) && !math.IsNaN(p[1]) && !math.IsInf(p[1], 0)
}

func geometryFinite(g orb.Geometry) bool {
	ok := true
	geom.EachPoint(g, func(p orb.Point) {
		if !pointFinite(p) {
			ok = false
		}
	})
	return ok
}

// projectGeometry applies a projection to a copy of the geometry and
// reports whether the result stayed finite.
func projectGeometry(g orb.Geometry, fn func(orb.Point) orb.Point) (orb.Geometry, bool) {
	projected := project.Geometry(orb.Clone(g), fn)
	return projected, geometryFinite(projected)
}

// Prepare reprojects a feature collection into the projection appropriate
// for an operation, handling override, disabled optimization, invalid CRS
// fallback, and degraded (non-fatal) reprojection failure. On degradation
// the original collection is returned together with the selection metadata.
func Prepare(fc *geojson.FeatureCollection, op crs.Operation, autoOptimize bool, overrideCRS, fallbackCRS string) (*geojson.FeatureCollection, crs.Selection) {
	sel := selectCRS(fc, op, autoOptimize, overrideCRS, fallbackCRS)
	t, sel := resolveSelection(sel)

	out := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		projected, ok := projectGeometry(f.Geometry, t.Forward)
		if !ok {
			plog.Warnf("reprojection produced non-finite coordinates, returning original geometry")
			return fc, sel
		}
		nf := geojson.NewFeature(projected)
		nf.ID = f.ID
		nf.Properties = f.Properties
		out.Append(nf)
	}
	return out, sel
}
