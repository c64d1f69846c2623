package ops

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/neospatial/geofit/mods/crs"
	"github.com/neospatial/geofit/mods/geodesic"
	"github.com/neospatial/geofit/mods/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// radius unit → meters
var bufferUnitFactor = map[string]float64{
	"meters":     1,
	"kilometers": 1000,
	"miles":      1609.34,
}

type BufferOptions struct {
	Radius     float64
	RadiusUnit string
	// BufferCRS is the static fallback projection used when auto
	// optimization is off or nothing better fits. Empty means EPSG:3857.
	BufferCRS          string
	Dissolve           bool
	AutoOptimizeCRS    bool
	OverrideCRS        string
	ProjectionMetadata bool
}

// Buffer buffers the single input layer by the given radius, choosing
// geodesic or planar execution from the input's bounding box metrics.
// Output geometries are WGS84. Internal failures surface as errors; an
// empty input yields an empty collection and no error.
func Buffer(layers []Layer, opts BufferOptions) (result *geojson.FeatureCollection, err error) {
	defer func() {
		if r := recover(); r != nil {
			plog.Errorf("buffer: panic: %v\n%s", r, debug.Stack())
			result, err = nil, fmt.Errorf("buffer: internal error: %v", r)
		}
	}()

	if len(layers) != 1 {
		labels := make([]string, 0, len(layers))
		for _, l := range layers {
			labels = append(labels, l.label())
		}
		return nil, fmt.Errorf("buffer requires exactly one input layer, got %d: %s",
			len(layers), strings.Join(labels, ", "))
	}

	factor, ok := bufferUnitFactor[opts.RadiusUnit]
	if !ok {
		if opts.RadiusUnit != "" {
			plog.Warnf("buffer: unknown radius unit %q, defaulting to meters", opts.RadiusUnit)
		}
		factor = 1
	}
	radiusM := opts.Radius * factor
	if radiusM <= 0 {
		return nil, fmt.Errorf("buffer radius must be positive, got %v %s", opts.Radius, opts.RadiusUnit)
	}

	fc := layers[0].Collection
	if fc == nil || len(fc.Features) == 0 {
		return geojson.NewFeatureCollection(), nil
	}
	backfillProperties(fc)

	bbox, ok := boundsOf(fc)
	if !ok {
		return geojson.NewFeatureCollection(), nil
	}
	metrics := geom.ComputeMetrics(bbox)
	method, methodReason := ChooseBufferMethod(metrics, radiusM)
	plog.Debugf("buffer: method=%s (%s)", method, methodReason)

	sel := selectCRS(fc, crs.OpBuffer, opts.AutoOptimizeCRS, opts.OverrideCRS, opts.BufferCRS)
	transformer, sel := resolveSelection(sel)

	planarOne := func(g orb.Geometry) orb.Geometry {
		projected, finite := projectGeometry(g, transformer.Forward)
		if !finite {
			plog.Warnf("buffer: reprojection produced non-finite coordinates, keeping original geometry")
			return g
		}
		buffered, bErr := bufferPlanar(projected, radiusM)
		if bErr != nil {
			plog.Warnf("buffer: planar buffering failed for %s: %s", g.GeoJSONType(), bErr.Error())
			return g
		}
		back, finite := projectGeometry(buffered, transformer.Inverse)
		if !finite {
			plog.Warnf("buffer: inverse reprojection produced non-finite coordinates, keeping original geometry")
			return g
		}
		return back
	}

	out := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		var buffered orb.Geometry
		if method == MethodGeodesic {
			switch g := f.Geometry.(type) {
			case orb.Point:
				buffered = geodesic.PointBuffer(g, radiusM)
			case orb.MultiPoint:
				circles := make([]orb.Geometry, 0, len(g))
				for _, p := range g {
					circles = append(circles, geodesic.PointBuffer(p, radiusM))
				}
				merged, uErr := unionAll(circles)
				if uErr != nil {
					return nil, fmt.Errorf("buffer: merging point buffers: %w", uErr)
				}
				buffered = merged
			default:
				// geodesic buffering is only exact for points, other
				// geometries take the planar path in the selected projection
				plog.Warnf("buffer: %s has no geodesic buffer, falling back to planar", f.Geometry.GeoJSONType())
				buffered = planarOne(f.Geometry)
			}
		} else {
			buffered = planarOne(f.Geometry)
		}
		nf := geojson.NewFeature(buffered)
		nf.ID = f.ID
		nf.Properties = f.Properties
		out.Append(nf)
	}

	if opts.Dissolve && len(out.Features) > 1 {
		geoms := make([]orb.Geometry, 0, len(out.Features))
		for _, f := range out.Features {
			geoms = append(geoms, f.Geometry)
		}
		merged, uErr := unionAll(geoms)
		if uErr != nil {
			return nil, fmt.Errorf("buffer: dissolve: %w", uErr)
		}
		// attributes collapse to the first feature's
		first := out.Features[0]
		dissolved := geojson.NewFeature(merged)
		dissolved.Properties = first.Properties
		out = geojson.NewFeatureCollection()
		out.Append(dissolved)
	}

	if opts.ProjectionMetadata {
		meta := buildCRSMetadata(sel, "buffer_method", method, methodReason)
		meta["radius_m"] = radiusM
		attachMetadata(out, meta)
	}
	return out, nil
}
