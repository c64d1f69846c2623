// Package ops executes buffer and area operations over GeoJSON feature
// collections, choosing between planar math in an auto-selected projection
// and exact geodesic math on the WGS84 ellipsoid.
package ops

import (
	"fmt"
	"math"
	"strings"

	"github.com/neospatial/geofit/mods/geom"
)

// Method tags how an operation computes: in a projected plane or on the
// ellipsoid.
type Method string

const (
	MethodPlanar   Method = "planar"
	MethodGeodesic Method = "geodesic"
)

const (
	geodesicRadiusM   = 50_000.0
	geodesicLatDeg    = 75.0
	nonLocalExtentDeg = 6.0
)

// ChooseBufferMethod decides planar vs geodesic buffering. Every trigger
// that fires is recorded in the reason, so identical inputs always produce
// identical output.
func ChooseBufferMethod(m geom.Metrics, radiusM float64) (Method, string) {
	var reasons []string
	if radiusM > geodesicRadiusM {
		reasons = append(reasons, fmt.Sprintf("radius %.0f m exceeds %.0f m", radiusM, geodesicRadiusM))
	}
	reasons = append(reasons, extentTriggers(m)...)
	if len(reasons) == 0 {
		return MethodPlanar, "local extent and small radius, buffering in projected plane"
	}
	return MethodGeodesic, strings.Join(reasons, "; ")
}

// ChooseAreaMethod mirrors the buffer heuristic without the radius trigger.
func ChooseAreaMethod(m geom.Metrics) (Method, string) {
	reasons := extentTriggers(m)
	if len(reasons) == 0 {
		return MethodPlanar, "local extent, area in equal-area projected plane"
	}
	return MethodGeodesic, strings.Join(reasons, "; ")
}

func extentTriggers(m geom.Metrics) []string {
	var reasons []string
	if math.Abs(m.CenterLat) >= geodesicLatDeg {
		reasons = append(reasons, fmt.Sprintf("high latitude (center %.2f°)", m.CenterLat))
	}
	if m.ZoneSpan >= 2 {
		reasons = append(reasons, fmt.Sprintf("spans %d UTM zones", m.ZoneSpan))
	}
	if m.AntimeridianCrossing {
		reasons = append(reasons, "crosses antimeridian")
	}
	if m.LonExtentDeg > nonLocalExtentDeg || m.LatExtentDeg > nonLocalExtentDeg {
		reasons = append(reasons, fmt.Sprintf("non-local extent (%.2f° lon, %.2f° lat)", m.LonExtentDeg, m.LatExtentDeg))
	}
	return reasons
}
