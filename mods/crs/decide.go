package crs

import (
	"fmt"
	"math"

	"github.com/neospatial/geofit/mods/geom"
)

// DefaultFallback is used whenever no projection fits or an error degrades
// the selection: Web Mercator, the compromise everyone can consume.
const DefaultFallback = "EPSG:3857"

const (
	localExtentDeg     = 6.0
	zoneSeamExtentDeg  = 3.0
	nearGlobalLonDeg   = 180.0
	nearGlobalLatDeg   = 170.0
	wideStripRatio     = 1.5
	largeRegionAreaKm2 = 2_000_000.0
	geodesicLatitude   = 75.0
)

type macroRegion struct {
	name string
	box  geom.BoundingBox
}

var macroRegions = []macroRegion{
	{"North America", geom.BoundingBox{MinLon: -170, MinLat: 15, MaxLon: -50, MaxLat: 84}},
	{"South America", geom.BoundingBox{MinLon: -85, MinLat: -57, MaxLon: -32, MaxLat: 14}},
	{"Europe", geom.BoundingBox{MinLon: -25, MinLat: 34, MaxLon: 45, MaxLat: 72}},
	{"Africa", geom.BoundingBox{MinLon: -20, MinLat: -36, MaxLon: 52, MaxLat: 38}},
	{"Asia", geom.BoundingBox{MinLon: 25, MinLat: -12, MaxLon: 180, MaxLat: 78}},
	{"Australia", geom.BoundingBox{MinLon: 110, MinLat: -48, MaxLon: 180, MaxLat: -8}},
}

func matchMacroRegion(b geom.BoundingBox) (macroRegion, bool) {
	if b.CrossesAntimeridian() {
		return macroRegion{}, false
	}
	for _, r := range macroRegions {
		if b.MinLon >= r.box.MinLon && b.MaxLon <= r.box.MaxLon &&
			b.MinLat >= r.box.MinLat && b.MaxLat <= r.box.MaxLat {
			return r, true
		}
	}
	return macroRegion{}, false
}

// Decide runs the first-match rule chain mapping a bounding box and an
// operation to a projection. Every step taken is appended to the decision
// path so the outcome can be audited. An empty priority defers to the
// operation's required property; an empty fallback means EPSG:3857.
func Decide(b geom.BoundingBox, op Operation, priority Property, fallback string) Selection {
	if fallback == "" {
		fallback = DefaultFallback
	}
	fallbackCode := 3857
	if code, err := ParseEPSG(fallback); err == nil {
		fallbackCode = code
	}

	var path []string
	step := func(format string, args ...any) {
		path = append(path, fmt.Sprintf(format, args...))
	}

	if !b.Valid() {
		step("bounding box failed range validation")
		return Selection{
			Kind:            KindFallback,
			EPSG:            fallbackCode,
			SelectionReason: "Invalid bounding box",
			DecisionPath:    path,
			AutoSelected:    true,
		}
	}

	m := geom.ComputeMetrics(b)
	step("computed metrics: center=(%.4f,%.4f) extent=(%.2f°,%.2f°) zones=%d", m.CenterLon, m.CenterLat, m.LonExtentDeg, m.LatExtentDeg, m.ZoneSpan)

	required := RequiredProperty(op)
	if priority != "" {
		required = priority
		step("projection priority override: %s", required)
	} else {
		step("operation %s requires %s", op, required)
	}

	done := func(sel Selection) Selection {
		sel.DecisionPath = path
		sel.DecisionInputs = m
		sel.AutoSelected = true
		return sel
	}

	if m.LonExtentDeg >= nearGlobalLonDeg || m.LatExtentDeg >= nearGlobalLatDeg {
		step("near-global extent, no single projection fits")
		return done(Selection{
			Kind: KindFallback,
			EPSG: fallbackCode,
			SelectionReason: fmt.Sprintf("Near-global extent (%.1f° lon, %.1f° lat) exceeds any regional projection",
				m.LonExtentDeg, m.LatExtentDeg),
		})
	}

	if m.Polar || IsHighLatitude(m) {
		// beyond 75° UTM and the conic families degrade; polar aspects only
		north := m.CenterLat >= 0
		hemisphere := "north"
		if !north {
			hemisphere = "south"
		}
		var build WKTBuild
		if required == EqualArea {
			build = NewPolarLAEA(north, m.CenterLon)
			step("polar region, equal-area required: polar LAEA (%s)", hemisphere)
		} else {
			build = NewPolarStereographic(north, m.CenterLon)
			step("polar region: polar stereographic (%s)", hemisphere)
		}
		return done(Selection{
			Kind:            KindCustomWKT,
			Family:          build.Family,
			WKT:             build.WKT,
			CRSName:         build.Name,
			WKTHash:         build.Hash,
			Params:          build.Params,
			Hemisphere:      hemisphere,
			SelectionReason: fmt.Sprintf("Polar bounding box (center latitude %.2f°), custom %s", m.CenterLat, build.Family),
		})
	}

	if m.LonExtentDeg <= localExtentDeg && m.LatExtentDeg <= localExtentDeg {
		if m.ZoneSpan >= 2 && m.LonExtentDeg >= zoneSeamExtentDeg {
			step("local extent but straddles UTM zone seam (%d zones over %.2f°), deferring to regional rules", m.ZoneSpan, m.LonExtentDeg)
		} else {
			north := m.CenterLat >= 0
			hemisphere := "north"
			if !north {
				hemisphere = "south"
			}
			step("local extent fits UTM zone %d (%s)", m.CenterZone, hemisphere)
			return done(Selection{
				Kind:            KindUTM,
				Zone:            m.CenterZone,
				Hemisphere:      hemisphere,
				EPSG:            utmEPSG(m.CenterZone, north),
				SelectionReason: fmt.Sprintf("Local extent, UTM zone %d %s hemisphere", m.CenterZone, hemisphere),
			})
		}
	}

	if region, ok := matchMacroRegion(b); ok {
		step("matched macro-region %s", region.name)
		customSelection := func(build WKTBuild, reason string) Selection {
			return Selection{
				Kind:            KindCustomWKT,
				Family:          build.Family,
				WKT:             build.WKT,
				CRSName:         build.Name,
				WKTHash:         build.Hash,
				Params:          build.Params,
				SelectionReason: reason,
			}
		}
		switch {
		case m.OrientationRatio >= wideStripRatio:
			// wide east-west strips distort badly under equal-area conics
			step("orientation ratio %.2f ≥ %.1f forces conformal conic", m.OrientationRatio, wideStripRatio)
			return done(customSelection(NewLambertConformalConic(b),
				fmt.Sprintf("Wide east-west strip over %s (ratio %.2f), conformal LCC", region.name, m.OrientationRatio)))
		case m.AreaKm2 >= largeRegionAreaKm2:
			step("area %.0f km² ≥ %.0f km² forces equal-area conic", m.AreaKm2, largeRegionAreaKm2)
			return done(customSelection(NewAlbersEqualArea(b),
				fmt.Sprintf("Large region over %s (%.0f km²), equal-area Albers", region.name, m.AreaKm2)))
		case required == EqualArea:
			step("required property %s: Albers", required)
			return done(customSelection(NewAlbersEqualArea(b),
				fmt.Sprintf("Regional extent over %s, equal-area Albers", region.name)))
		default:
			// COMPROMISE and EQUIDISTANT also resolve to LCC here
			step("required property %s resolves to LCC", required)
			return done(customSelection(NewLambertConformalConic(b),
				fmt.Sprintf("Regional extent over %s, conformal LCC", region.name)))
		}
	}

	step("no macro-region matched")
	reason := fmt.Sprintf("No regional projection fits (%d UTM zones", m.ZoneSpan)
	if m.AntimeridianCrossing {
		reason += ", crosses antimeridian"
	}
	reason += "), fallback " + fallback
	return done(Selection{
		Kind:            KindFallback,
		EPSG:            fallbackCode,
		SelectionReason: reason,
	})
}

// IsHighLatitude reports whether the center latitude is beyond the
// threshold where planar math stops being trustworthy.
func IsHighLatitude(m geom.Metrics) bool {
	return math.Abs(m.CenterLat) >= geodesicLatitude
}
