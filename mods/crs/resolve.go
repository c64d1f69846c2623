package crs

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/tidwall/gjson"
	"github.com/wroge/wgs84"
)

// Transformer converts between WGS84 lon/lat and a projected plane. Both
// closures are usable with orb/project.
type Transformer struct {
	Forward func(orb.Point) orb.Point // lon/lat -> easting/northing (meters)
	Inverse func(orb.Point) orb.Point
}

// Resolve produces a Transformer for a selection. UTM and Web Mercator are
// constructed from parameters, never looked up, so they cannot fail; custom
// families rebuild their transform from the WKT parameters.
func Resolve(sel Selection) (*Transformer, error) {
	c, err := crsFor(sel)
	if err != nil {
		return nil, err
	}
	return newTransformer(c), nil
}

// Validate reports whether the selection maps to a usable CRS.
func Validate(sel Selection) error {
	_, err := crsFor(sel)
	return err
}

// SelectionFromSpec builds a manual-override selection from an interchange
// CRS identifier: an "EPSG:nnn" string or a {"authority":"WKT","wkt":...}
// JSON record.
func SelectionFromSpec(spec string) (Selection, error) {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "{") {
		if !gjson.Valid(spec) {
			return Selection{}, fmt.Errorf("override CRS is not valid JSON")
		}
		authority := gjson.Get(spec, "authority").String()
		wkt := gjson.Get(spec, "wkt").String()
		if !strings.EqualFold(authority, "WKT") || wkt == "" {
			return Selection{}, fmt.Errorf("override CRS record must carry authority=WKT and a wkt string")
		}
		build, err := ParseWKT(wkt)
		if err != nil {
			return Selection{}, err
		}
		sel := Selection{
			Kind:            KindCustomWKT,
			Family:          build.Family,
			WKT:             build.WKT,
			CRSName:         build.Name,
			WKTHash:         build.Hash,
			Params:          build.Params,
			SelectionReason: "Manual override",
		}
		if err := Validate(sel); err != nil {
			return Selection{}, err
		}
		return sel, nil
	}

	code, err := ParseEPSG(spec)
	if err != nil {
		return Selection{}, err
	}
	sel := Selection{Kind: KindFallback, EPSG: code, SelectionReason: "Manual override"}
	if code >= 32601 && code <= 32660 {
		sel = Selection{Kind: KindUTM, Zone: code - 32600, Hemisphere: "north", EPSG: code, SelectionReason: "Manual override"}
	} else if code >= 32701 && code <= 32760 {
		sel = Selection{Kind: KindUTM, Zone: code - 32700, Hemisphere: "south", EPSG: code, SelectionReason: "Manual override"}
	}
	if err := Validate(sel); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

func newTransformer(c wgs84.CoordinateReferenceSystem) *Transformer {
	fwd := wgs84.Transform(lonLatCRS, c)
	inv := wgs84.Transform(c, lonLatCRS)
	return &Transformer{
		Forward: func(p orb.Point) orb.Point {
			x, y, _ := fwd(p.Lon(), p.Lat(), 0)
			return orb.Point{x, y}
		},
		Inverse: func(p orb.Point) orb.Point {
			lon, lat, _ := inv(p[0], p[1], 0)
			return orb.Point{lon, lat}
		},
	}
}

func crsFor(sel Selection) (wgs84.CoordinateReferenceSystem, error) {
	switch sel.Kind {
	case KindUTM:
		if sel.Zone < 1 || sel.Zone > 60 {
			return nil, fmt.Errorf("invalid UTM zone %d", sel.Zone)
		}
		return utmCRS(sel.Zone, sel.Hemisphere != "south"), nil
	case KindFallback:
		return epsgCRS(sel.EPSG)
	case KindCustomWKT:
		return familyCRS(sel.Family, sel.Params)
	}
	return nil, fmt.Errorf("unknown selection kind %d", sel.Kind)
}

func utmCRS(zone int, north bool) wgs84.CoordinateReferenceSystem {
	falseNorthing := 0.0
	if !north {
		falseNorthing = 10000000.0
	}
	centralMeridian := float64(zone)*6 - 183
	return wgs84.WGS84().TransverseMercator(centralMeridian, 0, 0.9996, 500000, falseNorthing)
}

func epsgCRS(code int) (wgs84.CoordinateReferenceSystem, error) {
	switch {
	case code == 4326:
		return lonLatCRS, nil
	case code == 3857 || code == 900913:
		return wgs84.WGS84().WebMercator(), nil
	case code >= 32601 && code <= 32660:
		return utmCRS(code-32600, true), nil
	case code >= 32701 && code <= 32760:
		return utmCRS(code-32700, false), nil
	}
	if c := wgs84.EPSG().Code(code); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("unknown EPSG code %d", code)
}

func familyCRS(family Family, params map[string]float64) (wgs84.CoordinateReferenceSystem, error) {
	get := func(key string) float64 { return params[key] }
	switch family {
	case FamilyLCC:
		return wgs84.WGS84().LambertConformalConic2SP(
			get("central_meridian"), get("latitude_of_origin"),
			get("standard_parallel_1"), get("standard_parallel_2"),
			get("false_easting"), get("false_northing")), nil
	case FamilyAlbers:
		return wgs84.WGS84().AlbersEqualAreaConic(
			get("central_meridian"), get("latitude_of_origin"),
			get("standard_parallel_1"), get("standard_parallel_2"),
			get("false_easting"), get("false_northing")), nil
	case FamilyPolarLAEA:
		// the polar aspect is the general LAEA centered on a pole
		return wgs84.WGS84().LambertAzimuthalEqualArea(
			get("central_meridian"), get("latitude_of_origin"),
			get("false_easting"), get("false_northing")), nil
	case FamilyPolarStereo:
		return polarStereographic{north: get("latitude_of_origin") >= 0, lon0: get("central_meridian")}, nil
	}
	return nil, fmt.Errorf("unknown projection family %q", family)
}
