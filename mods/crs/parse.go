package crs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	projcsNameRe  = regexp.MustCompile(`^PROJCS\["([^"]+)"`)
	projectionRe  = regexp.MustCompile(`PROJECTION\["([^"]+)"\]`)
	wktParamRe    = regexp.MustCompile(`PARAMETER\["([^"]+)",\s*([-+0-9.eE]+)\]`)
	wktFamilyName = map[string]Family{
		"lambert_conformal_conic_2sp":  FamilyLCC,
		"albers_conic_equal_area":      FamilyAlbers,
		"lambert_azimuthal_equal_area": FamilyPolarLAEA,
		"polar_stereographic":          FamilyPolarStereo,
	}
)

// ParseWKT recognizes the projection families this engine emits and
// extracts their parameters. A foreign WKT that names any other projection
// is a projection error, the caller falls back per the error policy.
func ParseWKT(wkt string) (WKTBuild, error) {
	proj := projectionRe.FindStringSubmatch(wkt)
	if proj == nil {
		return WKTBuild{}, fmt.Errorf("wkt: no PROJECTION found")
	}
	family, ok := wktFamilyName[strings.ToLower(proj[1])]
	if !ok {
		return WKTBuild{}, fmt.Errorf("wkt: unsupported projection %q", proj[1])
	}
	name := "custom"
	if m := projcsNameRe.FindStringSubmatch(strings.TrimSpace(wkt)); m != nil {
		name = m[1]
	}
	params := map[string]float64{}
	for _, m := range wktParamRe.FindAllStringSubmatch(wkt, -1) {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return WKTBuild{}, fmt.Errorf("wkt: parameter %q: %w", m[1], err)
		}
		params[strings.ToLower(m[1])] = v
	}
	b := finishBuild(family, name, wkt, params)
	return b, nil
}

// ParseEPSG parses an "EPSG:nnn" identifier.
func ParseEPSG(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToUpper(s), "EPSG:") {
		return 0, fmt.Errorf("not an EPSG identifier: %q", s)
	}
	code, err := strconv.Atoi(s[5:])
	if err != nil || code <= 0 {
		return 0, fmt.Errorf("invalid EPSG code: %q", s)
	}
	return code, nil
}
