package crs

import (
	"fmt"

	"github.com/neospatial/geofit/mods/geom"
)

// Kind tags the projection family of a Selection so consumers must handle
// every case explicitly.
type Kind int

const (
	// KindUTM selects a standard UTM zone (EPSG:326xx / 327xx).
	KindUTM Kind = iota
	// KindCustomWKT selects an on-the-fly parametric projection carried as WKT.
	KindCustomWKT
	// KindFallback selects a static EPSG code, usually Web Mercator.
	KindFallback
)

func (k Kind) String() string {
	switch k {
	case KindUTM:
		return "utm"
	case KindCustomWKT:
		return "wkt"
	case KindFallback:
		return "fallback"
	}
	return "unknown"
}

// Family names the parametric WKT families the factory can build.
type Family string

const (
	FamilyLCC         Family = "lambert_conformal_conic"
	FamilyAlbers      Family = "albers_equal_area"
	FamilyPolarLAEA   Family = "polar_laea"
	FamilyPolarStereo Family = "polar_stereographic"
)

// Selection is the result of the projection decision. Exactly one of the
// three kinds is populated; every selection carries its reasoning trail.
type Selection struct {
	Kind Kind `json:"kind"`

	// KindUTM
	Zone       int    `json:"zone,omitempty"`
	Hemisphere string `json:"hemisphere,omitempty"` // "north" | "south"

	// KindUTM and KindFallback
	EPSG int `json:"epsg_code,omitempty"`

	// KindCustomWKT
	Family  Family             `json:"family,omitempty"`
	WKT     string             `json:"wkt,omitempty"`
	CRSName string             `json:"crs_name,omitempty"`
	WKTHash string             `json:"wkt_hash,omitempty"`
	Params  map[string]float64 `json:"wkt_params,omitempty"`

	SelectionReason string       `json:"selection_reason"`
	DecisionPath    []string     `json:"decision_path"`
	DecisionInputs  geom.Metrics `json:"decision_inputs"`
	AutoSelected    bool         `json:"auto_selected"`
}

// CRSSpec renders the interchange form of the selection: an "EPSG:nnn"
// string, or a {"authority":"WKT","wkt":...} record for custom projections.
func (s Selection) CRSSpec() any {
	if s.Kind == KindCustomWKT {
		return map[string]any{"authority": "WKT", "wkt": s.WKT}
	}
	return fmt.Sprintf("EPSG:%d", s.EPSG)
}

// utmEPSG maps a zone and hemisphere to the standard EPSG code.
func utmEPSG(zone int, north bool) int {
	if north {
		return 32600 + zone
	}
	return 32700 + zone
}
