package crs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/neospatial/geofit/mods/geom"
)

// wkt.go is the factory for the four parametric projection families built
// on the fly when no standard EPSG code fits a bounding box.

// WKTBuild is one constructed projection definition. Hash is the xxhash64
// digest of the WKT text so identical projections can be recognized without
// re-parsing.
type WKTBuild struct {
	Family Family
	Name   string
	WKT    string
	Hash   string
	Params map[string]float64
}

const wgs84GeogCS = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`

// conicParallels places the standard parallels at the first and third
// latitude quartiles of the box, which keeps distortion low across the
// box's north-south extent.
func conicParallels(b geom.BoundingBox) (sp1, sp2 float64) {
	extent := b.MaxLat - b.MinLat
	return b.MinLat + 0.25*extent, b.MinLat + 0.75*extent
}

// NewLambertConformalConic builds a conformal conic centered on the box.
func NewLambertConformalConic(b geom.BoundingBox) WKTBuild {
	m := geom.ComputeMetrics(b)
	sp1, sp2 := conicParallels(b)
	name := fmt.Sprintf("Custom_Lambert_Conformal_Conic_cm%.4f_lat%.4f", m.CenterLon, m.CenterLat)
	wkt := fmt.Sprintf(`PROJCS["%s",%s,PROJECTION["Lambert_Conformal_Conic_2SP"],`+
		`PARAMETER["False_Easting",0.0],PARAMETER["False_Northing",0.0],`+
		`PARAMETER["Central_Meridian",%.6f],PARAMETER["Standard_Parallel_1",%.6f],`+
		`PARAMETER["Standard_Parallel_2",%.6f],PARAMETER["Latitude_Of_Origin",%.6f],`+
		`UNIT["Meter",1.0]]`,
		name, wgs84GeogCS, m.CenterLon, sp1, sp2, m.CenterLat)
	return finishBuild(FamilyLCC, name, wkt, map[string]float64{
		"central_meridian":    m.CenterLon,
		"latitude_of_origin":  m.CenterLat,
		"standard_parallel_1": sp1,
		"standard_parallel_2": sp2,
	})
}

// NewAlbersEqualArea builds an equal-area conic with the same parallel
// placement as the LCC builder.
func NewAlbersEqualArea(b geom.BoundingBox) WKTBuild {
	m := geom.ComputeMetrics(b)
	sp1, sp2 := conicParallels(b)
	name := fmt.Sprintf("Custom_Albers_Equal_Area_cm%.4f_lat%.4f", m.CenterLon, m.CenterLat)
	wkt := fmt.Sprintf(`PROJCS["%s",%s,PROJECTION["Albers_Conic_Equal_Area"],`+
		`PARAMETER["False_Easting",0.0],PARAMETER["False_Northing",0.0],`+
		`PARAMETER["Central_Meridian",%.6f],PARAMETER["Standard_Parallel_1",%.6f],`+
		`PARAMETER["Standard_Parallel_2",%.6f],PARAMETER["Latitude_Of_Origin",%.6f],`+
		`UNIT["Meter",1.0]]`,
		name, wgs84GeogCS, m.CenterLon, sp1, sp2, m.CenterLat)
	return finishBuild(FamilyAlbers, name, wkt, map[string]float64{
		"central_meridian":    m.CenterLon,
		"latitude_of_origin":  m.CenterLat,
		"standard_parallel_1": sp1,
		"standard_parallel_2": sp2,
	})
}

// NewPolarLAEA builds a Lambert azimuthal equal-area projection centered on
// the pole of the given hemisphere.
func NewPolarLAEA(north bool, centralMeridian float64) WKTBuild {
	lat0 := 90.0
	tag := "North"
	if !north {
		lat0 = -90.0
		tag = "South"
	}
	name := fmt.Sprintf("Custom_Polar_LAEA_%s", tag)
	wkt := fmt.Sprintf(`PROJCS["%s",%s,PROJECTION["Lambert_Azimuthal_Equal_Area"],`+
		`PARAMETER["False_Easting",0.0],PARAMETER["False_Northing",0.0],`+
		`PARAMETER["Central_Meridian",%.6f],PARAMETER["Latitude_Of_Origin",%.1f],`+
		`UNIT["Meter",1.0]]`,
		name, wgs84GeogCS, centralMeridian, lat0)
	return finishBuild(FamilyPolarLAEA, name, wkt, map[string]float64{
		"central_meridian":   centralMeridian,
		"latitude_of_origin": lat0,
	})
}

// NewPolarStereographic builds a conformal stereographic projection centered
// on the pole of the given hemisphere.
func NewPolarStereographic(north bool, centralMeridian float64) WKTBuild {
	lat0 := 90.0
	tag := "North"
	if !north {
		lat0 = -90.0
		tag = "South"
	}
	name := fmt.Sprintf("Custom_Polar_Stereographic_%s", tag)
	wkt := fmt.Sprintf(`PROJCS["%s",%s,PROJECTION["Polar_Stereographic"],`+
		`PARAMETER["False_Easting",0.0],PARAMETER["False_Northing",0.0],`+
		`PARAMETER["Central_Meridian",%.6f],PARAMETER["Latitude_Of_Origin",%.1f],`+
		`PARAMETER["Scale_Factor",1.0],UNIT["Meter",1.0]]`,
		name, wgs84GeogCS, centralMeridian, lat0)
	return finishBuild(FamilyPolarStereo, name, wkt, map[string]float64{
		"central_meridian":   centralMeridian,
		"latitude_of_origin": lat0,
		"scale_factor":       1.0,
	})
}

func finishBuild(family Family, name, wkt string, params map[string]float64) WKTBuild {
	return WKTBuild{
		Family: family,
		Name:   name,
		WKT:    wkt,
		Hash:   fmt.Sprintf("%016x", xxhash.Sum64String(wkt)),
		Params: params,
	}
}
