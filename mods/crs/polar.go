package crs

import (
	"math"

	"github.com/wroge/wgs84"
)

// polar.go implements polar stereographic as a
// wgs84.CoordinateReferenceSystem so it runs through the same transform
// pipeline as the registry-backed codes. wgs84 has no stereographic of any
// aspect, the formulas are Snyder's ellipsoidal forms on WGS84. The polar
// LAEA family needs no custom type, wgs84's LambertAzimuthalEqualArea
// centered on a pole covers it.

const (
	wgs84SemiMajor  = 6378137.0
	wgs84Flattening = 1 / 298.257223563
)

var (
	wgs84E2 = wgs84Flattening * (2 - wgs84Flattening)
	wgs84E  = math.Sqrt(wgs84E2)

	lonLatCRS = wgs84.WGS84().LonLat()
)

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

// polarStereographic is the conformal polar aspect, scale factor 1 at the pole.
type polarStereographic struct {
	north bool
	lon0  float64
}

func (p polarStereographic) FromWGS84(x, y, z float64) (east, north, h float64) {
	lon, lat, h := lonLatCRS.FromWGS84(x, y, z)
	east, north = p.forward(lon, lat)
	return east, north, h
}

func (p polarStereographic) ToWGS84(east, north, h float64) (x, y, z float64) {
	lon, lat := p.inverse(east, north)
	return lonLatCRS.ToWGS84(lon, lat, h)
}

func (p polarStereographic) Contains(lon, lat float64) bool {
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return false
	}
	if p.north {
		return lat >= 0
	}
	return lat <= 0
}

func stereoRhoFactor() float64 {
	return math.Sqrt(math.Pow(1+wgs84E, 1+wgs84E) * math.Pow(1-wgs84E, 1-wgs84E))
}

func (p polarStereographic) forward(lon, lat float64) (x, y float64) {
	if !p.north {
		lat = -lat
	}
	lam := deg2rad(lon - p.lon0)
	phi := deg2rad(lat)
	sinPhi := math.Sin(phi)
	t := math.Tan(math.Pi/4-phi/2) /
		math.Pow((1-wgs84E*sinPhi)/(1+wgs84E*sinPhi), wgs84E/2)
	rho := 2 * wgs84SemiMajor * t / stereoRhoFactor()
	x = rho * math.Sin(lam)
	y = -rho * math.Cos(lam)
	if !p.north {
		y = -y
	}
	return x, y
}

func (p polarStereographic) inverse(x, y float64) (lon, lat float64) {
	if !p.north {
		y = -y
	}
	rho := math.Hypot(x, y)
	t := rho * stereoRhoFactor() / (2 * wgs84SemiMajor)
	phi := math.Pi/2 - 2*math.Atan(t)
	for i := 0; i < 8; i++ {
		sinPhi := math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-wgs84E*sinPhi)/(1+wgs84E*sinPhi), wgs84E/2))
		if math.Abs(next-phi) < 1e-12 {
			phi = next
			break
		}
		phi = next
	}
	lam := 0.0
	if rho > 0 {
		lam = math.Atan2(x, -y)
	}
	lon = p.lon0 + rad2deg(lam)
	lat = rad2deg(phi)
	if !p.north {
		lat = -lat
	}
	return lon, lat
}

