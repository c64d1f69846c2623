package geom

import "math"

// bbox.go contains the bounding box descriptors used by the projection
// decision rules. All of it is spherical approximation on purpose: these
// numbers are coarse filters, the geodesic package owns the exact math.

const (
	// KmPerDegreeLat is the approximate length of one degree of latitude.
	KmPerDegreeLat = 111.32

	polarLatitude      = 80.0
	extremeLatitude    = 85.0
	equatorialLatitude = 10.0
)

// BoundingBox is a lon/lat rectangle in WGS84 degrees.
// MinLon > MaxLon is a valid state meaning the box crosses the antimeridian.
type BoundingBox struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// Valid reports whether every coordinate is in range. A wrapped box
// (MinLon > MaxLon) is valid.
func (b BoundingBox) Valid() bool {
	if b.MinLon < -180 || b.MinLon > 180 || b.MaxLon < -180 || b.MaxLon > 180 {
		return false
	}
	if b.MinLat < -90 || b.MinLat > 90 || b.MaxLat < -90 || b.MaxLat > 90 {
		return false
	}
	return b.MinLat <= b.MaxLat
}

func (b BoundingBox) CrossesAntimeridian() bool {
	return b.MinLon > b.MaxLon
}

// KmPerDegreeLon is the approximate length of one degree of longitude at
// the given latitude.
func KmPerDegreeLon(lat float64) float64 {
	return KmPerDegreeLat * math.Cos(lat*math.Pi/180)
}

// UTMZone maps a longitude to its UTM zone number, clamped to [1,60].
func UTMZone(lon float64) int {
	zone := int(math.Floor((lon+180)/6)) + 1
	if zone < 1 {
		zone = 1
	} else if zone > 60 {
		zone = 60
	}
	return zone
}

// antimeridianZoneSpan is the sentinel span returned for wrapped boxes,
// large enough to push every rule toward non-local handling.
const antimeridianZoneSpan = 10

// ZoneSpan counts how many UTM zones the box touches.
func ZoneSpan(b BoundingBox) int {
	if b.CrossesAntimeridian() {
		return antimeridianZoneSpan
	}
	return int(math.Abs(float64(UTMZone(b.MaxLon)-UTMZone(b.MinLon)))) + 1
}

// Metrics are the derived descriptors of a bounding box. They are value
// objects recomputed per call, never cached.
type Metrics struct {
	CenterLon            float64 `json:"center_lon"`
	CenterLat            float64 `json:"center_lat"`
	LonExtentDeg         float64 `json:"lon_extent_deg"`
	LatExtentDeg         float64 `json:"lat_extent_deg"`
	LonExtentKm          float64 `json:"lon_extent_km"`
	LatExtentKm          float64 `json:"lat_extent_km"`
	AreaKm2              float64 `json:"area_km2"`
	OrientationRatio     float64 `json:"orientation_ratio"`
	ZoneSpan             int     `json:"utm_zone_span"`
	CenterZone           int     `json:"center_utm_zone"`
	Polar                bool    `json:"is_polar"`
	NearEquator          bool    `json:"is_near_equator"`
	AntimeridianCrossing bool    `json:"antimeridian_crossing"`
}

// ComputeMetrics derives the descriptors of a bounding box.
func ComputeMetrics(b BoundingBox) Metrics {
	m := Metrics{
		AntimeridianCrossing: b.CrossesAntimeridian(),
		ZoneSpan:             ZoneSpan(b),
	}
	if m.AntimeridianCrossing {
		// unwrap across the seam, then normalize the center back
		m.LonExtentDeg = (b.MaxLon + 360) - b.MinLon
		center := b.MinLon + m.LonExtentDeg/2
		if center > 180 {
			center -= 360
		}
		m.CenterLon = center
	} else {
		m.LonExtentDeg = b.MaxLon - b.MinLon
		m.CenterLon = (b.MinLon + b.MaxLon) / 2
	}
	m.LatExtentDeg = b.MaxLat - b.MinLat
	m.CenterLat = (b.MinLat + b.MaxLat) / 2

	m.LonExtentKm = m.LonExtentDeg * KmPerDegreeLon(m.CenterLat)
	m.LatExtentKm = m.LatExtentDeg * KmPerDegreeLat
	m.AreaKm2 = m.LonExtentKm * m.LatExtentKm
	m.OrientationRatio = m.LonExtentKm / math.Max(m.LatExtentKm, 1.0)

	m.CenterZone = UTMZone(m.CenterLon)
	m.Polar = math.Abs(m.CenterLat) >= polarLatitude ||
		b.MaxLat > extremeLatitude || b.MinLat < -extremeLatitude
	m.NearEquator = math.Abs(m.CenterLat) <= equatorialLatitude
	return m
}
