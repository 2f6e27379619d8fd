package transform

import "math"

// WGS-84 ellipsoid, km.
const (
	wgs84A  = 6378.137
	wgs84F  = 1.0 / 298.257223563
	wgs84E2 = wgs84F * (2 - wgs84F)
)

// Observer is a fixed ground station. Its ECEF coordinates are computed once so
// repeated look-angle evaluations only pay for the rotation.
type Observer struct {
	LatRad, LonRad float64 // geodetic
	AltKm          float64 // above the ellipsoid
	X, Y, Z        float64 // ECEF, km

	sinLat, cosLat float64
	sinLon, cosLon float64
}

// NewObserver builds an Observer from geodetic latitude and longitude in
// radians and altitude in km.
func NewObserver(latRad, lonRad, altKm float64) Observer {
	sinLat, cosLat := math.Sin(latRad), math.Cos(latRad)
	sinLon, cosLon := math.Sin(lonRad), math.Cos(lonRad)

	// Prime-vertical radius of curvature.
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	return Observer{
		LatRad: latRad,
		LonRad: lonRad,
		AltKm:  altKm,
		X:      (n + altKm) * cosLat * cosLon,
		Y:      (n + altKm) * cosLat * sinLon,
		Z:      (n*(1-wgs84E2) + altKm) * sinLat,
		sinLat: sinLat,
		cosLat: cosLat,
		sinLon: sinLon,
		cosLon: cosLon,
	}
}

// Bearing is the direction to a satellite as seen by an Observer.
type Bearing struct {
	Azimuth   float64 // radians, 0 = north, clockwise, [0, 2π)
	Elevation float64 // radians, 0 = horizon
	RangeKm   float64
}

// Geodetic is a WGS-84 geodetic position.
type Geodetic struct {
	Latitude  float64 // radians
	Longitude float64 // radians, (-π, π]
	Altitude  float64 // km above the ellipsoid
}

// ECEFToGeodetic converts an ECEF position to geodetic coordinates with
// Bowring's iteration. Orbital altitudes converge in two or three rounds.
func ECEFToGeodetic(p PositionECEF) Geodetic {
	lon := math.Atan2(p.Y, p.X)
	r := math.Hypot(p.X, p.Y)

	lat := math.Atan2(p.Z, r*(1-wgs84E2))
	for range 5 {
		s := math.Sin(lat)
		n := wgs84A / math.Sqrt(1-wgs84E2*s*s)
		lat = math.Atan2(p.Z+wgs84E2*n*s, r)
	}

	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	var alt float64
	if math.Abs(cosLat) > 1e-10 {
		alt = r/cosLat - n
	} else {
		alt = math.Abs(p.Z)/math.Abs(sinLat) - n*(1-wgs84E2)
	}

	return Geodetic{Latitude: lat, Longitude: lon, Altitude: alt}
}

// ECEFToBearing computes azimuth, elevation and range from obs to an ECEF position.
// The range vector is rotated into the SEZ (south, east, zenith) frame, Vallado §4.4.
func ECEFToBearing(obs Observer, p PositionECEF) Bearing {
	rx := p.X - obs.X
	ry := p.Y - obs.Y
	rz := p.Z - obs.Z

	south := obs.sinLat*obs.cosLon*rx + obs.sinLat*obs.sinLon*ry - obs.cosLat*rz
	east := -obs.sinLon*rx + obs.cosLon*ry
	zenith := obs.cosLat*obs.cosLon*rx + obs.cosLat*obs.sinLon*ry + obs.sinLat*rz

	rng := math.Sqrt(south*south + east*east + zenith*zenith)

	az := math.Atan2(east, -south)
	if az < 0 {
		az += 2 * math.Pi
	}

	return Bearing{
		Azimuth:   az,
		Elevation: math.Asin(zenith / rng),
		RangeKm:   rng,
	}
}
