package transform

import "math"

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Degrees360 converts an azimuth in radians to degrees in [0, 360).
func Degrees360(rad float64) float64 {
	d := math.Mod(Degrees(rad), 360)
	if d < 0 {
		d += 360
	}
	return d
}

// ObserverFromDegrees builds an Observer from the units used at the API
// boundary: degrees and metres.
func ObserverFromDegrees(latDeg, lonDeg, altMeters float64) Observer {
	return NewObserver(Radians(latDeg), Radians(lonDeg), altMeters/1000)
}
