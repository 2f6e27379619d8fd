package transform

import (
	"math"
	"time"
)

const (
	j2000      = 2451545.0 // Julian Date of J2000.0
	secondsDay = 86400.0
)

// OmegaEarth is Earth's rotation rate in rad/s.
const OmegaEarth = 7.292115146706979e-5

// JulianDate converts t to a Julian Date, keeping nanosecond precision.
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	y := float64(t.Year())
	m := float64(t.Month())
	if m <= 2 {
		y--
		m += 12
	}

	century := math.Floor(y / 100)
	gregorian := 2 - century + math.Floor(century/4)

	dayFrac := (float64(t.Hour())*3600 +
		float64(t.Minute())*60 +
		float64(t.Second()) +
		float64(t.Nanosecond())/1e9) / secondsDay

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) +
		float64(t.Day()) + gregorian - 1524.5 + dayFrac
}

// GMST returns Greenwich Mean Sidereal Time in radians, normalised to [0, 2π).
// IAU-82 model (Vallado eq. 3-47), with T in Julian centuries of UT1 since J2000.
func GMST(t time.Time) float64 {
	tu := (JulianDate(t) - j2000) / 36525.0

	// 876600h expressed in seconds.
	sec := 67310.54841 +
		(3155760000.0+8640184.812866)*tu +
		0.093104*tu*tu -
		6.2e-6*tu*tu*tu

	sec = math.Mod(sec, secondsDay)
	if sec < 0 {
		sec += secondsDay
	}
	return sec / secondsDay * 2 * math.Pi
}
