package tle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Elements is the orbital summary carried by line 2 of an element set.
type Elements struct {
	InclinationDeg   float64
	RAANDeg          float64
	Eccentricity     float64
	ArgPerigeeDeg    float64
	MeanAnomalyDeg   float64
	MeanMotionRevDay float64
	PeriodMinutes    float64
	IsGeostationary  bool
}

// A sidereal day in minutes; satellites with a period within
// geostationaryTolerance of it are treated as geostationary.
const (
	siderealDayMinutes     = 1436.0
	geostationaryTolerance = 10.0
)

// ParseElements extracts the classical elements from line 2.
func (e TLEEntry) ParseElements() (Elements, error) {
	l := e.Line2
	if len(l) < 63 {
		return Elements{}, fmt.Errorf("line2 too short (%d chars)", len(l))
	}

	var (
		el   Elements
		errs []string
	)
	field := func(lo, hi int, name string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(l[lo:hi]), 64)
		if err != nil {
			errs = append(errs, name)
		}
		return v
	}

	el.InclinationDeg = field(8, 16, "inclination")
	el.RAANDeg = field(17, 25, "raan")
	el.Eccentricity = field(26, 33, "eccentricity") / 1e7
	el.ArgPerigeeDeg = field(34, 42, "argument of perigee")
	el.MeanAnomalyDeg = field(43, 51, "mean anomaly")
	el.MeanMotionRevDay = field(52, 63, "mean motion")

	if len(errs) > 0 {
		return Elements{}, fmt.Errorf("NORAD %d: invalid %s", e.NORADID, strings.Join(errs, ", "))
	}
	if el.MeanMotionRevDay <= 0 {
		return Elements{}, fmt.Errorf("NORAD %d: non-positive mean motion", e.NORADID)
	}

	el.PeriodMinutes = 1440 / el.MeanMotionRevDay
	el.IsGeostationary = math.Abs(el.PeriodMinutes-siderealDayMinutes) < geostationaryTolerance
	return el, nil
}
