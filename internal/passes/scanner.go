package passes

import (
	"fmt"
	"math"
	"time"
)

// Pass is one above-horizon window. Angles are radians.
type Pass struct {
	Satellite       string
	RiseTime        time.Time
	RiseAzimuth     float64
	ApogeeTime      time.Time
	ApogeeElevation float64
	ApogeeAzimuth   float64
	FallTime        time.Time
	FallAzimuth     float64
}

// Duration returns the time between rise and fall.
func (p Pass) Duration() time.Duration {
	return p.FallTime.Sub(p.RiseTime)
}

type scanState int

const (
	stateSearching scanState = iota
	stateInPass
)

// above treats +0 as above the horizon and -0 as below.
func above(el float64) bool { return !math.Signbit(el) }

// ScanPasses samples the elevation at every whole minute in [0, minutes] and
// turns each below→above→below sequence into a Pass.
//
// A pass already in progress at minute 0, or still in progress at the last
// minute, is dropped, as is a pass that touches the horizon without a
// culmination strictly between rise and fall. An undefined sample (propagation failure) breaks the
// sequence: no crossing is reported across it and a pending rise is discarded.
func ScanPasses(o Oracle, satellite string, minutes int) ([]Pass, error) {
	elevation := elevationOf(o)

	var (
		passes []Pass
		state  = stateSearching
		rise   float64
	)

	prev := o.Elevation(0)
	for m := 1; m <= minutes; m++ {
		cur := o.Elevation(float64(m))
		lo, hi := float64(m-1), float64(m)

		switch {
		case math.IsNaN(prev) || math.IsNaN(cur):
			state = stateSearching

		case !above(prev) && above(cur):
			r, err := FindRoot(elevation, lo, hi)
			if err != nil {
				return nil, fmt.Errorf("rise between minutes %d and %d: %w", m-1, m, err)
			}
			rise = r
			state = stateInPass

		case above(prev) && !above(cur):
			fall, err := FindRoot(elevation, lo, hi)
			if err != nil {
				return nil, fmt.Errorf("fall between minutes %d and %d: %w", m-1, m, err)
			}
			if state != stateInPass {
				break
			}
			state = stateSearching
			if !(fall > rise) {
				break
			}
			p, ok, err := assemblePass(o, satellite, rise, fall)
			if err != nil {
				return nil, err
			}
			if ok {
				passes = append(passes, p)
			}
		}

		prev = cur
	}

	return passes, nil
}

// assemblePass locates the culmination between rise and fall and collects the
// bearings at the three events. It reports false when no culmination lies
// strictly inside (rise, fall).
func assemblePass(o Oracle, satellite string, rise, fall float64) (Pass, bool, error) {
	mid := math.Ceil(rise)
	best := 0.0
	for m := math.Floor(rise); m <= math.Floor(fall); m++ {
		if el := o.Elevation(m); el > best {
			best = el
			mid = m
		}
	}

	inside := func(m float64) bool { return m > rise && m < fall }
	f := negated{elevationOf(o)}
	apogee := ParabolicMinimum(f, math.Max(rise, mid-1), math.Min(fall, mid+1), culminationTolerance)
	if !inside(apogee) {
		apogee = mid
	}
	if !inside(apogee) {
		return Pass{}, false, nil
	}
	apogee = polishCulmination(f, apogee, rise, fall)

	top, err := o.Bearing(apogee)
	if err != nil {
		return Pass{}, false, fmt.Errorf("bearing at culmination %s: %w", o.Time(apogee).Format(time.RFC3339), err)
	}
	up, err := o.Bearing(rise)
	if err != nil {
		return Pass{}, false, fmt.Errorf("bearing at rise %s: %w", o.Time(rise).Format(time.RFC3339), err)
	}
	down, err := o.Bearing(fall)
	if err != nil {
		return Pass{}, false, fmt.Errorf("bearing at fall %s: %w", o.Time(fall).Format(time.RFC3339), err)
	}

	return Pass{
		Satellite:       satellite,
		RiseTime:        o.Time(rise),
		RiseAzimuth:     up.Azimuth,
		ApogeeTime:      o.Time(apogee),
		ApogeeElevation: top.Elevation,
		ApogeeAzimuth:   top.Azimuth,
		FallTime:        o.Time(fall),
		FallAzimuth:     down.Azimuth,
	}, true, nil
}
