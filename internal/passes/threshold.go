package passes

import (
	"fmt"
	"math"
)

// RefineThreshold moves a pass's rise and fall to where the elevation crosses
// theta instead of the horizon. Azimuths are left untouched.
//
// The rise is searched forward from the current rise and the fall backward
// from the current fall, one minute at a time, and neither search goes past
// the culmination, which closes the last bracket. The first bracketing step is
// solved exactly. A boundary without a crossing stays where it was, which only
// happens when the culmination is below theta.
func RefineThreshold(o Oracle, p *Pass, theta float64) error {
	g := shifted{f: elevationOf(o), delta: theta}

	rise := o.Offset(p.RiseTime)
	apogee := o.Offset(p.ApogeeTime)
	fall := o.Offset(p.FallTime)

	for lo := rise; lo < apogee; {
		hi := math.Min(lo+1, apogee)
		if g.Eval(lo) <= 0 && g.Eval(hi) >= 0 {
			r, err := FindRoot(g, lo, hi)
			if err != nil {
				return fmt.Errorf("threshold rise: %w", err)
			}
			p.RiseTime = o.Time(r)
			break
		}
		lo = hi
	}

	for hi := fall; hi > apogee; {
		lo := math.Max(hi-1, apogee)
		if g.Eval(hi) <= 0 && g.Eval(lo) >= 0 {
			r, err := FindRoot(g, lo, hi)
			if err != nil {
				return fmt.Errorf("threshold fall: %w", err)
			}
			p.FallTime = o.Time(r)
			break
		}
		hi = lo
	}

	return nil
}
