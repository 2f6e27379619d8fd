package passes

import (
	"errors"
	"fmt"
	"math"
)

// ErrRootCalculation is returned when a horizon crossing cannot be located.
var ErrRootCalculation = errors.New("root calculation failed")

const (
	rootTolerance = 2e-12 // minutes
	rootMaxIter   = 200
	machineEps    = 2.220446049250313e-16
)

// FindRoot locates a zero of f inside [a, b] with Brent's method, mixing
// bisection, secant and inverse quadratic interpolation.
//
// f(a) and f(b) must have opposite signs (or one of them be zero). The result
// is within 2e-12 minutes of a true root. Failures wrap ErrRootCalculation.
func FindRoot(f Func, a, b float64) (float64, error) {
	fa, fb := f.Eval(a), f.Eval(b)
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return 0, fmt.Errorf("%w: undefined value at bracket [%g, %g]", ErrRootCalculation, a, b)
	}
	if (fa > 0 && fb > 0) || (fa < 0 && fb < 0) {
		return 0, fmt.Errorf("%w: [%g, %g] does not bracket a root", ErrRootCalculation, a, b)
	}

	c, fc := b, fb
	var d, e float64

	for range rootMaxIter {
		if (fb > 0 && fc > 0) || (fb < 0 && fc < 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		// b is always the best estimate so far.
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol := 2*machineEps*math.Abs(b) + 0.5*rootTolerance
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			s := fb / fa
			var p, q float64
			if a == c {
				// Secant.
				p = 2 * xm * s
				q = 1 - s
			} else {
				// Inverse quadratic.
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)

			if 2*p < math.Min(3*xm*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else {
			b += math.Copysign(tol, xm)
		}
		fb = f.Eval(b)
		if math.IsNaN(fb) {
			return 0, fmt.Errorf("%w: undefined value at %g", ErrRootCalculation, b)
		}
	}

	return 0, fmt.Errorf("%w: no convergence in %d iterations on [%g, %g]", ErrRootCalculation, rootMaxIter, a, c)
}
