package passes

import "math"

const (
	culminationTolerance = 0.001 / 60 // one millisecond, in minutes
	polishHalfWidth      = 2.0 / 60   // two seconds, in minutes
	polishRounds         = 8
)

// ParabolicMinimum approximates the minimiser of f on [start, end] by
// successive parabolic interpolation.
//
// The bracket shrinks towards each accepted vertex. The search stops when the
// vertex moves less than tol, when the three points are collinear, or when the
// vertex is worse than the current best; in the last two cases the current
// best is returned.
func ParabolicMinimum(f Func, start, end, tol float64) float64 {
	a, c := start, end
	b := (a + c) / 2
	fa, fb, fc := f.Eval(a), f.Eval(b), f.Eval(c)

	for {
		num := (b-a)*(b-a)*(fb-fc) - (b-c)*(b-c)*(fb-fa)
		den := (b-a)*(fb-fc) - (b-c)*(fb-fa)
		if den == 0 {
			return b
		}

		x := b - 0.5*num/den
		if math.IsNaN(x) {
			return b
		}
		if math.Abs(b-x) <= tol {
			return x
		}

		fx := f.Eval(x)
		if math.IsNaN(fx) || fx > fb {
			return b
		}

		a, c = (a+x)/2, (x+c)/2
		b, fb = x, fx
		fa, fc = f.Eval(a), f.Eval(c)
	}
}

// polishCulmination restarts ParabolicMinimum on a narrow bracket around x
// until the vertex stops improving. A wide first bracket over a sharp
// culmination can leave x seconds away from the minimum. Results outside
// (lo, hi) are rejected.
func polishCulmination(f Func, x, lo, hi float64) float64 {
	fx := f.Eval(x)
	for range polishRounds {
		next := ParabolicMinimum(f, math.Max(lo, x-polishHalfWidth), math.Min(hi, x+polishHalfWidth), culminationTolerance)
		if !(next > lo && next < hi) {
			break
		}
		fn := f.Eval(next)
		if !(fn < fx) {
			break
		}
		moved := math.Abs(next - x)
		x, fx = next, fn
		if moved <= culminationTolerance {
			break
		}
	}
	return x
}
