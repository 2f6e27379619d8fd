// Package passes finds the windows during which a satellite is above an
// observer's horizon.
//
// Every numerical routine works on a float64 time axis measured in minutes
// since the scan start; Oracle.Time and Oracle.Offset convert to and from
// wall-clock instants. Angles are radians throughout.
package passes

import (
	"math"
	"time"

	"github.com/star/orbitalik/internal/transform"
)

// Model is a propagatable satellite.
type Model interface {
	Name() string
	Propagate(t time.Time) (transform.PositionTEME, error)
}

// Func is a scalar function of time in minutes.
type Func interface {
	Eval(m float64) float64
}

// FuncOf adapts an ordinary function to Func.
type FuncOf func(m float64) float64

// Eval calls f(m).
func (f FuncOf) Eval(m float64) float64 { return f(m) }

// Oracle answers geometric questions about one satellite as seen by one
// observer over one scan window.
type Oracle interface {
	// Elevation returns the elevation at minute m, or NaN if the position
	// cannot be computed.
	Elevation(m float64) float64
	// Bearing returns the full bearing at minute m.
	Bearing(m float64) (transform.Bearing, error)
	// Time converts minute m to an instant.
	Time(m float64) time.Time
	// Offset converts an instant to minutes since the scan start.
	Offset(t time.Time) float64
}

// ModelOracle is the Oracle backed by a propagated Model.
// Pure for a fixed model, observer and start; safe for concurrent use.
type ModelOracle struct {
	model    Model
	observer transform.Observer
	start    time.Time
}

// NewOracle creates an oracle whose minute 0 is start.
func NewOracle(model Model, observer transform.Observer, start time.Time) *ModelOracle {
	return &ModelOracle{model: model, observer: observer, start: start}
}

// Time converts minute m to an instant, rounded to the nanosecond.
func (o *ModelOracle) Time(m float64) time.Time {
	return o.start.Add(time.Duration(math.Round(m * float64(time.Minute))))
}

// Offset converts t to minutes since the scan start.
func (o *ModelOracle) Offset(t time.Time) float64 {
	return float64(t.Sub(o.start)) / float64(time.Minute)
}

// Bearing returns azimuth, elevation and range at minute m.
func (o *ModelOracle) Bearing(m float64) (transform.Bearing, error) {
	t := o.Time(m)
	teme, err := o.model.Propagate(t)
	if err != nil {
		return transform.Bearing{}, err
	}
	return transform.ECEFToBearing(o.observer, transform.TEMEToECEF(teme, t)), nil
}

// Elevation returns the elevation at minute m, or NaN on propagation failure.
func (o *ModelOracle) Elevation(m float64) float64 {
	b, err := o.Bearing(m)
	if err != nil {
		return math.NaN()
	}
	return b.Elevation
}

// Eval makes the oracle usable as the elevation Func.
func (o *ModelOracle) Eval(m float64) float64 { return o.Elevation(m) }

// Geodetic returns the sub-satellite point at minute m. The observer plays no
// part.
func (o *ModelOracle) Geodetic(m float64) (transform.Geodetic, error) {
	t := o.Time(m)
	teme, err := o.model.Propagate(t)
	if err != nil {
		return transform.Geodetic{}, err
	}
	return transform.ECEFToGeodetic(transform.TEMEToECEF(teme, t)), nil
}

// elevationOf is the elevation function of any Oracle.
func elevationOf(o Oracle) Func { return FuncOf(o.Elevation) }

// negated flips the sign of f so a maximum becomes a minimum.
type negated struct{ f Func }

func (n negated) Eval(m float64) float64 { return -n.f.Eval(m) }

// shifted subtracts a constant threshold from f.
type shifted struct {
	f     Func
	delta float64
}

func (s shifted) Eval(m float64) float64 { return s.f.Eval(m) - s.delta }
