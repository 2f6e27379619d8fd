package passes

import (
	"errors"
	"math"
	"time"

	"github.com/star/orbitalik/internal/transform"
)

var scanStart = time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)

// sampledOracle interpolates linearly between per-minute elevation samples.
type sampledOracle struct {
	samples []float64
}

func (s sampledOracle) Elevation(m float64) float64 {
	last := len(s.samples) - 1
	switch {
	case m <= 0:
		return s.samples[0]
	case m >= float64(last):
		return s.samples[last]
	}
	i := int(math.Floor(m))
	frac := m - float64(i)
	if frac == 0 {
		return s.samples[i]
	}
	return s.samples[i] + (s.samples[i+1]-s.samples[i])*frac
}

func (s sampledOracle) Bearing(m float64) (transform.Bearing, error) {
	el := s.Elevation(m)
	if math.IsNaN(el) {
		return transform.Bearing{}, errSampleMissing
	}
	return transform.Bearing{Azimuth: m / 10, Elevation: el, RangeKm: 1000}, nil
}

func (s sampledOracle) Time(m float64) time.Time {
	return scanStart.Add(time.Duration(math.Round(m * float64(time.Minute))))
}

func (s sampledOracle) Offset(t time.Time) float64 {
	return float64(t.Sub(scanStart)) / float64(time.Minute)
}

func (s sampledOracle) minutes() int { return len(s.samples) - 1 }

var errSampleMissing = errors.New("sample missing")

// gappyOracle is defined only at whole minutes.
type gappyOracle struct {
	sampledOracle
}

func (g gappyOracle) Elevation(m float64) float64 {
	if m != math.Trunc(m) {
		return math.NaN()
	}
	return g.sampledOracle.Elevation(m)
}

// failingModel never propagates.
type failingModel struct{}

func (failingModel) Name() string { return "DEAD" }

func (failingModel) Propagate(time.Time) (transform.PositionTEME, error) {
	return transform.PositionTEME{}, errSampleMissing
}

// renamed gives a model a different name.
type renamed struct {
	Model
	name string
}

func (r renamed) Name() string { return r.name }
