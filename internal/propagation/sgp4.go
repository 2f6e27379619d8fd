package propagation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/star/orbitalik/internal/tle"
	"github.com/star/orbitalik/internal/transform"
)

// ErrPropagation is returned when SGP4 cannot produce a usable position.
var ErrPropagation = errors.New("propagation failed")

// SGP4 library choice: github.com/joshuaferrara/go-satellite
//
// satellite.Propagate takes the Satellite by value and resolves whole seconds
// only, so SGP4 error codes never reach the caller. Failures are detected from
// the output (NaN/Inf or an implausible radius) and sub-second instants are
// interpolated between the neighbouring whole seconds.

// SGP4Propagator is an initialised SGP4 model for one satellite.
// Immutable after construction; safe for concurrent use.
type SGP4Propagator struct {
	sat     satellite.Satellite
	name    string
	noradID int
	epoch   time.Time
}

// NewSGP4Propagator initialises SGP4 from a parsed element set.
//
// The lines are pre-validated because go-satellite calls log.Fatal on
// malformed input, which would take the whole process down.
func NewSGP4Propagator(entry tle.TLEEntry) (*SGP4Propagator, error) {
	if err := validateTLELines(entry.Line1, entry.Line2); err != nil {
		return nil, fmt.Errorf("invalid TLE for NORAD %d: %w", entry.NORADID, err)
	}

	sat := satellite.TLEToSat(entry.Line1, entry.Line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		return nil, fmt.Errorf("%w: sgp4 init for NORAD %d: code=%d %s", ErrPropagation, entry.NORADID, sat.Error, sat.ErrorStr)
	}
	return &SGP4Propagator{
		sat:     sat,
		name:    entry.Name,
		noradID: entry.NORADID,
		epoch:   entry.Epoch,
	}, nil
}

func validateTLELines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	if len(line1) != 69 {
		return fmt.Errorf("line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("line1 must start with '1', got '%c'", line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("line2 must start with '2', got '%c'", line2[0])
	}
	return nil
}

// Name returns the satellite name from the element set.
func (p *SGP4Propagator) Name() string { return p.name }

// NORADID returns the catalogue number.
func (p *SGP4Propagator) NORADID() int { return p.noradID }

// Epoch returns the element set epoch.
func (p *SGP4Propagator) Epoch() time.Time { return p.epoch }

// Propagate returns the TEME state (km, km/s) at t.
func (p *SGP4Propagator) Propagate(t time.Time) (transform.PositionTEME, error) {
	t = t.UTC()
	base := t.Truncate(time.Second)

	lo, err := p.propagateSecond(base)
	if err != nil {
		return transform.PositionTEME{}, err
	}
	frac := t.Sub(base).Seconds()
	if frac == 0 {
		return lo, nil
	}

	hi, err := p.propagateSecond(base.Add(time.Second))
	if err != nil {
		return transform.PositionTEME{}, err
	}
	return lo.Lerp(hi, frac), nil
}

func (p *SGP4Propagator) propagateSecond(t time.Time) (transform.PositionTEME, error) {
	pos, vel := satellite.Propagate(p.sat, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())

	teme := transform.PositionTEME{
		X: pos.X, Y: pos.Y, Z: pos.Z,
		VX: vel.X, VY: vel.Y, VZ: vel.Z,
	}
	if !transform.ValidateTEME(teme) {
		return transform.PositionTEME{}, fmt.Errorf("%w: NORAD %d at %s: radius %.1f km",
			ErrPropagation, p.noradID, t.Format(time.RFC3339), teme.Radius())
	}
	return teme, nil
}
