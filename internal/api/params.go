package api

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/star/orbitalik/internal/service"
	"github.com/star/orbitalik/internal/transform"
)

// errInvalidParam marks a malformed or out-of-range query parameter.
var errInvalidParam = errors.New("invalid parameter")

// startTimeLayout is the HTML datetime-local format; the value is read as UTC.
const startTimeLayout = "2006-01-02T15:04"

const (
	defaultDurationHours = 24
	maxDurationHours     = 240
	maxAltitudeMeters    = 10000
)

// floatParam parses name from q. Missing values yield def unless required.
// NaN and infinities are rejected by the range check.
func floatParam(q url.Values, name string, def, lo, hi float64, required bool) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%w: %s is required", errInvalidParam, name)
		}
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !(v >= lo && v <= hi) {
		return 0, fmt.Errorf("%w: %s must be a number between %g and %g", errInvalidParam, name, lo, hi)
	}
	return v, nil
}

// parseObserver reads lat, lon (degrees) and alt (metres).
func parseObserver(q url.Values) (transform.Observer, error) {
	lat, err := floatParam(q, "lat", 0, -90, 90, true)
	if err != nil {
		return transform.Observer{}, err
	}
	lon, err := floatParam(q, "lon", 0, -180, 180, true)
	if err != nil {
		return transform.Observer{}, err
	}
	alt, err := floatParam(q, "alt", 0, 0, maxAltitudeMeters, false)
	if err != nil {
		return transform.Observer{}, err
	}
	return transform.ObserverFromDegrees(lat, lon, alt), nil
}

// parseStartTime accepts RFC 3339 or the datetime-local layout (UTC).
func parseStartTime(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(startTimeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start_time must look like %s", errInvalidParam, startTimeLayout)
	}
	return t, nil
}

func parseSatellites(raw string) []string {
	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// parsePassQuery builds a pass query from the request parameters.
func parsePassQuery(q url.Values, now time.Time) (service.PassQuery, error) {
	obs, err := parseObserver(q)
	if err != nil {
		return service.PassQuery{}, err
	}
	minEl, err := floatParam(q, "min_elevation", 0, 0, 90, false)
	if err != nil {
		return service.PassQuery{}, err
	}
	minApogee, err := floatParam(q, "min_apogee", 0, 0, 90, false)
	if err != nil {
		return service.PassQuery{}, err
	}
	start, err := parseStartTime(q.Get("start_time"), now)
	if err != nil {
		return service.PassQuery{}, err
	}
	hours, err := floatParam(q, "duration", defaultDurationHours, 1, maxDurationHours, false)
	if err != nil {
		return service.PassQuery{}, err
	}
	if hours != math.Trunc(hours) {
		return service.PassQuery{}, fmt.Errorf("%w: duration must be a whole number of hours", errInvalidParam)
	}

	return service.PassQuery{
		Satellites:   parseSatellites(q.Get("satellites")),
		Start:        start,
		Duration:     time.Duration(hours) * time.Hour,
		MinElevation: transform.Radians(minEl),
		MinApogee:    transform.Radians(minApogee),
		Observer:     obs,
	}, nil
}
