package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/star/orbitalik/internal/metrics"
	"github.com/star/orbitalik/internal/passes"
	"github.com/star/orbitalik/internal/propagation"
	"github.com/star/orbitalik/internal/tle"
	"github.com/star/orbitalik/internal/transform"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

var (
	issEntry = tle.TLEEntry{
		NORADID: 25544,
		Name:    "ISS (ZARYA)",
		Epoch:   time.Date(2025, 2, 14, 4, 19, 40, 0, time.UTC),
		Line1:   "1 25544U 98067A   25045.18032407  .00016717  00000+0  30099-3 0  9993",
		Line2:   "2 25544  51.6412 193.5765 0003457 126.2851 233.8519 15.49874301495058",
	}
	geoEntry = tle.TLEEntry{
		NORADID: 99999,
		Name:    "GEO TEST",
		Epoch:   time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
		Line1:   "1 99999U 20001A   25045.00000000  .00000000  00000+0  00000+0 0  9990",
		Line2:   "2 99999   0.0500  90.0000 0002000 270.0000  90.0000  1.00270000    01",
	}
)

var (
	queryStart = time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)
	nyc        = transform.ObserverFromDegrees(40.7128, -74.006, 10)
)

func newTestService(entries ...tle.TLEEntry) *Service {
	store := tle.NewStore()
	if len(entries) > 0 {
		store.Set(tle.NewDataset("test", time.Now(), entries))
	}
	return New(store, Options{DefaultSatellites: []string{"ISS (ZARYA)"}, MaxDuration: 48 * time.Hour}, testLogger)
}

func TestPassesDefaultsToConfiguredSatellites(t *testing.T) {
	svc := newTestService(issEntry)

	got, err := svc.Passes(t.Context(), PassQuery{
		Start:    queryStart,
		Duration: 24 * time.Hour,
		Observer: nyc,
	})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Equal(t, "ISS (ZARYA)", p.Satellite)
		assert.False(t, p.RiseTime.Before(queryStart))
		assert.True(t, p.RiseTime.Before(p.ApogeeTime))
		assert.True(t, p.ApogeeTime.Before(p.FallTime))
	}
}

func TestPassesMatchesDirectComputation(t *testing.T) {
	svc := newTestService(issEntry)
	model, err := propagation.NewSGP4Propagator(issEntry)
	require.NoError(t, err)

	want, err := passes.ComputeFilteredPasses(t.Context(), []passes.Model{model}, queryStart, 12*time.Hour,
		transform.Radians(10), 0, nyc)
	require.NoError(t, err)

	got, err := svc.Passes(t.Context(), PassQuery{
		Satellites:   []string{"iss (zarya)"},
		Start:        queryStart,
		Duration:     12 * time.Hour,
		MinElevation: transform.Radians(10),
		Observer:     nyc,
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPassesRejectsDuration(t *testing.T) {
	svc := newTestService(issEntry)
	for _, d := range []time.Duration{0, -time.Hour, 49 * time.Hour} {
		t.Run(d.String(), func(t *testing.T) {
			_, err := svc.Passes(t.Context(), PassQuery{Start: queryStart, Duration: d, Observer: nyc})
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestPassesUnknownSatellite(t *testing.T) {
	svc := newTestService(issEntry)
	_, err := svc.Passes(t.Context(), PassQuery{
		Satellites: []string{"ISS (ZARYA)", "NOPE-1"},
		Start:      queryStart,
		Duration:   time.Hour,
		Observer:   nyc,
	})
	assert.ErrorIs(t, err, tle.ErrSatelliteNotFound)
}

func TestPassesWithoutDataset(t *testing.T) {
	svc := newTestService()
	_, err := svc.Passes(t.Context(), PassQuery{Start: queryStart, Duration: time.Hour, Observer: nyc})
	assert.ErrorIs(t, err, tle.ErrTLELoading)
	assert.False(t, svc.Ready())
}

func TestPassesCancelled(t *testing.T) {
	svc := newTestService(issEntry)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := svc.Passes(ctx, PassQuery{Start: queryStart, Duration: time.Hour, Observer: nyc})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSatelliteData(t *testing.T) {
	svc := newTestService(issEntry)

	data, err := svc.SatelliteData(t.Context(), "25544", nyc, queryStart)
	require.NoError(t, err)

	assert.Equal(t, issEntry, data.Entry)
	assert.InDelta(t, 51.6412, data.Elements.InclinationDeg, 1e-9)
	assert.False(t, data.Elements.IsGeostationary)
	assert.Len(t, data.Trajectory, int(trajectorySpan/time.Second))
	assert.Len(t, data.LookAngles, int(lookAngleSpan/time.Second))
	assert.NotEmpty(t, data.Passes)

	// ISS stays in low earth orbit over the whole window.
	for _, g := range data.Trajectory {
		assert.InDelta(t, 420, g.Altitude, 80)
	}
	for _, p := range data.Passes {
		assert.False(t, p.RiseTime.Before(queryStart))
	}
}

func TestSatelliteDataGeostationarySkipsPasses(t *testing.T) {
	svc := newTestService(geoEntry)

	data, err := svc.SatelliteData(t.Context(), "GEO TEST", nyc, queryStart)
	require.NoError(t, err)
	assert.True(t, data.Elements.IsGeostationary)
	assert.Empty(t, data.Passes)
	assert.NotEmpty(t, data.Trajectory)
}

func TestSatelliteDataNotFound(t *testing.T) {
	svc := newTestService(issEntry)
	_, err := svc.SatelliteData(t.Context(), "NOPE-1", nyc, queryStart)
	assert.ErrorIs(t, err, tle.ErrSatelliteNotFound)
}

func TestSatellites(t *testing.T) {
	names, err := newTestService(issEntry, geoEntry).Satellites()
	require.NoError(t, err)
	assert.Equal(t, []string{"ISS (ZARYA)", "GEO TEST"}, names)

	_, err = newTestService().Satellites()
	assert.ErrorIs(t, err, tle.ErrTLELoading)
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, metrics.OutcomeOK},
		{fmt.Errorf("lookup: %w", tle.ErrSatelliteNotFound), metrics.OutcomeNotFound},
		{fmt.Errorf("satellite %q: %w", "X", passes.ErrRootCalculation), metrics.OutcomeRootFailure},
		{fmt.Errorf("%w: decayed", propagation.ErrPropagation), metrics.OutcomePropagationFailure},
		{context.Canceled, metrics.OutcomeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, outcome(tt.err))
	}
}
