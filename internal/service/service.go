// Package service resolves satellites from the active TLE dataset and runs
// pass and trajectory computations for the API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/star/orbitalik/internal/metrics"
	"github.com/star/orbitalik/internal/passes"
	"github.com/star/orbitalik/internal/propagation"
	"github.com/star/orbitalik/internal/tle"
	"github.com/star/orbitalik/internal/transform"
)

// ErrInvalidQuery is returned for queries outside the accepted ranges.
var ErrInvalidQuery = errors.New("invalid query")

// Windows used for the satellite overview.
const (
	trajectoryBefore = time.Hour
	trajectorySpan   = 2 * time.Hour
	lookAngleSpan    = time.Hour
	overviewPasses   = 24 * time.Hour
)

// Service answers pass and satellite queries.
type Service struct {
	catalog     *propagation.Catalog
	store       *tle.Store
	defaults    []string
	maxDuration time.Duration
	logger      *slog.Logger
}

// Options configures a Service.
type Options struct {
	DefaultSatellites []string
	MaxDuration       time.Duration
}

// New creates a Service over store.
func New(store *tle.Store, opts Options, logger *slog.Logger) *Service {
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = 240 * time.Hour
	}
	return &Service{
		catalog:     propagation.NewCatalog(store, logger),
		store:       store,
		defaults:    opts.DefaultSatellites,
		maxDuration: opts.MaxDuration,
		logger:      logger,
	}
}

// PassQuery selects passes. Angles are radians.
type PassQuery struct {
	Satellites   []string // empty means the configured defaults
	Start        time.Time
	Duration     time.Duration
	MinElevation float64
	MinApogee    float64
	Observer     transform.Observer
}

// Passes returns the filtered passes of every requested satellite, sorted by rise time.
func (s *Service) Passes(ctx context.Context, q PassQuery) ([]passes.Pass, error) {
	if q.Duration <= 0 || q.Duration > s.maxDuration {
		return nil, fmt.Errorf("%w: duration %s outside (0, %s]", ErrInvalidQuery, q.Duration, s.maxDuration)
	}
	names := q.Satellites
	if len(names) == 0 {
		names = s.defaults
	}

	start := time.Now()
	found, err := s.passes(ctx, names, q)
	metrics.RecordPassComputation(outcome(err), time.Since(start), len(found))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("passes computed",
		"satellites", len(names),
		"passes", len(found),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return found, nil
}

func (s *Service) passes(ctx context.Context, names []string, q PassQuery) ([]passes.Pass, error) {
	props, err := s.catalog.LookupAll(names)
	if err != nil {
		return nil, err
	}
	models := make([]passes.Model, len(props))
	for i, p := range props {
		models[i] = p
	}
	return passes.ComputeFilteredPasses(ctx, models, q.Start.UTC(), q.Duration, q.MinElevation, q.MinApogee, q.Observer)
}

// SatelliteData is the overview of one satellite.
type SatelliteData struct {
	Entry           tle.TLEEntry
	Elements        tle.Elements
	TrajectoryStart time.Time
	Trajectory      []transform.Geodetic // one per second from TrajectoryStart
	LookAngleStart  time.Time
	LookAngles      []transform.Bearing // one per second from LookAngleStart
	Passes          []passes.Pass       // next 24 h; empty for geostationary satellites
}

// SatelliteData builds the overview of name around now. The trajectory, look
// angles and passes are computed concurrently.
func (s *Service) SatelliteData(ctx context.Context, name string, obs transform.Observer, now time.Time) (*SatelliteData, error) {
	entry, model, err := s.catalog.Resolve(name)
	if err != nil {
		return nil, err
	}
	elements, err := entry.ParseElements()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tle.ErrTLELoading, err)
	}

	now = now.UTC()
	data := &SatelliteData{
		Entry:           entry,
		Elements:        elements,
		TrajectoryStart: now.Add(-trajectoryBefore),
		LookAngleStart:  now,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		track, err := passes.ComputeTrajectory(model, data.TrajectoryStart, trajectorySpan)
		data.Trajectory = track
		return err
	})
	g.Go(func() error {
		look, err := passes.ComputeObserverTrajectory(model, data.LookAngleStart, lookAngleSpan, obs)
		data.LookAngles = look
		return err
	})
	if !elements.IsGeostationary {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found, err := passes.ComputePasses(model, now, overviewPasses, obs)
			data.Passes = found
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("satellite %q: %w", name, err)
	}
	return data, nil
}

// Satellites lists the satellites in the active dataset.
func (s *Service) Satellites() ([]string, error) {
	return s.store.Names()
}

// Ready reports whether a dataset is loaded.
func (s *Service) Ready() bool {
	return s.store.Loaded()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, tle.ErrSatelliteNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, passes.ErrRootCalculation):
		return metrics.OutcomeRootFailure
	case errors.Is(err, propagation.ErrPropagation):
		return metrics.OutcomePropagationFailure
	default:
		return metrics.OutcomeError
	}
}
