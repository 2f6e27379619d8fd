package tle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/star/orbitalik/internal/metrics"
)

// Refresher keeps the Store current by periodically fetching, filtering and
// caching element sets.
type Refresher struct {
	store    *Store
	cache    *Cache
	fetcher  *Fetcher
	settings Settings
	logger   *slog.Logger
	now      func() time.Time
}

// NewRefresher wires a refresher over the given store and cache.
// The fetcher is built from settings.URLs.
func NewRefresher(store *Store, cache *Cache, settings Settings, logger *slog.Logger) *Refresher {
	return &Refresher{
		store:    store,
		cache:    cache,
		fetcher:  NewFetcher(logger, settings.URLs...),
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh performs one fetch → filter → cache → swap cycle and returns the new
// dataset. Concurrent calls are serialised on the store.
func (r *Refresher) Refresh(ctx context.Context) (*TLEDataset, error) {
	r.store.Lock()
	defer r.store.Unlock()

	start := time.Now()
	ds, err := r.refresh(ctx)
	metrics.RecordTLERefresh(err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}

	metrics.SetTLEDatasetCount(len(ds.Satellites))
	metrics.SetTLEDatasetAge(0)
	r.logger.Info("TLE dataset refreshed",
		"count", len(ds.Satellites),
		"sources", len(r.fetcher.URLs()),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return ds, nil
}

func (r *Refresher) refresh(ctx context.Context) (*TLEDataset, error) {
	raw, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching TLE data: %w", err)
	}

	fetchedAt := r.now()
	ds, err := parseDataset(raw, "remote", fetchedAt, r.logger)
	if err != nil {
		return nil, err
	}

	kept := r.settings.Select(ds.Satellites)
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: none of the tracked satellites are present", ErrTLELoading)
	}
	ds = NewDataset("remote", fetchedAt, kept)

	if r.cache != nil {
		if err := r.cache.Write(Format(kept), fetchedAt); err != nil {
			// A stale cache only matters after a restart.
			r.logger.Warn("failed to write TLE cache", "error", err)
		}
	}

	r.store.Set(ds)
	return ds, nil
}

// Run refreshes at the configured interval until ctx is cancelled.
// Failures are logged and retried on the next tick.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.settings.Delay())
	defer ticker.Stop()

	for {
		if _, err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
			r.logger.Error("TLE refresh failed", "error", err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

// Bootstrap fills store from a static file when path is set, otherwise from
// the newest cache snapshot.
func Bootstrap(store *Store, path string, cache *Cache, logger *slog.Logger) error {
	var (
		ds  *TLEDataset
		err error
	)
	if path != "" {
		ds, err = LoadFile(path, logger)
	} else {
		ds, err = loadCached(cache, logger)
	}
	if err != nil {
		return err
	}

	store.Set(ds)
	metrics.SetTLEDatasetCount(len(ds.Satellites))
	logger.Info("loaded TLE data",
		"source", ds.Source,
		"count", len(ds.Satellites),
		"fetched_at", ds.FetchedAt.UTC().Format(time.RFC3339),
	)
	return nil
}

func loadCached(cache *Cache, logger *slog.Logger) (*TLEDataset, error) {
	if cache == nil {
		return nil, fmt.Errorf("%w: no TLE file or cache configured", ErrTLELoading)
	}
	data, ts, err := cache.LoadLatest()
	if err != nil {
		return nil, err
	}
	return parseDataset(data, "cache", ts, logger)
}

// TrackAge updates the dataset age gauge every interval until ctx is cancelled.
func TrackAge(ctx context.Context, store *Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if age := store.AgeSeconds(); age >= 0 {
				metrics.SetTLEDatasetAge(age)
			}
		case <-ctx.Done():
			return
		}
	}
}
