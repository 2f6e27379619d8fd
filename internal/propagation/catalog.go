package propagation

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/star/orbitalik/internal/tle"
)

// entryKey identifies an element set. Datasets may carry the same NORAD ID
// under several names.
type entryKey struct {
	noradID int
	name    string
}

func keyOf(e tle.TLEEntry) entryKey { return entryKey{noradID: e.NORADID, name: e.Name} }

// sgp4Cache holds initialised propagators for one dataset.
// Immutable after construction; safe for concurrent reads.
type sgp4Cache struct {
	props     map[entryKey]*SGP4Propagator
	failed    map[entryKey]error
	fetchedAt time.Time
}

// Catalog resolves satellite names to initialised SGP4 models for the
// dataset currently held by a tle.Store.
type Catalog struct {
	store  *tle.Store
	logger *slog.Logger
	sgp4   atomic.Pointer[sgp4Cache]
	sgp4Mu sync.Mutex // serializes cache rebuilds
}

// NewCatalog creates a Catalog over store.
func NewCatalog(store *tle.Store, logger *slog.Logger) *Catalog {
	return &Catalog{store: store, logger: logger}
}

// Lookup returns the model for a satellite name or NORAD ID.
func (c *Catalog) Lookup(name string) (*SGP4Propagator, error) {
	_, p, err := c.Resolve(name)
	return p, err
}

// Resolve returns the element set and model for a satellite name or NORAD ID,
// both taken from the same dataset.
func (c *Catalog) Resolve(name string) (tle.TLEEntry, *SGP4Propagator, error) {
	ds := c.store.Get()
	if ds == nil {
		return tle.TLEEntry{}, nil, tle.ErrTLELoading
	}
	entry, err := ds.Find(name)
	if err != nil {
		return tle.TLEEntry{}, nil, err
	}

	cache := c.cachedProps(ds)
	key := keyOf(entry)
	if p, ok := cache.props[key]; ok {
		return entry, p, nil
	}
	if err, ok := cache.failed[key]; ok {
		return tle.TLEEntry{}, nil, err
	}
	return tle.TLEEntry{}, nil, fmt.Errorf("%w: %q", tle.ErrSatelliteNotFound, name)
}

// LookupAll resolves every name, failing on the first unknown one.
func (c *Catalog) LookupAll(names []string) ([]*SGP4Propagator, error) {
	out := make([]*SGP4Propagator, 0, len(names))
	for _, n := range names {
		p, err := c.Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// cachedProps returns the propagators for ds, rebuilding them when the
// dataset has been swapped (double-checked locking).
func (c *Catalog) cachedProps(ds *tle.TLEDataset) *sgp4Cache {
	if cur := c.sgp4.Load(); cur != nil && cur.fetchedAt.Equal(ds.FetchedAt) {
		return cur
	}

	c.sgp4Mu.Lock()
	defer c.sgp4Mu.Unlock()

	if cur := c.sgp4.Load(); cur != nil && cur.fetchedAt.Equal(ds.FetchedAt) {
		return cur
	}

	next := &sgp4Cache{
		props:     make(map[entryKey]*SGP4Propagator, len(ds.Satellites)),
		failed:    make(map[entryKey]error),
		fetchedAt: ds.FetchedAt,
	}
	for _, entry := range ds.Satellites {
		key := keyOf(entry)
		if _, ok := next.props[key]; ok {
			continue
		}
		sp, err := NewSGP4Propagator(entry)
		if err != nil {
			c.logger.Warn("sgp4 init failed", "norad_id", entry.NORADID, "name", entry.Name, "error", err)
			next.failed[key] = err
			continue
		}
		next.props[key] = sp
	}

	c.logger.Info("sgp4 propagator cache rebuilt",
		"cached", len(next.props),
		"skipped", len(next.failed),
		"dataset_fetched_at", ds.FetchedAt.UTC().Format(time.RFC3339),
	)
	c.sgp4.Store(next)
	return next
}
