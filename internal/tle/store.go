package tle

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Store provides thread-safe access to the current TLE dataset.
type Store struct {
	dataset atomic.Pointer[TLEDataset]
	mu      sync.Mutex // serializes refreshes
}

// NewStore creates a new empty Store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the current dataset, or nil if none has been loaded.
func (s *Store) Get() *TLEDataset {
	return s.dataset.Load()
}

// Set atomically replaces the current dataset.
func (s *Store) Set(ds *TLEDataset) {
	s.dataset.Store(ds)
}

// Loaded reports whether a dataset is available.
func (s *Store) Loaded() bool {
	return s.dataset.Load() != nil
}

// AgeSeconds returns the age of the current dataset in seconds.
// Returns -1 if no dataset is loaded.
func (s *Store) AgeSeconds() float64 {
	ds := s.dataset.Load()
	if ds == nil {
		return -1
	}
	return time.Since(ds.FetchedAt).Seconds()
}

// Lookup finds an element set by satellite name or NORAD ID.
// An exact name match wins over a case-insensitive one.
func (s *Store) Lookup(query string) (TLEEntry, error) {
	ds := s.dataset.Load()
	if ds == nil {
		return TLEEntry{}, ErrTLELoading
	}
	return ds.Find(query)
}

// Names returns the satellite names in dataset order.
func (s *Store) Names() ([]string, error) {
	ds := s.dataset.Load()
	if ds == nil {
		return nil, ErrTLELoading
	}
	names := make([]string, 0, len(ds.Satellites))
	for _, e := range ds.Satellites {
		names = append(names, e.Name)
	}
	return names, nil
}

// Find looks up an element set by name or NORAD ID.
func (ds *TLEDataset) Find(query string) (TLEEntry, error) {
	query = strings.TrimSpace(query)
	for _, e := range ds.Satellites {
		if e.Name == query {
			return e, nil
		}
	}
	for _, e := range ds.Satellites {
		if strings.EqualFold(e.Name, query) {
			return e, nil
		}
	}
	if id, err := strconv.Atoi(query); err == nil {
		for _, e := range ds.Satellites {
			if e.NORADID == id {
				return e, nil
			}
		}
	}
	return TLEEntry{}, fmt.Errorf("%w: %q", ErrSatelliteNotFound, query)
}

// Lock acquires the refresh mutex.
func (s *Store) Lock() {
	s.mu.Lock()
}

// Unlock releases the refresh mutex.
func (s *Store) Unlock() {
	s.mu.Unlock()
}
