package tle

import "errors"

var (
	// ErrTLELoading is returned when no element sets could be read or none are loaded yet.
	ErrTLELoading = errors.New("failed to load TLE data")

	// ErrSatelliteNotFound is returned when no element set matches the requested satellite.
	ErrSatelliteNotFound = errors.New("satellite not found")
)
