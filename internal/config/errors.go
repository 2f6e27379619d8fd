package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	// ErrMissingAuthToken is returned when auth is enabled without a token.
	ErrMissingAuthToken = errors.New("auth.token is required when auth is enabled")

	// ErrInvalidMaxFiles is returned when the TLE cache would keep no files.
	ErrInvalidMaxFiles = errors.New("tle.max_files must be positive")

	// ErrInvalidMaxDuration is returned when pass queries would allow no window.
	ErrInvalidMaxDuration = errors.New("passes.max_duration_hours must be positive")

	// ErrInvalidTimeout is returned for non-positive server timeouts.
	ErrInvalidTimeout = errors.New("server timeouts must be positive")

	// ErrInvalidConcurrency is returned when no client could run a computation.
	ErrInvalidConcurrency = errors.New("server.max_concurrent_per_ip must be positive")
)
