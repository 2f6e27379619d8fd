package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/star/orbitalik/internal/transform"
)

// timeLayout is accepted alongside RFC 3339 and read as UTC.
const timeLayout = "2006-01-02T15:04"

func addObserverFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("lat", 0, "Observer latitude in degrees (-90..90)")
	cmd.Flags().Float64("lon", 0, "Observer longitude in degrees (-180..180)")
	cmd.Flags().Float64("alt", 0, "Observer altitude in metres")
	cmd.Flags().String("tle", "", "TLE file (default: tle.file, then the newest cache snapshot)")
	cmd.Flags().StringP("format", "f", "markdown", "Output format: json or markdown")
}

func observerFromFlags(cmd *cobra.Command) (transform.Observer, error) {
	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	alt, _ := cmd.Flags().GetFloat64("alt")
	if !(lat >= -90 && lat <= 90) {
		return transform.Observer{}, fmt.Errorf("--lat must be between -90 and 90, got %g", lat)
	}
	if !(lon >= -180 && lon <= 180) {
		return transform.Observer{}, fmt.Errorf("--lon must be between -180 and 180, got %g", lon)
	}
	if !(alt >= 0 && alt <= 10000) {
		return transform.Observer{}, fmt.Errorf("--alt must be between 0 and 10000 metres, got %g", alt)
	}
	return transform.ObserverFromDegrees(lat, lon, alt), nil
}

// parseTime accepts RFC 3339 or 2006-01-02T15:04 (UTC); empty means now.
func parseTime(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want RFC 3339 or %s", raw, timeLayout)
	}
	return t, nil
}

// tlePath prefers the --tle flag over tle.file.
func tlePath(cmd *cobra.Command, configured string) string {
	if p, _ := cmd.Flags().GetString("tle"); p != "" {
		return p
	}
	return configured
}
