package tle

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings controls which element sets are fetched and kept.
type Settings struct {
	URLs            []string `yaml:"tle_urls"`
	DelaySeconds    int      `yaml:"delay_seconds"`
	TrackEverything bool     `yaml:"track_everything"`
	Satellites      []string `yaml:"satellites_to_track"`
}

const defaultDelay = 6 * time.Hour

// LoadSettings reads tracking settings from a YAML file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading TLE settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing TLE settings %s: %w", path, err)
	}
	if s.DelaySeconds < 0 {
		return Settings{}, fmt.Errorf("parsing TLE settings %s: negative delay_seconds", path)
	}
	return s, nil
}

// Delay returns the refresh interval.
func (s Settings) Delay() time.Duration {
	if s.DelaySeconds == 0 {
		return defaultDelay
	}
	return time.Duration(s.DelaySeconds) * time.Second
}

// Select applies the tracking filter to parsed entries.
func (s Settings) Select(entries []TLEEntry) []TLEEntry {
	if s.TrackEverything {
		return entries
	}
	return Filter(entries, s.Satellites)
}
