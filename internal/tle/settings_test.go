package tle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeSettings(t, `
tle_urls:
  - https://example.com/weather.txt
  - https://example.com/stations.txt
delay_seconds: 3600
track_everything: false
satellites_to_track:
  - ISS (ZARYA)
  - NOAA 19
`)

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Len(t, s.URLs, 2)
	assert.Equal(t, time.Hour, s.Delay())
	assert.False(t, s.TrackEverything)
	assert.Equal(t, []string{"ISS (ZARYA)", "NOAA 19"}, s.Satellites)
}

func TestLoadSettingsErrors(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadSettings(writeSettings(t, "tle_urls: [unterminated"))
	assert.Error(t, err)

	_, err = LoadSettings(writeSettings(t, "delay_seconds: -5"))
	assert.Error(t, err)
}

func TestSettingsSelect(t *testing.T) {
	entries, err := Parse(strings.NewReader(tleText(issBlock, starlinkBlock)), testLogger)
	require.NoError(t, err)

	assert.Len(t, Settings{TrackEverything: true}.Select(entries), 2)
	assert.Len(t, Settings{Satellites: []string{issName}}.Select(entries), 1)
	assert.Equal(t, defaultDelay, Settings{}.Delay())
}
