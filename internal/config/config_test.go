package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/star/orbitalik/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp isolates tests from any orbitalik.yaml or .env in the package directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Server.TrustProxy)
	assert.Equal(t, 4, cfg.Server.MaxConcurrentPerIP)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, 5, cfg.TLE.MaxFiles)
	assert.Contains(t, cfg.TLE.CacheDir, filepath.Join("orbitalik", "tle"))
	assert.Equal(t, 240, cfg.Passes.MaxDurationHours)
	assert.Equal(t, config.DefaultSatellites, cfg.Passes.DefaultSatellites)
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ORBITALIK_SERVER_ADDR", ":9090")
	t.Setenv("ORBITALIK_SERVER_WRITE_TIMEOUT", "2m")
	t.Setenv("ORBITALIK_LOG_LEVEL", "debug")
	t.Setenv("ORBITALIK_TLE_FILE", "/data/tle.txt")
	t.Setenv("ORBITALIK_TLE_ENABLE_FETCH", "true")
	t.Setenv("ORBITALIK_AUTH_ENABLED", "true")
	t.Setenv("ORBITALIK_AUTH_TOKEN", "secret")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/data/tle.txt", cfg.TLE.File)
	assert.True(t, cfg.TLE.EnableFetch)
	assert.Equal(t, "secret", cfg.Auth.Token)
}

func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":7070"
log:
  format: text
passes:
  max_duration_hours: 48
  default_satellites:
    - NOAA 19
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 48, cfg.Passes.MaxDurationHours)
	assert.Equal(t, []string{"NOAA 19"}, cfg.Passes.DefaultSatellites)
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ORBITALIK_TLE_MAX_FILES=9\n"), 0o644))
	// godotenv never overrides set variables; t.Setenv arranges for the
	// value it loads to be removed again after the test.
	t.Setenv("ORBITALIK_TLE_MAX_FILES", "")
	require.NoError(t, os.Unsetenv("ORBITALIK_TLE_MAX_FILES"))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.TLE.MaxFiles)
}

func TestLoadErrors(t *testing.T) {
	chdirTemp(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("ORBITALIK_AUTH_ENABLED", "true")
	_, err = config.Load("")
	assert.ErrorIs(t, err, config.ErrMissingAuthToken)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			Server: config.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second, MaxConcurrentPerIP: 1},
			TLE:    config.TLEConfig{MaxFiles: 1},
			Passes: config.PassesConfig{MaxDurationHours: 1},
		}
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"valid", func(*config.Config) {}, nil},
		{"auth without token", func(c *config.Config) { c.Auth.Enabled = true }, config.ErrMissingAuthToken},
		{"no cache files", func(c *config.Config) { c.TLE.MaxFiles = 0 }, config.ErrInvalidMaxFiles},
		{"no duration", func(c *config.Config) { c.Passes.MaxDurationHours = 0 }, config.ErrInvalidMaxDuration},
		{"zero timeout", func(c *config.Config) { c.Server.ReadTimeout = 0 }, config.ErrInvalidTimeout},
		{"no concurrency", func(c *config.Config) { c.Server.MaxConcurrentPerIP = 0 }, config.ErrInvalidConcurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Config{Log: config.LogConfig{Level: "warn", Format: "json"}}
	logger := cfg.NewLoggerTo(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)

	buf.Reset()
	cfg.Log = config.LogConfig{Level: "nonsense", Format: "text"}
	cfg.NewLoggerTo(&buf).Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
