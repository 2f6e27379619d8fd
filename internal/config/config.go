// Package config loads service configuration from defaults, an optional YAML
// file, a .env file and ORBITALIK_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. ORBITALIK_SERVER_ADDR.
const EnvPrefix = "ORBITALIK"

// Config holds all configuration for the service.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Auth   AuthConfig   `mapstructure:"auth"`
	TLE    TLEConfig    `mapstructure:"tle"`
	Passes PassesConfig `mapstructure:"passes"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr               string        `mapstructure:"addr"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	TrustProxy         bool          `mapstructure:"trust_proxy"`           // honour X-Forwarded-For
	MaxConcurrentPerIP int           `mapstructure:"max_concurrent_per_ip"` // in-flight computations
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// AuthConfig holds bearer-token configuration for mutating endpoints.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

// TLEConfig controls where element sets come from.
type TLEConfig struct {
	File         string `mapstructure:"file"`
	CacheDir     string `mapstructure:"cache_dir"`
	MaxFiles     int    `mapstructure:"max_files"`
	SettingsFile string `mapstructure:"settings_file"`
	EnableFetch  bool   `mapstructure:"enable_fetch"`
}

// PassesConfig holds limits and defaults for pass queries.
type PassesConfig struct {
	MaxDurationHours  int      `mapstructure:"max_duration_hours"`
	DefaultSatellites []string `mapstructure:"default_satellites"`
}

// DefaultSatellites are the weather and station satellites queried when a
// request names none.
var DefaultSatellites = []string{
	"METEOR-M2 2", "METEOR-M2 3", "NOAA 18", "NOAA 19", "METOP-B", "METOP-C", "ISS (ZARYA)",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.trust_proxy", false)
	v.SetDefault("server.max_concurrent_per_ip", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.token", "")
	v.SetDefault("tle.file", "")
	v.SetDefault("tle.cache_dir", filepath.Join(xdg.CacheHome, "orbitalik", "tle"))
	v.SetDefault("tle.max_files", 5)
	v.SetDefault("tle.settings_file", "")
	v.SetDefault("tle.enable_fetch", false)
	v.SetDefault("passes.max_duration_hours", 240)
	v.SetDefault("passes.default_satellites", DefaultSatellites)
}

// Load reads configuration. path names an explicit config file; when empty,
// orbitalik.yaml is looked up in the working directory and the XDG config
// directory and silently skipped if absent.
func Load(path string) (*Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("orbitalik")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "orbitalik"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.Auth.Token == "" {
		return ErrMissingAuthToken
	}
	if c.TLE.MaxFiles < 1 {
		return ErrInvalidMaxFiles
	}
	if c.Passes.MaxDurationHours < 1 {
		return ErrInvalidMaxDuration
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Server.MaxConcurrentPerIP < 1 {
		return ErrInvalidConcurrency
	}
	return nil
}

// NewLogger creates a slog.Logger writing to stdout.
func (c *Config) NewLogger() *slog.Logger {
	return c.NewLoggerTo(os.Stdout)
}

// NewLoggerTo creates a slog.Logger at the configured level and format.
func (c *Config) NewLoggerTo(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}
