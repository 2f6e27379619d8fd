package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/star/orbitalik/internal/api"
	"github.com/star/orbitalik/internal/auth"
	"github.com/star/orbitalik/internal/config"
	"github.com/star/orbitalik/internal/service"
	"github.com/star/orbitalik/internal/tle"
)

const (
	ageInterval     = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve starts the HTTP API. Element sets come from tle.file when set,
otherwise from the newest cache snapshot. With tle.enable_fetch the sources in
tle.settings_file (or Celestrak's active list) are refreshed periodically.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	return cmd
}

// app is the wired server process.
type app struct {
	store     *tle.Store
	refresher *tle.Refresher // nil when fetching is disabled
	server    *api.Server
	logger    *slog.Logger
}

// trackingSettings returns the refresh settings; without a settings file the
// default satellites are tracked from the default source.
func trackingSettings(cfg *config.Config) (tle.Settings, error) {
	if cfg.TLE.SettingsFile != "" {
		return tle.LoadSettings(cfg.TLE.SettingsFile)
	}
	return tle.Settings{Satellites: cfg.Passes.DefaultSatellites}, nil
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	store := tle.NewStore()
	cache := tle.NewCache(cfg.TLE.CacheDir, cfg.TLE.MaxFiles)

	if err := tle.Bootstrap(store, cfg.TLE.File, cache, logger); err != nil {
		if cfg.TLE.File != "" || !cfg.TLE.EnableFetch {
			return nil, err
		}
		logger.Info("no TLE cache found, starting without TLE data", "error", err)
	}

	a := &app{store: store, logger: logger}

	// A nil *tle.Refresher must not become a non-nil api.Refresher.
	var refresher api.Refresher
	if cfg.TLE.EnableFetch {
		settings, err := trackingSettings(cfg)
		if err != nil {
			return nil, err
		}
		a.refresher = tle.NewRefresher(store, cache, settings, logger)
		refresher = a.refresher
	}

	svc := service.New(store, service.Options{
		DefaultSatellites: cfg.Passes.DefaultSatellites,
		MaxDuration:       time.Duration(cfg.Passes.MaxDurationHours) * time.Hour,
	}, logger)

	a.server = api.NewServer(api.Options{
		Addr:               cfg.Server.Addr,
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		TrustProxy:         cfg.Server.TrustProxy,
		MaxConcurrentPerIP: cfg.Server.MaxConcurrentPerIP,
		Auth:               auth.Config{Enabled: cfg.Auth.Enabled, Token: cfg.Auth.Token},
	}, svc, refresher, logger)

	return a, nil
}

// run serves until ctx is cancelled, then shuts down gracefully.
func (a *app) run(ctx context.Context) error {
	go tle.TrackAge(ctx, a.store, ageInterval)
	if a.refresher != nil {
		go a.refresher.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server",
			"addr", a.server.HTTPServer().Addr,
			"tle_fetch_enabled", a.refresher != nil,
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server listen error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.HTTPServer().Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}
