package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/star/orbitalik/internal/config"
	"github.com/star/orbitalik/internal/tle"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orbitalik",
		Short: "Satellite pass prediction service",
		Long: `Orbitalik predicts when satellites rise above, culminate over and set below
an observer's horizon, using SGP4 propagation of two-line element sets.

Configuration is read from orbitalik.yaml (working directory or the XDG config
directory), a .env file and ORBITALIK_* environment variables.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Configuration file path")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewPassesCmd())
	cmd.AddCommand(NewSatelliteCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads configuration honouring the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// openStore loads element sets from tlePath, or from the newest cache
// snapshot when tlePath is empty.
func openStore(cfg *config.Config, tlePath string, logger *slog.Logger) (*tle.Store, error) {
	store := tle.NewStore()
	cache := tle.NewCache(cfg.TLE.CacheDir, cfg.TLE.MaxFiles)
	if err := tle.Bootstrap(store, tlePath, cache, logger); err != nil {
		return nil, err
	}
	return store, nil
}
