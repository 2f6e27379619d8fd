package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/star/orbitalik/internal/report"
	"github.com/star/orbitalik/internal/service"
	"github.com/star/orbitalik/internal/transform"
)

// NewPassesCmd creates the passes command.
func NewPassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passes",
		Short: "Predict passes over an observer",
		Long: `Passes lists every pass of the selected satellites over the observer in
the requested window, sorted by rise time.

Examples:
  # Default satellites over Moscow for the next day
  orbitalik passes --lat 55.75 --lon 37.62

  # Two satellites, passes reaching at least 30 degrees, as JSON
  orbitalik passes -s "NOAA 19" -s METOP-B --lat 55.75 --lon 37.62 \
    --min-apogee 30 --start 2025-02-14T12:00 --hours 48 -f json`,
		Args: cobra.NoArgs,
		RunE: runPasses,
	}

	addObserverFlags(cmd)
	cmd.Flags().StringSliceP("satellite", "s", nil, "Satellite name or NORAD ID (repeatable; default: passes.default_satellites)")
	cmd.Flags().String("start", "", "Window start, RFC 3339 or 2006-01-02T15:04 UTC (default: now)")
	cmd.Flags().Int("hours", 24, "Window length in hours")
	cmd.Flags().Float64("min-elevation", 0, "Horizon threshold in degrees; rise and fall are reported where the pass crosses it")
	cmd.Flags().Float64("min-apogee", 0, "Drop passes culminating below this many degrees")

	return cmd
}

func runPasses(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := cfg.NewLoggerTo(cmd.ErrOrStderr())

	obs, err := observerFromFlags(cmd)
	if err != nil {
		return err
	}
	startRaw, _ := cmd.Flags().GetString("start")
	start, err := parseTime(startRaw, time.Now())
	if err != nil {
		return err
	}
	hours, _ := cmd.Flags().GetInt("hours")
	minEl, _ := cmd.Flags().GetFloat64("min-elevation")
	minApogee, _ := cmd.Flags().GetFloat64("min-apogee")
	names, _ := cmd.Flags().GetStringSlice("satellite")
	format, _ := cmd.Flags().GetString("format")

	w, err := report.New(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	store, err := openStore(cfg, tlePath(cmd, cfg.TLE.File), logger)
	if err != nil {
		return err
	}
	svc := service.New(store, service.Options{
		DefaultSatellites: cfg.Passes.DefaultSatellites,
		MaxDuration:       time.Duration(cfg.Passes.MaxDurationHours) * time.Hour,
	}, logger)

	found, err := svc.Passes(cmd.Context(), service.PassQuery{
		Satellites:   names,
		Start:        start,
		Duration:     time.Duration(hours) * time.Hour,
		MinElevation: transform.Radians(minEl),
		MinApogee:    transform.Radians(minApogee),
		Observer:     obs,
	})
	if err != nil {
		return err
	}
	return w.WritePasses(found)
}
