package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/star/orbitalik/internal/report"
	"github.com/star/orbitalik/internal/service"
)

// NewSatelliteCmd creates the satellite command.
func NewSatelliteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "satellite NAME",
		Short: "Show one satellite's orbit, ground track and upcoming passes",
		Long: `Satellite prints the orbital elements of NAME (a satellite name or NORAD ID),
its ground track from one hour before to one hour after --at, the observer's look
angles for the following hour and the passes of the next 24 hours. Geostationary
satellites have no passes.`,
		Args: cobra.ExactArgs(1),
		RunE: runSatellite,
	}
	addObserverFlags(cmd)
	cmd.Flags().String("at", "", "Reference time, RFC 3339 or 2006-01-02T15:04 UTC (default: now)")
	return cmd
}

func runSatellite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := cfg.NewLoggerTo(cmd.ErrOrStderr())

	obs, err := observerFromFlags(cmd)
	if err != nil {
		return err
	}
	atRaw, _ := cmd.Flags().GetString("at")
	at, err := parseTime(atRaw, time.Now())
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	w, err := report.New(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	store, err := openStore(cfg, tlePath(cmd, cfg.TLE.File), logger)
	if err != nil {
		return err
	}
	svc := service.New(store, service.Options{DefaultSatellites: cfg.Passes.DefaultSatellites}, logger)

	data, err := svc.SatelliteData(cmd.Context(), args[0], obs, at)
	if err != nil {
		return err
	}
	return w.WriteSatellite(data)
}
