package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/brokerops/pulse/internal/analytics"
	"github.com/brokerops/pulse/internal/config"
	"github.com/brokerops/pulse/internal/pipeline"
)

var (
	windowHours int
	runMode     string
	runFormat   string
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the agent report and deliver it",
		Long: `Generate the report for the trailing window and deliver it.

Modes:
  normal  publish to the configured note (what cron runs)
  manual  print the report to stdout instead of publishing
  dryrun  print the report and log what would be published, touch nothing

Formats:
  note      compact summary, shaped for the Notes app
  detailed  full per-agent breakdown with state counts and error details`,
		Args: cobra.NoArgs,
		RunE: runReportE,
	}

	cmd.Flags().IntVar(&windowHours, "window", 0, "Trailing window in hours (default: report.window_hours from config)")
	cmd.Flags().StringVar(&runMode, "mode", string(pipeline.ModeNormal), "Run mode: normal, manual, or dryrun")
	cmd.Flags().StringVar(&runFormat, "format", "", "Report format: note or detailed (default: report.format from config)")

	return cmd
}

func runReportE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	mode, err := pipeline.ParseMode(runMode)
	if err != nil {
		return &config.Error{Reason: err.Error()}
	}

	formatName := cfg.Report.Format
	if runFormat != "" {
		formatName = runFormat
	}
	format, err := pipeline.ParseFormat(formatName)
	if err != nil {
		return &config.Error{Reason: err.Error()}
	}

	window := cfg.Report.WindowHours
	if cmd.Flags().Changed("window") {
		if windowHours <= 0 {
			return &config.Error{Reason: fmt.Sprintf("window must be a positive number of hours, got %d", windowHours)}
		}
		window = windowHours
	}

	// The run ID only exists in logs, the report itself stays
	// byte-for-byte reproducible.
	runID := uuid.NewString()
	slog.Info("Starting reporting run", "run_id", runID, "mode", mode, "format", format, "window_hours", window)

	source := pipeline.NewRelevanceSource(newClient(cfg))
	runner := pipeline.NewRunner(source, newPublisher(cfg),
		pipeline.Agents{LouiseID: cfg.Agents.Louise, RogerID: cfg.Agents.Roger},
		pipeline.WithFormat(format),
		pipeline.WithOutput(cmd.OutOrStdout()),
		pipeline.WithMarkers(analytics.MarkerSet{Emails: cfg.Markers.Emails, Calls: cfg.Markers.Calls}),
		pipeline.WithFailureReports(cfg.Note.PublishFailures == nil || *cfg.Note.PublishFailures),
	)

	if err := runner.Run(cmd.Context(), window, mode); err != nil {
		slog.Error("Reporting run failed", "run_id", runID, "error", err)
		return err
	}

	slog.Info("Reporting run complete", "run_id", runID)
	return nil
}
