package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/brokerops/pulse/internal/config"
	"github.com/brokerops/pulse/internal/notes"
	"github.com/brokerops/pulse/internal/relevance"
)

var version = "dev"

var configPath string

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pulse",
		Short: "Pulse - daily analytics reports for the broker agents",
		Long: `Pulse summarizes what the Louise and Roger agents did over a trailing
window: how many tasks succeeded, what errored, and how many emails and
calls went out. The summary lands in an Apple Notes note so the morning
report is waiting on your phone.

Designed to run from cron, but works interactively too.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to pulse.yaml (default: search upward from the working directory)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load(".")
}

func newClient(cfg *config.Config) *relevance.Client {
	return relevance.New(relevance.Options{
		Region:   cfg.API.Region,
		Project:  cfg.API.Project,
		APIKey:   cfg.API.APIKey,
		PageSize: cfg.API.PageSize,
		Timeout:  cfg.API.Timeout(),
		BaseURL:  cfg.API.BaseURL,
	})
}

func newPublisher(cfg *config.Config) notes.Publisher {
	if cfg.Note.Publisher == config.PublisherFile {
		return &notes.FilePublisher{Path: cfg.Note.Path}
	}
	return notes.NewOSAScriptPublisher(notes.NoteLocation{
		Folder: cfg.Note.Folder,
		Title:  cfg.Note.Title,
	})
}
