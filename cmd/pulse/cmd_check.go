package main

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/brokerops/pulse/internal/analytics"
	"github.com/brokerops/pulse/internal/config"
	"github.com/brokerops/pulse/internal/spinner"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check configuration and connectivity",
		Long: `Check that the configuration is complete, the API accepts the
credentials, both agents are reachable, and the publish target is usable.

Run this once after editing pulse.yaml and before handing the report
command to cron.`,
		Args:          cobra.NoArgs,
		RunE:          runCheckE,
		SilenceErrors: true,
	}
	return cmd
}

func runCheckE(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 1. Configuration
	writeSection(out, "🔧", "Configuration", "")
	if err := cfg.Validate(); err != nil {
		writeStatus(out, statusIcon("error"), err.Error())
		return err
	}
	writeStatus(out, statusIcon("ok"), fmt.Sprintf("window %dh, format %s, publisher %s", cfg.Report.WindowHours, cfg.Report.Format, cfg.Note.Publisher))

	failed := false

	// 2. API connectivity, one probe per agent
	writeSection(out, "🌐", "API connectivity", "")
	client := newClient(cfg)
	for _, probe := range []struct{ name, id string }{
		{analytics.AgentLouise, cfg.Agents.Louise},
		{analytics.AgentRoger, cfg.Agents.Roger},
	} {
		start := time.Now()
		err := withSpinner(out, "Probing "+probe.name, func() error {
			return client.ProbeAgent(cmd.Context(), probe.id)
		})
		if err != nil {
			writeStatus(out, statusIcon("error"), fmt.Sprintf("%s (%s): %v", probe.name, probe.id, err))
			failed = true
			continue
		}
		writeStatus(out, statusIcon("ok"), fmt.Sprintf("%s reachable in %s", probe.name, time.Since(start).Round(time.Millisecond)))
	}

	// 3. Publish target
	writeSection(out, "📝", "Publish target", "")
	pub := newPublisher(cfg)
	if cfg.Note.Publisher == config.PublisherOSAScript {
		if _, err := exec.LookPath("osascript"); err != nil {
			writeStatus(out, statusIcon("error"), "osascript not found in PATH (Notes publishing needs macOS)")
			failed = true
		} else {
			writeStatus(out, statusIcon("ok"), pub.Describe())
		}
	} else {
		writeStatus(out, statusIcon("ok"), pub.Describe())
	}

	if failed {
		return fmt.Errorf("one or more checks failed")
	}

	//nolint:errcheck
	fmt.Fprintln(out, "\nAll checks passed.")
	return nil
}

// withSpinner runs fn under an animated spinner when out is a terminal,
// and plainly otherwise (cron, tests, redirected output).
func withSpinner(out writer, message string, fn func() error) error {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return spinner.While(f, message, fn)
	}
	return fn()
}

type writer = interface{ Write([]byte) (int, error) }

// writeSection prints a section header: "emoji Title: summary\n".
//
//nolint:errcheck
func writeSection(w writer, emoji, title, summary string) {
	if summary != "" {
		fmt.Fprintf(w, "%s %s: %s\n", emoji, title, summary)
	} else {
		fmt.Fprintf(w, "%s %s\n", emoji, title)
	}
}

// writeStatus prints a status line: "   icon  message\n".
//
//nolint:errcheck
func writeStatus(w writer, icon, message string) {
	fmt.Fprintf(w, "   %s  %s\n", icon, message)
}

// statusIcon returns the standard 3-state icon for the given state.
func statusIcon(state string) string {
	switch state {
	case "ok":
		return "✅"
	case "warning":
		return "⚠️"
	case "error":
		return "❌"
	default:
		return "—"
	}
}
