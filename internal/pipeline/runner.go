// Package pipeline orchestrates a reporting run: fetch both agents' tasks
// in parallel, aggregate them, render the report, and deliver it according
// to the run mode.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brokerops/pulse/internal/analytics"
	"github.com/brokerops/pulse/internal/notes"
	"github.com/brokerops/pulse/internal/report"
)

// Mode selects how a run delivers its report.
type Mode string

const (
	// ModeNormal publishes the report to the configured note.
	ModeNormal Mode = "normal"
	// ModeManual writes the report to the output writer instead of
	// publishing, for a human running the tool by hand.
	ModeManual Mode = "manual"
	// ModeDryRun writes the report to the output writer and logs what a
	// normal run would have published, without touching the note.
	ModeDryRun Mode = "dryrun"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNormal, ModeManual, ModeDryRun:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want %s, %s, or %s)", s, ModeNormal, ModeManual, ModeDryRun)
}

// Format selects which renderer produces the report text.
type Format string

const (
	FormatNote     Format = "note"
	FormatDetailed Format = "detailed"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatNote, FormatDetailed:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want %s or %s)", s, FormatNote, FormatDetailed)
}

// TaskSource yields the task records of one agent created after since.
type TaskSource interface {
	FetchRecords(ctx context.Context, agentID string, since time.Time) ([]analytics.TaskRecord, error)
}

// Agents carries the IDs of the two agents a run covers.
type Agents struct {
	LouiseID string
	RogerID  string
}

// Runner executes reporting runs.
type Runner struct {
	source    TaskSource
	publisher notes.Publisher
	agents    Agents

	clock           func() time.Time
	output          io.Writer
	format          Format
	markers         analytics.MarkerSet
	publishFailures bool
}

type Option func(*Runner)

// WithClock swaps the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.clock = now }
}

// WithOutput redirects report text in manual and dry-run modes.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.output = w }
}

// WithFormat selects the renderer. Default is the compact note format.
func WithFormat(f Format) Option {
	return func(r *Runner) { r.format = f }
}

// WithMarkers overrides the action markers counted per task.
func WithMarkers(m analytics.MarkerSet) Option {
	return func(r *Runner) { r.markers = m }
}

// WithFailureReports controls whether a failed normal run publishes an
// error report so the note shows the gap instead of silence.
func WithFailureReports(enabled bool) Option {
	return func(r *Runner) { r.publishFailures = enabled }
}

func NewRunner(source TaskSource, publisher notes.Publisher, agents Agents, opts ...Option) *Runner {
	r := &Runner{
		source:          source,
		publisher:       publisher,
		agents:          agents,
		clock:           time.Now,
		output:          os.Stdout,
		format:          FormatNote,
		markers:         analytics.DefaultMarkers(),
		publishFailures: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run fetches both agents' tasks for the trailing window, aggregates them,
// and delivers the rendered report per mode. Fetches run in parallel and
// fail fast: the first error cancels the other agent's fetch.
func (r *Runner) Run(ctx context.Context, windowHours int, mode Mode) error {
	now := r.clock()
	since := now.Add(-time.Duration(windowHours) * time.Hour)

	slog.Info("Fetching agent tasks", "window_hours", windowHours, "since", since.UTC())

	var louiseRecords, rogerRecords []analytics.TaskRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := r.source.FetchRecords(gctx, r.agents.LouiseID, since)
		if err != nil {
			return fmt.Errorf("fetching %s tasks: %w", analytics.AgentLouise, err)
		}
		louiseRecords = records
		return nil
	})
	g.Go(func() error {
		records, err := r.source.FetchRecords(gctx, r.agents.RogerID, since)
		if err != nil {
			return fmt.Errorf("fetching %s tasks: %w", analytics.AgentRoger, err)
		}
		rogerRecords = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return r.fail(ctx, mode, err)
	}

	louise := analytics.Aggregate(analytics.AgentLouise, louiseRecords, r.markers)
	roger := analytics.Aggregate(analytics.AgentRoger, rogerRecords, r.markers)

	rep := report.Build(now, windowHours, louise, roger)
	slog.Info("Report built",
		"total_tasks", rep.TotalTasks(),
		"failed", rep.TotalFailed(),
		"emails", rep.TotalEmails(),
		"calls", rep.TotalCalls())

	content := r.render(rep)

	switch mode {
	case ModeManual:
		fmt.Fprint(r.output, content)
	case ModeDryRun:
		fmt.Fprint(r.output, content)
		slog.Info("Dry run, skipping publish", "target", r.publisher.Describe())
	default:
		if err := r.publisher.Publish(ctx, content); err != nil {
			return fmt.Errorf("publishing report: %w", err)
		}
		slog.Info("Report published", "target", r.publisher.Describe())
	}

	return nil
}

func (r *Runner) render(rep *report.Report) string {
	if r.format == FormatDetailed {
		return report.RenderDetailed(rep)
	}
	return report.RenderNote(rep)
}

// fail handles a broken run. In normal mode it pushes an error report to
// the note so the missing entry is visible where the report was expected,
// then returns the original error either way.
func (r *Runner) fail(ctx context.Context, mode Mode, runErr error) error {
	slog.Error("Reporting run failed", "error", runErr)

	if mode == ModeNormal && r.publishFailures {
		content := report.RenderFailure(r.clock(), runErr)
		if pubErr := r.publisher.Publish(ctx, content); pubErr != nil {
			slog.Error("Publishing the failure report also failed", "error", pubErr)
		}
	}

	return runErr
}
