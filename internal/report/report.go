// Package report builds and renders the reporting pipeline's output text.
// All renderers are pure functions of their inputs: identical data produces
// byte-identical text, so the only timestamp in a report is the injected
// generation time.
package report

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/brokerops/pulse/internal/analytics"
)

// Report is the assembled result of one pipeline run, ready for rendering.
type Report struct {
	// GeneratedAt is the run's timestamp, always UTC.
	GeneratedAt time.Time
	WindowHours int
	// Summaries hold the per-agent aggregates in presentation order
	// (Louise first, then Roger).
	Summaries []analytics.AgentSummary
}

// Build assembles a Report. The generation time is normalized to UTC here
// so renderers never need to care about zones.
func Build(generatedAt time.Time, windowHours int, summaries ...analytics.AgentSummary) *Report {
	return &Report{
		GeneratedAt: generatedAt.UTC(),
		WindowHours: windowHours,
		Summaries:   summaries,
	}
}

// TotalTasks returns the task count across all agents.
func (r *Report) TotalTasks() int {
	n := 0
	for i := range r.Summaries {
		n += r.Summaries[i].Total
	}
	return n
}

// TotalFailed returns the failed-task count across all agents.
func (r *Report) TotalFailed() int {
	n := 0
	for i := range r.Summaries {
		n += r.Summaries[i].Failed
	}
	return n
}

// TotalRunning returns the currently-running count across all agents.
func (r *Report) TotalRunning() int {
	n := 0
	for i := range r.Summaries {
		n += r.Summaries[i].Running()
	}
	return n
}

// TotalEmails returns the email action count across all agents.
func (r *Report) TotalEmails() int {
	n := 0
	for i := range r.Summaries {
		n += r.Summaries[i].EmailsSent
	}
	return n
}

// TotalCalls returns the call action count across all agents.
func (r *Report) TotalCalls() int {
	n := 0
	for i := range r.Summaries {
		n += r.Summaries[i].CallsMade
	}
	return n
}

// headerTimestamp renders the generation time the way report headers show
// it: MM/DD/YYYY HH:MM with an explicit UTC suffix.
func headerTimestamp(t time.Time) string {
	return t.UTC().Format("01/02/2006 15:04") + " UTC"
}

func agentIcon(name string) string {
	switch name {
	case analytics.AgentLouise:
		return "🏢"
	case analytics.AgentRoger:
		return "🏪"
	default:
		return "🤖"
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
