package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerops/pulse/internal/analytics"
)

var testGeneratedAt = time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC)

// scenarioReport builds the reference report: Louise with 10 tasks
// (8 succeeded, 2 failed, 3 emails) and Roger with 5 tasks (all
// succeeded, 2 calls).
func scenarioReport() *Report {
	base := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	var louise []analytics.TaskRecord
	for i := 0; i < 8; i++ {
		louise = append(louise, analytics.TaskRecord{
			ID: "l-ok", Status: analytics.StatusSucceeded,
			RawState: analytics.StateCompleted, CreatedAt: base,
		})
	}
	louise = append(louise,
		analytics.TaskRecord{
			ID: "l-err-1", Title: "Research suburb of Epping",
			Status: analytics.StatusFailed, RawState: "State.errored_pending_approval",
			CreatedAt: base.Add(2 * time.Hour),
		},
		analytics.TaskRecord{
			ID: "l-err-2", Title: "Research suburb of Parramatta",
			Status: analytics.StatusFailed, RawState: "State.errored_pending_approval",
			CreatedAt: base.Add(time.Hour),
		},
	)
	louise[0].Actions = []string{analytics.DefaultEmailMarker, analytics.DefaultEmailMarker}
	louise[1].Actions = []string{analytics.DefaultEmailMarker}

	var roger []analytics.TaskRecord
	for i := 0; i < 5; i++ {
		roger = append(roger, analytics.TaskRecord{
			ID: "r-ok", Status: analytics.StatusSucceeded,
			RawState: analytics.StateCompleted, CreatedAt: base,
		})
	}
	roger[0].Actions = []string{analytics.DefaultCallMarker}
	roger[1].Actions = []string{analytics.DefaultCallMarker}

	markers := analytics.DefaultMarkers()
	return Build(testGeneratedAt, 24,
		analytics.Aggregate(analytics.AgentLouise, louise, markers),
		analytics.Aggregate(analytics.AgentRoger, roger, markers),
	)
}

func TestRenderNoteScenario(t *testing.T) {
	text := RenderNote(scenarioReport())

	assert.True(t, strings.HasPrefix(text, "📊 Daily Report - 08/25/2026 14:00 UTC\n"))
	assert.Contains(t, text, "🏢 Louise: 8 processed (80.0% success)\n")
	assert.Contains(t, text, "🏪 Roger: 5 processed (100.0% success)\n")
	assert.Contains(t, text, "📧 Communications: 3 emails, 2 calls\n")
	assert.Contains(t, text, "⚠️ Errors: 2 total (2 Louise, 0 Roger)\n")

	// Louise's section renders before Roger's.
	assert.Less(t, strings.Index(text, "Louise"), strings.Index(text, "Roger"))

	// Newest failure first in the recent errors block.
	assert.Contains(t, text, "⚠️ Recent Errors:\n   1. Research suburb of Epping\n   2. Research suburb of Parramatta\n")

	// Nothing is running, so the running line is omitted.
	assert.NotContains(t, text, "Currently running")

	assert.True(t, strings.HasSuffix(text, strings.Repeat("─", 30)+"\n\n"))
}

func TestRenderNoteDeterministic(t *testing.T) {
	r := scenarioReport()
	require.Equal(t, RenderNote(r), RenderNote(r))
}

func TestRenderNoteEmptyWindow(t *testing.T) {
	markers := analytics.DefaultMarkers()
	r := Build(testGeneratedAt, 24,
		analytics.Aggregate(analytics.AgentLouise, nil, markers),
		analytics.Aggregate(analytics.AgentRoger, nil, markers),
	)

	text := RenderNote(r)

	// Zero totals still render as zeroes; only the conditional lines drop out.
	assert.Contains(t, text, "🏢 Louise: 0 processed (0.0% success)\n")
	assert.Contains(t, text, "🏪 Roger: 0 processed (0.0% success)\n")
	assert.Contains(t, text, "📧 Communications: 0 emails, 0 calls\n")
	assert.NotContains(t, text, "Errors:")
	assert.NotContains(t, text, "Currently running")
	assert.NotContains(t, text, "Recent Errors")
}

func TestRenderNoteRunningLine(t *testing.T) {
	markers := analytics.DefaultMarkers()
	records := []analytics.TaskRecord{
		{ID: "t1", Status: analytics.StatusInProgress, RawState: analytics.StateRunning},
		{ID: "t2", Status: analytics.StatusInProgress, RawState: analytics.StateIdle},
	}
	r := Build(testGeneratedAt, 24,
		analytics.Aggregate(analytics.AgentLouise, records, markers),
		analytics.Aggregate(analytics.AgentRoger, nil, markers),
	)

	text := RenderNote(r)

	// Only State.running counts; idle does not.
	assert.Contains(t, text, "🏃 Currently running: 1 tasks\n")
}

func TestRenderNoteErrorOverflowAndTruncation(t *testing.T) {
	markers := analytics.DefaultMarkers()
	longTitle := strings.Repeat("x", 80)

	var records []analytics.TaskRecord
	for i := 0; i < 4; i++ {
		records = append(records, analytics.TaskRecord{
			ID: "t", Title: longTitle,
			Status: analytics.StatusFailed, RawState: "State.errored_pending_approval",
			CreatedAt: testGeneratedAt.Add(-time.Duration(i) * time.Minute),
		})
	}
	r := Build(testGeneratedAt, 24,
		analytics.Aggregate(analytics.AgentLouise, records, markers),
		analytics.Aggregate(analytics.AgentRoger, nil, markers),
	)

	text := RenderNote(r)

	assert.Contains(t, text, "   ... and 2 more\n")
	assert.NotContains(t, text, longTitle)
	assert.Contains(t, text, strings.Repeat("x", 47)+"...")
}

func TestRenderFailure(t *testing.T) {
	text := RenderFailure(testGeneratedAt, assert.AnError)

	assert.True(t, strings.HasPrefix(text, "ANALYTICS ERROR\n"))
	assert.Contains(t, text, "Timestamp: 2026-08-25T14:00:00Z\n")
	assert.Contains(t, text, "Error: "+assert.AnError.Error()+"\n")
	assert.Contains(t, text, strings.Repeat("=", 40))

	// A failure note never looks like a daily report.
	assert.NotContains(t, text, "Daily Report")
}
