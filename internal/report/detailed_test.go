package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brokerops/pulse/internal/analytics"
)

func TestRenderDetailedScenario(t *testing.T) {
	text := RenderDetailed(scenarioReport())

	assert.Contains(t, text, "LOUISE TASK SUCCESS AND ERROR ANALYSIS - LAST 24 HOURS\n")
	assert.Contains(t, text, "ROGER TASK SUCCESS AND ERROR ANALYSIS - LAST 24 HOURS\n")
	assert.Contains(t, text, strings.Repeat("=", 60)+"\n")

	assert.Contains(t, text, "Total tasks in last 24 hours: 10\n")
	assert.Contains(t, text, "Successful tasks: 8\n")
	assert.Contains(t, text, "Errored tasks: 2\n")
	assert.Contains(t, text, "Success rate: 80.0%\n")
	assert.Contains(t, text, "Error rate: 20.0%\n")
	assert.Contains(t, text, "Success rate: 100.0%\n")

	// Breakdown shows raw states with percentages, most frequent first.
	assert.Contains(t, text, "Task states breakdown:\n")
	idxCompleted := strings.Index(text, "State.completed")
	idxErrored := strings.Index(text, "State.errored_pending_approval")
	assert.Greater(t, idxCompleted, -1)
	assert.Greater(t, idxErrored, idxCompleted)
	assert.Contains(t, text, "( 80.0%)")
	assert.Contains(t, text, "( 20.0%)")

	// Error details include state and date lines.
	assert.Contains(t, text, "1. Research suburb of Epping\n")
	assert.Contains(t, text, "     State: State.errored_pending_approval\n")
	assert.Contains(t, text, "     Date: 2026-08-25T11:00:00Z\n")

	// Summary block.
	assert.Contains(t, text, "SUMMARY - LAST 24 HOURS\n")
	assert.Contains(t, text, "📊 Louise processed: 8\n")
	assert.Contains(t, text, "❌ Louise errors: 2\n")
	assert.Contains(t, text, "📧 Emails sent: 3\n")
	assert.Contains(t, text, "📞 Calls made: 2\n")
	assert.Contains(t, text, "📈 Louise success rate: 80.0%\n")
	assert.Contains(t, text, "   Tasks with emails: 2\n")
	assert.Contains(t, text, "   Average emails per task: 1.5\n")
}

func TestRenderDetailedDeterministic(t *testing.T) {
	r := scenarioReport()
	assert.Equal(t, RenderDetailed(r), RenderDetailed(r))
}

func TestRenderDetailedErrorOverflow(t *testing.T) {
	markers := analytics.DefaultMarkers()

	var records []analytics.TaskRecord
	for i := 0; i < 7; i++ {
		records = append(records, analytics.TaskRecord{
			ID: "t", Title: "failing task",
			Status: analytics.StatusFailed, RawState: "State.errored_pending_approval",
			CreatedAt: testGeneratedAt.Add(-time.Duration(i) * time.Minute),
		})
	}
	r := Build(testGeneratedAt, 24,
		analytics.Aggregate(analytics.AgentLouise, records, markers),
		analytics.Aggregate(analytics.AgentRoger, nil, markers),
	)

	text := RenderDetailed(r)

	assert.Contains(t, text, "  5. failing task\n")
	assert.NotContains(t, text, "  6. failing task\n")
	assert.Contains(t, text, "  ... and 2 more errors\n")
}

func TestRenderDetailedNoEmails(t *testing.T) {
	markers := analytics.DefaultMarkers()
	r := Build(testGeneratedAt, 12,
		analytics.Aggregate(analytics.AgentLouise, nil, markers),
		analytics.Aggregate(analytics.AgentRoger, nil, markers),
	)

	text := RenderDetailed(r)

	assert.Contains(t, text, "SUMMARY - LAST 12 HOURS\n")
	assert.Contains(t, text, "   No email actions in the last 12 hours\n")
	// Empty agents have no rate lines.
	assert.NotContains(t, text, "Success rate:")
}
