package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/brokerops/pulse/internal/analytics"
)

const (
	noteSeparatorWidth = 30
	noteErrorLimit     = 2
	noteTitleWidth     = 50
)

// RenderNote renders the compact report that gets appended to the note.
// Layout: timestamp header, one line per agent, a communications line,
// then error and running lines only when they have something to say, an
// optional recent-errors block, and a separator that keeps consecutive
// reports readable in the note body.
func RenderNote(r *Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 Daily Report - %s\n", headerTimestamp(r.GeneratedAt)))
	b.WriteString("\n")

	for i := range r.Summaries {
		s := &r.Summaries[i]
		b.WriteString(fmt.Sprintf("%s %s: %d processed (%.1f%% success)\n",
			agentIcon(s.Agent), s.Agent, s.Succeeded, s.SuccessRate()*100))
	}

	b.WriteString(fmt.Sprintf("📧 Communications: %d emails, %d calls\n",
		r.TotalEmails(), r.TotalCalls()))

	if total := r.TotalFailed(); total > 0 {
		parts := make([]string, 0, len(r.Summaries))
		for i := range r.Summaries {
			s := &r.Summaries[i]
			parts = append(parts, fmt.Sprintf("%d %s", s.Failed, s.Agent))
		}
		b.WriteString(fmt.Sprintf("⚠️ Errors: %d total (%s)\n", total, strings.Join(parts, ", ")))
	}

	if running := r.TotalRunning(); running > 0 {
		b.WriteString(fmt.Sprintf("🏃 Currently running: %d tasks\n", running))
	}

	if details := renderRecentErrors(r); details != "" {
		b.WriteString("\n")
		b.WriteString(details)
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", noteSeparatorWidth))
	b.WriteString("\n\n")

	return b.String()
}

// renderRecentErrors renders the top recent failures across all agents,
// newest first. Returns "" when there are none.
func renderRecentErrors(r *Report) string {
	var all []analytics.TaskError
	for i := range r.Summaries {
		all = append(all, r.Summaries[i].Errors...)
	}
	if len(all) == 0 {
		return ""
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	var b strings.Builder
	b.WriteString("⚠️ Recent Errors:\n")

	shown := len(all)
	if shown > noteErrorLimit {
		shown = noteErrorLimit
	}
	for i := 0; i < shown; i++ {
		title := all[i].Title
		if title == "" {
			title = "No title"
		}
		b.WriteString(fmt.Sprintf("   %d. %s\n", i+1, runewidth.Truncate(title, noteTitleWidth, "...")))
	}
	if rest := len(all) - shown; rest > 0 {
		b.WriteString(fmt.Sprintf("   ... and %d more\n", rest))
	}

	return b.String()
}

// RenderFailure renders the error variant appended when a run fails before
// a report could be produced. It is deliberately distinct from a normal
// report so a reader scanning the note cannot mistake one for the other.
func RenderFailure(generatedAt time.Time, runErr error) string {
	var b strings.Builder
	b.WriteString("ANALYTICS ERROR\n")
	b.WriteString(fmt.Sprintf("Timestamp: %s\n", generatedAt.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Error: %v\n", runErr))
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n\n")
	return b.String()
}
