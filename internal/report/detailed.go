package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brokerops/pulse/internal/analytics"
)

const detailedBannerWidth = 60

// RenderDetailed renders the full console analysis: a banner per agent with
// totals, rates, the raw state breakdown, and recent error details, followed
// by a combined summary block. Meant for operators running manually, not for
// the note.
func RenderDetailed(r *Report) string {
	var b strings.Builder

	for i := range r.Summaries {
		writeAgentAnalysis(&b, &r.Summaries[i], r.WindowHours)
	}
	writeSummaryBlock(&b, r)

	return b.String()
}

func writeAgentAnalysis(b *strings.Builder, s *analytics.AgentSummary, windowHours int) {
	banner := strings.Repeat("=", detailedBannerWidth)
	b.WriteString(banner + "\n")
	b.WriteString(fmt.Sprintf("%s TASK SUCCESS AND ERROR ANALYSIS - LAST %d HOURS\n",
		strings.ToUpper(s.Agent), windowHours))
	b.WriteString(banner + "\n")

	b.WriteString(fmt.Sprintf("Total tasks in last %d hours: %d\n", windowHours, s.Total))
	b.WriteString(fmt.Sprintf("Successful tasks: %d\n", s.Succeeded))
	b.WriteString(fmt.Sprintf("Errored tasks: %d\n", s.Failed))
	b.WriteString(fmt.Sprintf("In-progress tasks: %d\n", s.InProgress))
	b.WriteString(fmt.Sprintf("Unknown status tasks: %d\n", s.Other))

	if s.Total > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Success rate: %.1f%%\n", s.SuccessRate()*100))
		b.WriteString(fmt.Sprintf("Error rate: %.1f%%\n", s.ErrorRate()*100))
	}

	if len(s.StateBreakdown) > 0 {
		b.WriteString("\nTask states breakdown:\n")
		writeStateBreakdown(b, s)
	}

	if s.Failed > 0 {
		b.WriteString("\nError details:\n")
		writeErrorDetails(b, s.Errors)
	}

	b.WriteString("\n")
}

// writeStateBreakdown lists raw states with counts and percentages, most
// frequent first, ties broken by name for stable output.
func writeStateBreakdown(b *strings.Builder, s *analytics.AgentSummary) {
	states := make([]string, 0, len(s.StateBreakdown))
	stateWidth := 0
	for state := range s.StateBreakdown {
		states = append(states, state)
		if w := len(state); w > stateWidth {
			stateWidth = w
		}
	}
	sort.Slice(states, func(i, j int) bool {
		ci, cj := s.StateBreakdown[states[i]], s.StateBreakdown[states[j]]
		if ci != cj {
			return ci > cj
		}
		return states[i] < states[j]
	})

	for _, state := range states {
		count := s.StateBreakdown[state]
		pct := 0.0
		if s.Total > 0 {
			pct = float64(count) / float64(s.Total) * 100
		}
		b.WriteString(fmt.Sprintf("  %s  %3d  (%5.1f%%)\n", padRight(state, stateWidth), count, pct))
	}
}

const detailedErrorLimit = 5

func writeErrorDetails(b *strings.Builder, errors []analytics.TaskError) {
	shown := len(errors)
	if shown > detailedErrorLimit {
		shown = detailedErrorLimit
	}
	for i := 0; i < shown; i++ {
		e := errors[i]
		title := e.Title
		if title == "" {
			title = "No title"
		}
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, title))
		b.WriteString(fmt.Sprintf("     State: %s\n", e.RawState))
		b.WriteString(fmt.Sprintf("     Date: %s\n", e.CreatedAt.UTC().Format(time.RFC3339)))
	}
	if rest := len(errors) - shown; rest > 0 {
		b.WriteString(fmt.Sprintf("  ... and %d more errors\n", rest))
	}
}

func writeSummaryBlock(b *strings.Builder, r *Report) {
	banner := strings.Repeat("=", detailedBannerWidth)
	b.WriteString(banner + "\n")
	b.WriteString(fmt.Sprintf("SUMMARY - LAST %d HOURS\n", r.WindowHours))
	b.WriteString(banner + "\n")

	for i := range r.Summaries {
		s := &r.Summaries[i]
		b.WriteString(fmt.Sprintf("📊 %s processed: %d\n", s.Agent, s.Succeeded))
		b.WriteString(fmt.Sprintf("❌ %s errors: %d\n", s.Agent, s.Failed))
	}
	b.WriteString(fmt.Sprintf("📧 Emails sent: %d\n", r.TotalEmails()))
	b.WriteString(fmt.Sprintf("📞 Calls made: %d\n", r.TotalCalls()))
	for i := range r.Summaries {
		s := &r.Summaries[i]
		if s.Total > 0 {
			b.WriteString(fmt.Sprintf("📈 %s success rate: %.1f%%\n", s.Agent, s.SuccessRate()*100))
		}
	}

	b.WriteString("\n")
	for i := range r.Summaries {
		s := &r.Summaries[i]
		b.WriteString(fmt.Sprintf("⏳ %s tasks currently idle: %d\n", s.Agent, s.Idle()))
		b.WriteString(fmt.Sprintf("🏃 %s tasks currently running: %d\n", s.Agent, s.Running()))
	}

	b.WriteString("\n📈 Email efficiency:\n")
	emailTasks := 0
	for i := range r.Summaries {
		emailTasks += r.Summaries[i].EmailTasks
	}
	if emailTasks > 0 {
		avg := float64(r.TotalEmails()) / float64(emailTasks)
		b.WriteString(fmt.Sprintf("   Tasks with emails: %d\n", emailTasks))
		b.WriteString(fmt.Sprintf("   Average emails per task: %.1f\n", avg))
	} else {
		b.WriteString(fmt.Sprintf("   No email actions in the last %d hours\n", r.WindowHours))
	}
}
