package analytics

import "sort"

// Aggregate folds one agent's records into an [AgentSummary] in a single
// pass. Aggregation never fails: unrecognized statuses land in the Other
// bucket and missing actions simply do not count.
func Aggregate(agent string, records []TaskRecord, markers MarkerSet) AgentSummary {
	s := AgentSummary{
		Agent:          agent,
		StateBreakdown: make(map[string]int),
	}

	for _, rec := range records {
		s.Total++
		s.StateBreakdown[rec.RawState]++

		switch rec.Status {
		case StatusSucceeded:
			s.Succeeded++
		case StatusFailed:
			s.Failed++
			s.Errors = append(s.Errors, TaskError{
				ID:        rec.ID,
				Title:     rec.Title,
				RawState:  rec.RawState,
				CreatedAt: rec.CreatedAt,
			})
		case StatusInProgress:
			s.InProgress++
		default:
			s.Other++
		}

		emails, calls := markers.Count(rec.Actions)
		s.EmailsSent += emails
		s.CallsMade += calls
		if emails > 0 {
			s.EmailTasks++
		}
		if calls > 0 {
			s.CallTasks++
		}
	}

	// Newest errors first so report truncation keeps the most recent ones.
	sort.SliceStable(s.Errors, func(i, j int) bool {
		return s.Errors[i].CreatedAt.After(s.Errors[j].CreatedAt)
	})

	return s
}
