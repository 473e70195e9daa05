// Package analytics turns raw agent task records into per-agent summaries:
// canonical status buckets, raw state breakdowns, action counts, and error
// details. Everything in this package is pure computation over values the
// client layer already normalized.
package analytics

import (
	"strings"
	"time"
)

// Agent role names. The reporting pipeline tracks exactly these two agents.
const (
	AgentLouise = "Louise"
	AgentRoger  = "Roger"
)

// Status is the canonical outcome bucket for a task.
type Status string

const (
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusInProgress Status = "in_progress"
	// StatusOther is used for states the normalizer does not recognize.
	// Records are counted, never dropped.
	StatusOther Status = "other"
)

// Conversation states reported by the upstream API.
const (
	StateIdle       = "State.idle"
	StateRunning    = "State.running"
	StateStartingUp = "State.starting_up"
	StateCompleted  = "State.completed"
)

// TaskRecord is one agent task inside the reporting window, normalized at
// the client boundary. Records are read-only once built.
type TaskRecord struct {
	ID        string
	Title     string
	Status    Status
	RawState  string
	CreatedAt time.Time
	// Actions holds the chain-config titles observed in the task's
	// conversation, one entry per occurrence.
	Actions []string
}

// NormalizeStatus maps an upstream conversation state plus the has_errored
// flag onto a canonical [Status]. hasErrored is a pointer because the
// upstream field is optional; nil means the API did not report it.
//
// The error check runs first: an explicit has_errored or any state
// containing "errored" (e.g. "State.errored_pending_approval") is a
// failure regardless of the rest of the state string.
func NormalizeStatus(rawState string, hasErrored *bool) Status {
	if (hasErrored != nil && *hasErrored) || strings.Contains(strings.ToLower(rawState), "errored") {
		return StatusFailed
	}

	switch rawState {
	case StateIdle, StateRunning, StateStartingUp:
		return StatusInProgress
	case StateCompleted:
		return StatusSucceeded
	}

	// Unknown state, but the API explicitly said it did not error.
	if hasErrored != nil && !*hasErrored {
		return StatusSucceeded
	}
	return StatusOther
}

// TaskError describes one failed task, kept for the report's error details.
type TaskError struct {
	ID        string
	Title     string
	RawState  string
	CreatedAt time.Time
}

// AgentSummary aggregates one agent's tasks over the reporting window.
type AgentSummary struct {
	Agent      string
	Total      int
	Succeeded  int
	Failed     int
	InProgress int
	Other      int

	// StateBreakdown counts tasks per raw upstream state. Values always
	// sum to Total.
	StateBreakdown map[string]int

	EmailsSent int
	CallsMade  int
	// EmailTasks and CallTasks count tasks that contributed at least one
	// action of the respective kind.
	EmailTasks int
	CallTasks  int

	// Errors holds details for failed tasks, newest first.
	Errors []TaskError
}

// SuccessRate returns Succeeded/Total in [0, 1]. Exactly 0.0 when the
// summary holds no tasks.
func (s *AgentSummary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Succeeded) / float64(s.Total)
}

// ErrorRate returns Failed/Total in [0, 1], 0.0 when empty.
func (s *AgentSummary) ErrorRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Failed) / float64(s.Total)
}

// Running returns the number of tasks currently in the running state.
// In-progress covers idle and starting up as well; this is the narrower
// count used by the report's "currently running" line.
func (s *AgentSummary) Running() int {
	return s.StateBreakdown[StateRunning]
}

// Idle returns the number of tasks currently idle.
func (s *AgentSummary) Idle() int {
	return s.StateBreakdown[StateIdle]
}
