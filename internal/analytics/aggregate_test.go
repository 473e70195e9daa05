package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(AgentLouise, nil, DefaultMarkers())

	assert.Equal(t, AgentLouise, s.Agent)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.SuccessRate())
	assert.Equal(t, 0, s.EmailsSent)
	assert.Equal(t, 0, s.CallsMade)
	assert.Empty(t, s.Errors)
	assert.Empty(t, s.StateBreakdown)
}

func TestAggregateBucketsReconcile(t *testing.T) {
	now := time.Now().UTC()

	records := []TaskRecord{
		{ID: "t1", Status: StatusSucceeded, RawState: StateCompleted, CreatedAt: now},
		{ID: "t2", Status: StatusSucceeded, RawState: StateCompleted, CreatedAt: now},
		{ID: "t3", Status: StatusFailed, RawState: "State.errored_pending_approval", CreatedAt: now},
		{ID: "t4", Status: StatusInProgress, RawState: StateRunning, CreatedAt: now},
		{ID: "t5", Status: StatusInProgress, RawState: StateIdle, CreatedAt: now},
		{ID: "t6", Status: StatusOther, RawState: "State.weird", CreatedAt: now},
	}

	s := Aggregate(AgentRoger, records, DefaultMarkers())

	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Succeeded)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 2, s.InProgress)
	assert.Equal(t, 1, s.Other)

	// Canonical buckets and the raw breakdown both account for every record.
	assert.Equal(t, s.Total, s.Succeeded+s.Failed+s.InProgress+s.Other)
	breakdownTotal := 0
	for _, n := range s.StateBreakdown {
		breakdownTotal += n
	}
	assert.Equal(t, s.Total, breakdownTotal)
}

func TestAggregateUnknownStatusCounted(t *testing.T) {
	records := []TaskRecord{
		{ID: "t1", Status: StatusOther, RawState: "State.mystery"},
	}

	s := Aggregate(AgentLouise, records, DefaultMarkers())

	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 1, s.Other)
	assert.Equal(t, 1, s.StateBreakdown["State.mystery"])
}

func TestAggregateActionCounts(t *testing.T) {
	records := []TaskRecord{
		{ID: "t1", Status: StatusSucceeded, RawState: StateCompleted,
			Actions: []string{DefaultEmailMarker, DefaultEmailMarker, "Search the web"}},
		{ID: "t2", Status: StatusSucceeded, RawState: StateCompleted,
			Actions: []string{DefaultCallMarker}},
		{ID: "t3", Status: StatusSucceeded, RawState: StateCompleted},
	}

	s := Aggregate(AgentRoger, records, DefaultMarkers())

	assert.Equal(t, 2, s.EmailsSent)
	assert.Equal(t, 1, s.CallsMade)
	assert.Equal(t, 1, s.EmailTasks)
	assert.Equal(t, 1, s.CallTasks)
}

func TestAggregateErrorsNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	var records []TaskRecord
	for i := 0; i < 3; i++ {
		records = append(records, TaskRecord{
			ID:        fmt.Sprintf("t%d", i),
			Title:     fmt.Sprintf("task %d", i),
			Status:    StatusFailed,
			RawState:  "State.errored_pending_approval",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	s := Aggregate(AgentLouise, records, DefaultMarkers())

	require.Len(t, s.Errors, 3)
	assert.Equal(t, "t2", s.Errors[0].ID)
	assert.Equal(t, "t1", s.Errors[1].ID)
	assert.Equal(t, "t0", s.Errors[2].ID)
}
