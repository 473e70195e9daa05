package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/brokerops/pulse/internal/analytics"
	"github.com/brokerops/pulse/internal/relevance"
)

// relevanceAPI is just an interface over [*relevance.Client]
type relevanceAPI interface {
	// ListAgentTasks maps to [relevance.Client.ListAgentTasks]
	ListAgentTasks(ctx context.Context, agentID string) ([]relevance.Task, error)

	// ListConversationItems maps to [relevance.Client.ListConversationItems]
	ListConversationItems(ctx context.Context, knowledgeSet string) ([]relevance.ConversationItem, error)
}

// RelevanceSource turns raw API tasks into task records: it filters to the
// reporting window, normalizes task states, and collects the action titles
// out of each task's conversation.
type RelevanceSource struct {
	api relevanceAPI
}

func NewRelevanceSource(client *relevance.Client) *RelevanceSource {
	return &RelevanceSource{api: client}
}

func (s *RelevanceSource) FetchRecords(ctx context.Context, agentID string, since time.Time) ([]analytics.TaskRecord, error) {
	tasks, err := s.api.ListAgentTasks(ctx, agentID)
	if err != nil {
		return nil, err
	}

	var records []analytics.TaskRecord
	for _, task := range tasks {
		created, ok := parseInsertDate(task.Metadata.InsertDate)
		if !ok {
			slog.Debug("Skipping task with unparsable insert_date", "agent_id", agentID, "insert_date", task.Metadata.InsertDate)
			continue
		}
		if created.Before(since) {
			continue
		}

		rec := analytics.TaskRecord{
			ID:        task.KnowledgeSet,
			Title:     task.Metadata.Conversation.Title,
			RawState:  task.Metadata.Conversation.State,
			CreatedAt: created,
		}
		if rec.RawState == "" {
			rec.RawState = "unknown"
		}
		rec.Status = analytics.NormalizeStatus(rec.RawState, task.Metadata.Conversation.HasErrored)

		if task.KnowledgeSet != "" {
			items, err := s.api.ListConversationItems(ctx, task.KnowledgeSet)
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				if title := item.ChainTitle(); title != "" {
					rec.Actions = append(rec.Actions, title)
				}
			}
		}

		records = append(records, rec)
	}

	slog.Debug("Fetched task records", "agent_id", agentID, "total", len(tasks), "in_window", len(records))
	return records, nil
}

// parseInsertDate handles the timestamp shapes the API has been seen to
// produce: RFC 3339 with or without fractional seconds, and a bare
// timestamp without a zone (treated as UTC).
func parseInsertDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
