// Package relevance is a minimal client for the Relevance AI REST API,
// covering the two endpoints the reporting pipeline needs: listing an
// agent's tasks and listing the conversation entries behind a task. Both
// endpoints paginate with cursors; the client follows the cursor chain so
// callers always see the full result set.
package relevance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultPageSize = 200
	defaultTimeout  = 30 * time.Second

	// errorBodyLimit caps how much of an error response gets copied into
	// the returned error.
	errorBodyLimit = 512
)

// Options configure a Client. Region, Project and APIKey are required
// unless BaseURL is set, in which case Region is unused.
type Options struct {
	Region   string
	Project  string
	APIKey   string
	PageSize int
	Timeout  time.Duration

	// BaseURL overrides the regional endpoint. Mainly for tests.
	BaseURL string
}

type Client struct {
	baseURL  string
	auth     string
	pageSize int
	http     *http.Client
}

func New(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://api-%s.stack.tryrelevance.com/latest", opts.Region)
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		auth:     opts.Project + ":" + opts.APIKey,
		pageSize: pageSize,
		http:     &http.Client{Timeout: timeout},
	}
}

// listResponse is the common envelope of both list endpoints.
type listResponse struct {
	Results    []map[string]any `json:"results"`
	NextCursor string           `json:"next_cursor"`
}

// ListAgentTasks returns every task of the agent, following cursor
// pagination until the API reports no further pages.
func (c *Client) ListAgentTasks(ctx context.Context, agentID string) ([]Task, error) {
	op := fmt.Sprintf("list tasks for agent %s", agentID)
	path := fmt.Sprintf("/agents/%s/tasks/list", url.PathEscape(agentID))

	var tasks []Task
	cursor := ""
	for page := 1; ; page++ {
		resp, err := c.listPage(ctx, op, path, map[string]any{"page_size": c.pageSize}, cursor)
		if err != nil {
			return nil, err
		}

		for _, raw := range resp.Results {
			task, err := decodeTask(raw)
			if err != nil {
				return nil, fmt.Errorf("relevance: %s: decoding task: %w", op, err)
			}
			tasks = append(tasks, task)
		}

		slog.Debug("Fetched task page", "agent_id", agentID, "page", page, "results", len(resp.Results))

		if resp.NextCursor == "" || len(resp.Results) == 0 {
			break
		}
		cursor = resp.NextCursor
	}

	return tasks, nil
}

// ProbeAgent fetches a single one-task page of the agent's task list to
// confirm the agent is reachable with the configured credentials. It never
// paginates.
func (c *Client) ProbeAgent(ctx context.Context, agentID string) error {
	op := fmt.Sprintf("probe agent %s", agentID)
	path := fmt.Sprintf("/agents/%s/tasks/list", url.PathEscape(agentID))

	_, err := c.listPage(ctx, op, path, map[string]any{"page_size": 1}, "")
	return err
}

// ListConversationItems returns the conversation entries stored under a
// task's knowledge set. Entries arrive wrapped in a data envelope; the
// envelope is unwrapped here so callers get the entry payloads directly.
func (c *Client) ListConversationItems(ctx context.Context, knowledgeSet string) ([]ConversationItem, error) {
	op := fmt.Sprintf("list conversation %s", knowledgeSet)

	var items []ConversationItem
	cursor := ""
	for {
		resp, err := c.listPage(ctx, op, "/knowledge/list", map[string]any{
			"knowledge_set": knowledgeSet,
			"page_size":     c.pageSize,
		}, cursor)
		if err != nil {
			return nil, err
		}

		for _, raw := range resp.Results {
			if data, ok := raw["data"].(map[string]any); ok {
				items = append(items, ConversationItem(data))
			}
		}

		if resp.NextCursor == "" || len(resp.Results) == 0 {
			break
		}
		cursor = resp.NextCursor
	}

	return items, nil
}

func (c *Client) listPage(ctx context.Context, op, path string, body map[string]any, cursor string) (*listResponse, error) {
	if cursor != "" {
		body["cursor"] = cursor
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("relevance: %s: encoding request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("relevance: %s: building request: %w", op, err)
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{Op: op, Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &APIError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("relevance: %s: decoding response: %w", op, err)
	}

	return &page, nil
}
