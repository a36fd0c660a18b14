package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"clickdeck/pkg/metrics"
	"clickdeck/pkg/trace"
)

// UpstreamError is a non-2xx response from the ClickUp API. The body is
// kept for server-side logging and never echoed to clients.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("clickup returned %d", e.StatusCode)
}

// Client is a thin bearer-token client for the ClickUp v2 API. Every
// operation is exactly one round trip: no retries, no backoff.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if traceID := trace.FromContext(ctx); traceID != "" {
		req.Header.Set(trace.HeaderName(), traceID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		metrics.RecordClickUpCallLatency(op, "error", latency)
		return nil, fmt.Errorf("clickup %s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordClickUpCallLatency(op, "error", latency)
		return nil, fmt.Errorf("clickup %s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordClickUpCallLatency(op, strconv.Itoa(resp.StatusCode), latency)
		c.logger.Warn("clickup error response",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data),
		)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	metrics.RecordClickUpCallLatency(op, "success", latency)
	return json.RawMessage(data), nil
}

func (c *Client) GetTeams(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "get_teams", http.MethodGet, "/team", nil)
}

func (c *Client) GetTeam(ctx context.Context, teamID string) (json.RawMessage, error) {
	return c.do(ctx, "get_team", http.MethodGet, "/team/"+url.PathEscape(teamID), nil)
}

func (c *Client) GetTeamTasks(ctx context.Context, teamID string) (json.RawMessage, error) {
	return c.do(ctx, "get_team_tasks", http.MethodGet, "/team/"+url.PathEscape(teamID)+"/task", nil)
}

func (c *Client) GetSpaces(ctx context.Context, teamID string) (json.RawMessage, error) {
	return c.do(ctx, "get_spaces", http.MethodGet, "/team/"+url.PathEscape(teamID)+"/space", nil)
}

func (c *Client) CreateSpace(ctx context.Context, teamID, name string) (json.RawMessage, error) {
	payload := map[string]any{"name": name}
	return c.do(ctx, "create_space", http.MethodPost, "/team/"+url.PathEscape(teamID)+"/space", payload)
}

func (c *Client) UpdateSpace(ctx context.Context, spaceID, name string) (json.RawMessage, error) {
	payload := map[string]any{"name": name}
	return c.do(ctx, "update_space", http.MethodPut, "/space/"+url.PathEscape(spaceID), payload)
}

func (c *Client) DeleteSpace(ctx context.Context, spaceID string) error {
	_, err := c.do(ctx, "delete_space", http.MethodDelete, "/space/"+url.PathEscape(spaceID), nil)
	return err
}

func (c *Client) GetFolders(ctx context.Context, spaceID string) (json.RawMessage, error) {
	return c.do(ctx, "get_folders", http.MethodGet, "/space/"+url.PathEscape(spaceID)+"/folder", nil)
}

func (c *Client) CreateFolder(ctx context.Context, spaceID, name string) (json.RawMessage, error) {
	// hidden:false matches the dashboard contract: new folders are
	// always visible in the hierarchy.
	payload := map[string]any{"name": name, "hidden": false}
	return c.do(ctx, "create_folder", http.MethodPost, "/space/"+url.PathEscape(spaceID)+"/folder", payload)
}

func (c *Client) UpdateFolder(ctx context.Context, folderID, name string) (json.RawMessage, error) {
	payload := map[string]any{"name": name}
	return c.do(ctx, "update_folder", http.MethodPut, "/folder/"+url.PathEscape(folderID), payload)
}

func (c *Client) DeleteFolder(ctx context.Context, folderID string) error {
	_, err := c.do(ctx, "delete_folder", http.MethodDelete, "/folder/"+url.PathEscape(folderID), nil)
	return err
}

func (c *Client) GetLists(ctx context.Context, folderID string) (json.RawMessage, error) {
	return c.do(ctx, "get_lists", http.MethodGet, "/folder/"+url.PathEscape(folderID)+"/list", nil)
}

func (c *Client) CreateList(ctx context.Context, folderID, name string) (json.RawMessage, error) {
	payload := map[string]any{"name": name}
	return c.do(ctx, "create_list", http.MethodPost, "/folder/"+url.PathEscape(folderID)+"/list", payload)
}

func (c *Client) UpdateList(ctx context.Context, listID, name string) (json.RawMessage, error) {
	payload := map[string]any{"name": name}
	return c.do(ctx, "update_list", http.MethodPut, "/list/"+url.PathEscape(listID), payload)
}

func (c *Client) DeleteList(ctx context.Context, listID string) error {
	_, err := c.do(ctx, "delete_list", http.MethodDelete, "/list/"+url.PathEscape(listID), nil)
	return err
}

func (c *Client) GetTask(ctx context.Context, taskID string) (json.RawMessage, error) {
	return c.do(ctx, "get_task", http.MethodGet, "/task/"+url.PathEscape(taskID), nil)
}

func (c *Client) GetListTasks(ctx context.Context, listID string) (json.RawMessage, error) {
	return c.do(ctx, "get_list_tasks", http.MethodGet, "/list/"+url.PathEscape(listID)+"/task", nil)
}

func (c *Client) CreateTask(ctx context.Context, listID string, payload CreateTaskPayload) (json.RawMessage, error) {
	return c.do(ctx, "create_task", http.MethodPost, "/list/"+url.PathEscape(listID)+"/task", payload)
}

func (c *Client) UpdateTask(ctx context.Context, taskID string, payload UpdateTaskPayload) (json.RawMessage, error) {
	return c.do(ctx, "update_task", http.MethodPut, "/task/"+url.PathEscape(taskID), payload)
}

func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	_, err := c.do(ctx, "delete_task", http.MethodDelete, "/task/"+url.PathEscape(taskID), nil)
	return err
}
