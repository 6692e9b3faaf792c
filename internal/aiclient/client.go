package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client proxies to the generative-AI service. Requests carry a task name and
// an opaque payload; responses are either a JSON array of objects or
// {"error": "..."}.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

const (
	TaskPlanner = "planner"
	TaskNews    = "news"
)

type request struct {
	Task    string          `json:"task"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Run executes one task and returns the raw suggestion/news objects.
func (c *Client) Run(ctx context.Context, task string, payload json.RawMessage) ([]json.RawMessage, error) {
	if task != TaskPlanner && task != TaskNews {
		return nil, fmt.Errorf("unknown task %q", task)
	}

	body, err := json.Marshal(request{Task: task, Payload: payload})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai service request: %w", err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode ai service response: %w", err)
	}

	// Either an array of items or an {"error": ...} object.
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}
	var failure struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &failure); err == nil && failure.Error != "" {
		return nil, fmt.Errorf("ai service error: %s", failure.Error)
	}
	return nil, fmt.Errorf("unexpected ai service response")
}
