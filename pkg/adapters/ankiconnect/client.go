// Package ankiconnect implements the Collection port against a running Anki
// instance through the AnkiConnect add-on HTTP API.
package ankiconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultURL is where AnkiConnect listens out of the box.
	DefaultURL = "http://127.0.0.1:8765"

	// apiVersion is the AnkiConnect protocol version this client speaks.
	apiVersion = 6

	// DefaultTimeout bounds a single API call. findNotes over a large
	// collection can take a while, hence the generous default.
	DefaultTimeout = 30 * time.Second
)

// Client is a minimal AnkiConnect API client.
// Every call is a POST of an action envelope to the base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the AnkiConnect endpoint at baseURL.
// An empty baseURL falls back to DefaultURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}
}

// WithTimeout sets a custom timeout for API calls.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// request is the AnkiConnect action envelope.
type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

// response is the AnkiConnect result envelope. Error is null on success.
type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke posts an action and decodes the result into out (if non-nil).
func (c *Client) invoke(ctx context.Context, action string, params, out any) error {
	body, err := json.Marshal(request{Action: action, Version: apiVersion, Params: params})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("ankiconnect invoke", "action", action)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ankiconnect %s failed: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ankiconnect %s returned status %d: %s", action, resp.StatusCode, data)
	}

	var env response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", action, err)
	}
	if env.Error != nil {
		return fmt.Errorf("ankiconnect %s: %s", action, *env.Error)
	}
	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", action, err)
		}
	}
	return nil
}

// Version returns the protocol version reported by AnkiConnect.
// Useful as a connectivity check before a pass.
func (c *Client) Version(ctx context.Context) (int, error) {
	var v int
	if err := c.invoke(ctx, "version", nil, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// FindNotes resolves a search query into note ids. An empty query matches
// the whole collection (the host treats "" as "deck:*").
func (c *Client) FindNotes(ctx context.Context, query string) ([]int64, error) {
	params := map[string]string{"query": query}
	var ids []int64
	if err := c.invoke(ctx, "findNotes", params, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// FieldValue is a single field of a note as reported by notesInfo.
type FieldValue struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// NoteInfo is the notesInfo record for one note.
type NoteInfo struct {
	NoteID    int64                 `json:"noteId"`
	ModelName string                `json:"modelName"`
	Tags      []string              `json:"tags"`
	Fields    map[string]FieldValue `json:"fields"`
}

// NotesInfo fetches full note records for the given ids.
func (c *Client) NotesInfo(ctx context.Context, ids []int64) ([]NoteInfo, error) {
	params := map[string]any{"notes": ids}
	var infos []NoteInfo
	if err := c.invoke(ctx, "notesInfo", params, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// AddTags appends a space-separated tag string to every listed note.
// The host deduplicates, so re-tagging is harmless.
func (c *Client) AddTags(ctx context.Context, ids []int64, tags string) error {
	params := map[string]any{"notes": ids, "tags": tags}
	return c.invoke(ctx, "addTags", params, nil)
}

// RemoveTags removes a space-separated tag string from every listed note.
func (c *Client) RemoveTags(ctx context.Context, ids []int64, tags string) error {
	params := map[string]any{"notes": ids, "tags": tags}
	return c.invoke(ctx, "removeTags", params, nil)
}

// Sync triggers the host's own synchronization with AnkiWeb.
func (c *Client) Sync(ctx context.Context) error {
	return c.invoke(ctx, "sync", nil, nil)
}
