// Package client talks to a running pouch server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nikbrunner/pouch/internal/api"
	"github.com/nikbrunner/pouch/internal/model"
)

var (
	ErrRequest = errors.New("request failed")
	ErrStatus  = errors.New("unexpected status")
)

// Client handles communication with the pouch HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Suggest returns ranked tag names for fragment, never including exclude.
func (c *Client) Suggest(ctx context.Context, fragment string, exclude []string) ([]string, error) {
	params := url.Values{}
	params.Set("q", fragment)
	for _, e := range exclude {
		params.Add("exclude", e)
	}

	var out []api.TagSuggestion
	if err := c.do(ctx, http.MethodGet, "/api/tags/autocomplete?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}

	names := make([]string, len(out))
	for i, s := range out {
		names[i] = s.Name
	}
	return names, nil
}

// Search runs a search for the free text and committed tags in req.
func (c *Client) Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error) {
	var out api.SearchResponse
	if err := c.do(ctx, http.MethodPost, "/api/bookmarks/search", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tags returns the full tag cloud.
func (c *Client) Tags(ctx context.Context) ([]model.TagCount, error) {
	var out []model.TagCount
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health reports whether the server answers.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr api.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
