package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"status-dashboard/internal/status"
)

// ErrUnexpectedStatus is returned when /api/status answers with a non-2xx code.
var ErrUnexpectedStatus = errors.New("backend: unexpected status code")

// ActionResponse is the body of the restart and system-reset endpoints.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Client talks to the dashboard backend.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for baseURL (scheme://host[:port][/prefix]).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type requestIDKey struct{}

// WithRequestID tags ctx so that requests made with it carry X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// FetchStatus performs GET /api/status.
func (c *Client) FetchStatus(ctx context.Context) (status.Payload, error) {
	resp, err := c.get(ctx, "/api/status")
	if err != nil {
		return status.Payload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return status.Payload{}, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return status.Decode(resp.Body)
}

// Restart performs GET /api/restart/{service}.
func (c *Client) Restart(ctx context.Context, service string) (ActionResponse, error) {
	return c.action(ctx, "/api/restart/"+url.PathEscape(service))
}

// SystemReset performs GET /api/system-reset.
func (c *Client) SystemReset(ctx context.Context) (ActionResponse, error) {
	return c.action(ctx, "/api/system-reset")
}

// action decodes the body whatever the status code; the backend reports
// refusals as {"success": false} with a 4xx/5xx.
func (c *Client) action(ctx context.Context, path string) (ActionResponse, error) {
	resp, err := c.get(ctx, path)
	if err != nil {
		return ActionResponse{}, err
	}
	defer resp.Body.Close()

	var out ActionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ActionResponse{}, fmt.Errorf("backend: decode %s: %w", path, err)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("backend: build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: GET %s: %w", path, err)
	}
	return resp, nil
}
