// Package api fetches the ticket snapshot from the remote data source.
// The source is a single read-only JSON endpoint returning every ticket and user.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/h0rv/kanban/internal/domain"
)

// DefaultEndpoint is the data source used when none is configured.
const DefaultEndpoint = "https://api.quicksell.co/v1/internal/frontend-assignment"

// maxErrorBody caps how much of a failed response body is quoted in errors.
const maxErrorBody = 512

// ErrUnexpectedStatus indicates the data source answered with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status")

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Source is anything that can produce a ticket snapshot.
type Source interface {
	Fetch(ctx context.Context) (domain.Snapshot, error)
}

// Client reads the snapshot from an HTTP endpoint.
type Client struct {
	endpoint   string
	httpClient HTTPClient
}

// New creates a data source client for endpoint.
// A nil httpClient uses http.DefaultClient.
func New(endpoint string, httpClient HTTPClient) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Endpoint returns the URL the client reads from.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch retrieves all tickets and users in a single request.
// Missing arrays in the payload decode as empty slices.
func (c *Client) Fetch(ctx context.Context) (domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to fetch tickets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.Snapshot{}, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var snapshot domain.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to decode tickets: %w", err)
	}

	if snapshot.Tickets == nil {
		snapshot.Tickets = []domain.Ticket{}
	}
	if snapshot.Users == nil {
		snapshot.Users = []domain.User{}
	}

	return snapshot, nil
}
