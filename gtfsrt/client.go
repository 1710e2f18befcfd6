package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a simple HTTP client for fetching GTFS-RT protobuf data.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client whose requests time out after timeout; zero means
// no timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch fetches a single GTFS-RT feed from a URL and returns raw protobuf bytes.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/x-protobuf")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// FetchVehicles fetches and decodes a VehiclePositions feed.
func (c *Client) FetchVehicles(ctx context.Context, url string) (*Wrapper, error) {
	data, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	w := NewWrapper()
	if err := w.Load(data); err != nil {
		return nil, fmt.Errorf("vehicle positions: %w", err)
	}
	return w, nil
}
