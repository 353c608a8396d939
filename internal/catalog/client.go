package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jask/artgallery/internal/gallery"
)

// Client fetches the artwork list from the gallery API.
type Client struct {
	Endpoint   string
	httpClient *http.Client
}

// NewClient creates a new catalog client
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		Endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads and decodes the full artwork list. There is no paging; the
// endpoint returns a single JSON array.
func (c *Client) Fetch(ctx context.Context) ([]gallery.Artwork, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog API returned status %d: %s", resp.StatusCode, string(body))
	}

	var records []gallery.Artwork
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return records, nil
}
