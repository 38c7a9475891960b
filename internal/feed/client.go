// internal/feed/client.go
package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sstent/fittracker/internal/training"
)

// Client pulls sensor packages from a remote sensor gateway.
type Client struct {
	http *resty.Client
}

// NewClient creates a gateway client for baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// FetchPackages retrieves the packages recorded after since. A zero since
// asks for everything the gateway still holds.
func (c *Client) FetchPackages(ctx context.Context, since time.Time) ([]training.Package, error) {
	var packages []training.Package

	req := c.http.R().
		SetContext(ctx).
		SetResult(&packages)
	if !since.IsZero() {
		req.SetQueryParam("since", since.UTC().Format(time.RFC3339))
	}

	resp, err := req.Get("/packages")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch packages: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return packages, nil
}
