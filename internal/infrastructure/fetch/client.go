package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"FinNewsScanner/internal/ports"
)

const defaultTimeout = 10 * time.Second

// maxBodySize caps how much of a page is read into memory.
const maxBodySize = 4 << 20

// Client fetches raw HTML with a bounded timeout and a fixed identifying
// user-agent header.
type Client struct {
	http      *http.Client
	userAgent string
}

var _ ports.Fetcher = (*Client)(nil)

// NewClient builds the shared page fetcher.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch performs a GET and returns the body; any non-200 status is an error.
func (c *Client) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
