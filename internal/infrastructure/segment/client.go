package segment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"FinNewsScanner/internal/ports"
)

// Client talks to an external Vietnamese word-segmentation service: plain
// text in, space-separated tokens out with multi-syllable words joined by an
// underscore.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.Segmenter = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Segment posts the cleaned text and returns the segmented form.
func (c *Client) Segment(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var parsed struct {
		SegmentedText string `json:"segmented_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return parsed.SegmentedText, nil
}

// Passthrough satisfies the segmentation contract without splitting
// multi-syllable words; used when no service is configured and in tests.
type Passthrough struct{}

var _ ports.Segmenter = Passthrough{}

// Segment returns the input unchanged.
func (Passthrough) Segment(_ context.Context, text string) (string, error) {
	return text, nil
}
