package render

import (
	"context"
	"time"

	"FinNewsScanner/internal/ports"
)

const defaultWaitBound = 10 * time.Second

// PlainRenderer is the degraded default for hosts without a headless browser:
// it fetches the page over plain HTTP with the wait bound enforced as a
// deadline. The wait selector is only meaningful to a real rendering
// implementation and is ignored here.
type PlainRenderer struct {
	fetcher   ports.Fetcher
	waitBound time.Duration
}

var _ ports.Renderer = (*PlainRenderer)(nil)

// NewPlainRenderer wraps the shared fetcher.
func NewPlainRenderer(fetcher ports.Fetcher, waitBound time.Duration) *PlainRenderer {
	if waitBound <= 0 {
		waitBound = defaultWaitBound
	}
	return &PlainRenderer{fetcher: fetcher, waitBound: waitBound}
}

// Render fetches the page within the wait bound.
func (r *PlainRenderer) Render(ctx context.Context, pageURL, waitSelector string) ([]byte, error) {
	_ = waitSelector
	rctx, cancel := context.WithTimeout(ctx, r.waitBound)
	defer cancel()
	return r.fetcher.Fetch(rctx, pageURL)
}
