package extract

import (
	"context"
	"log/slog"
	"net/url"

	"FinNewsScanner/internal/ports"
)

// Strategy turns one article URL into a Result or a structured failure.
type Strategy interface {
	Extract(ctx context.Context, pageURL string) (*Result, error)
}

// Chain runs the primary strategy and, only on failure, the fallback. The
// first success wins; when both fail the fallback's error is returned as the
// more specific diagnostic.
type Chain struct {
	primary  Strategy
	fallback Strategy
	logger   *slog.Logger
}

// NewChain builds the default readability-then-scrape chain over a fetcher.
func NewChain(fetcher ports.Fetcher, logger *slog.Logger) *Chain {
	return &Chain{
		primary:  NewReadabilityStrategy(fetcher),
		fallback: NewFallbackStrategy(fetcher),
		logger:   logger,
	}
}

// Extract validates the URL and walks the strategy chain. It never panics;
// every failure comes back as a *Error.
func (c *Chain) Extract(ctx context.Context, pageURL string) (*Result, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{Reason: ReasonInvalidURL, URL: pageURL, Err: err}
	}

	result, primaryErr := c.primary.Extract(ctx, pageURL)
	if primaryErr == nil {
		c.debug("primary extraction succeeded", "url", pageURL, "chars", result.ContentLength)
		return result, nil
	}
	c.debug("primary extraction failed, trying fallback", "url", pageURL, "error", primaryErr)

	result, fallbackErr := c.fallback.Extract(ctx, pageURL)
	if fallbackErr == nil {
		c.debug("fallback extraction succeeded", "url", pageURL, "chars", result.ContentLength)
		return result, nil
	}

	if c.logger != nil {
		reason := Reason("unknown")
		if e, ok := fallbackErr.(*Error); ok {
			reason = e.Reason
		}
		c.logger.Warn("extraction failed", "url", pageURL, "reason", string(reason))
	}
	return nil, fallbackErr
}

func (c *Chain) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
