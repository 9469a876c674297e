package parser

import (
	"context"
	"log/slog"
	"time"

	"FinNewsScanner/internal/domain"
	"FinNewsScanner/internal/ports"
	"FinNewsScanner/internal/scanner"
)

// ListingScanner scrapes static listing pages with the configured selectors.
// It is the raw fallback for sources whose structured crawl yields nothing.
type ListingScanner struct {
	fetcher ports.Fetcher
	logger  *slog.Logger
	now     func() time.Time
}

var _ scanner.Strategy = (*ListingScanner)(nil)

// NewListingScanner wires the shared page fetcher.
func NewListingScanner(fetcher ports.Fetcher, logger *slog.Logger) *ListingScanner {
	return &ListingScanner{fetcher: fetcher, logger: logger, now: time.Now}
}

// Name identifies the strategy inside the registry.
func (s *ListingScanner) Name() string {
	return scanner.StrategyListing
}

// Scan walks each listing URL in order; a failed page fetch skips that page
// only, and malformed items are counted and logged rather than aborting.
func (s *ListingScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.RawArticle, error) {
	var collected []domain.RawArticle

	for _, listingURL := range req.Source.ListingURLs {
		if ctx.Err() != nil {
			return collected, ctx.Err()
		}

		body, err := s.fetcher.Fetch(ctx, listingURL)
		if err != nil {
			s.logger.Warn("listing fetch failed", "source", req.Source.ID, "url", listingURL, "error", err)
			continue
		}

		articles, skipped, err := scrapeItems(body, req.Source, req.Limit, s.now())
		if err != nil {
			s.logger.Warn("listing parse failed", "source", req.Source.ID, "url", listingURL, "error", err)
			continue
		}
		if skipped > 0 {
			s.logger.Info("skipped malformed listing items", "source", req.Source.ID, "url", listingURL, "skipped", skipped)
		}

		collected = append(collected, articles...)
	}

	return collected, nil
}
