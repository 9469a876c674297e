package parser

import (
	"context"
	"log/slog"
	"time"

	"FinNewsScanner/internal/domain"
	"FinNewsScanner/internal/ports"
	"FinNewsScanner/internal/scanner"
)

// RenderedScanner walks listing pages through the rendering collaborator for
// sources that require JavaScript execution before their items exist.
type RenderedScanner struct {
	renderer ports.Renderer
	logger   *slog.Logger
	now      func() time.Time
}

var _ scanner.Strategy = (*RenderedScanner)(nil)

// NewRenderedScanner wires the page renderer.
func NewRenderedScanner(renderer ports.Renderer, logger *slog.Logger) *RenderedScanner {
	return &RenderedScanner{renderer: renderer, logger: logger, now: time.Now}
}

// Name identifies the strategy inside the registry.
func (s *RenderedScanner) Name() string {
	return scanner.StrategyRendered
}

// Scan loads each listing URL, waits for readiness and extracts up to the
// first Limit items via the configured selectors.
func (s *RenderedScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.RawArticle, error) {
	var collected []domain.RawArticle

	for _, listingURL := range req.Source.ListingURLs {
		if ctx.Err() != nil {
			return collected, ctx.Err()
		}

		body, err := s.renderer.Render(ctx, listingURL, req.Source.WaitSelector)
		if err != nil {
			s.logger.Warn("render failed", "source", req.Source.ID, "url", listingURL, "error", err)
			continue
		}

		articles, skipped, err := scrapeItems(body, req.Source, req.Limit, s.now())
		if err != nil {
			s.logger.Warn("rendered page parse failed", "source", req.Source.ID, "url", listingURL, "error", err)
			continue
		}
		if skipped > 0 {
			s.logger.Info("skipped malformed rendered items", "source", req.Source.ID, "url", listingURL, "skipped", skipped)
		}

		collected = append(collected, articles...)
	}

	return collected, nil
}
