package parser

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"FinNewsScanner/internal/domain"
	"FinNewsScanner/internal/extract"
	"FinNewsScanner/internal/ports"
	"FinNewsScanner/internal/scanner"
)

// ArticleExtractor is the per-URL extraction chain the structured crawl runs
// on every discovered article.
type ArticleExtractor interface {
	Extract(ctx context.Context, pageURL string) (*extract.Result, error)
}

// StructuredScanner discovers article URLs for a source (RSS feeds when
// configured, otherwise anchors on the listing pages) and extracts each one
// through the chain. Per-URL failures are counted and skipped.
type StructuredScanner struct {
	extractor ArticleExtractor
	fetcher   ports.Fetcher
	feeds     *gofeed.Parser
	logger    *slog.Logger
	now       func() time.Time
}

var _ scanner.Strategy = (*StructuredScanner)(nil)

// NewStructuredScanner wires the extraction chain and discovery fetcher.
func NewStructuredScanner(extractor ArticleExtractor, fetcher ports.Fetcher, logger *slog.Logger) *StructuredScanner {
	return &StructuredScanner{
		extractor: extractor,
		fetcher:   fetcher,
		feeds:     gofeed.NewParser(),
		logger:    logger,
		now:       time.Now,
	}
}

// Name identifies the strategy inside the registry.
func (s *StructuredScanner) Name() string {
	return scanner.StrategyStructured
}

// Scan extracts up to Limit discovered article URLs sequentially, preserving
// discovery order.
func (s *StructuredScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.RawArticle, error) {
	urls := s.discover(ctx, req.Source, req.Limit)

	var (
		collected []domain.RawArticle
		failed    int
	)
	for _, articleURL := range urls {
		if ctx.Err() != nil {
			return collected, ctx.Err()
		}

		result, err := s.extractor.Extract(ctx, articleURL)
		if err != nil {
			failed++
			var extractErr *extract.Error
			if errors.As(err, &extractErr) {
				s.logger.Debug("article extraction failed",
					"source", req.Source.ID, "url", articleURL,
					"reason", string(extractErr.Reason), "chars", extractErr.ContentLength)
			} else {
				s.logger.Debug("article extraction failed", "source", req.Source.ID, "url", articleURL, "error", err)
			}
			continue
		}
		if result.Title == "" {
			failed++
			continue
		}

		collected = append(collected, domain.RawArticle{
			Source:    req.Source.Name,
			Title:     result.Title,
			Summary:   result.Summary(),
			Link:      articleURL,
			CrawlTime: s.now(),
		})
	}

	if failed > 0 {
		s.logger.Info("structured crawl skipped urls", "source", req.Source.ID, "failed", failed, "extracted", len(collected))
	}
	return collected, nil
}

// discover gathers candidate article URLs, deduplicated, capped at limit.
func (s *StructuredScanner) discover(ctx context.Context, src scanner.Source, limit int) []string {
	if len(src.FeedURLs) > 0 {
		return s.discoverFromFeeds(ctx, src, limit)
	}
	return s.discoverFromListings(ctx, src, limit)
}

func (s *StructuredScanner) discoverFromFeeds(ctx context.Context, src scanner.Source, limit int) []string {
	var urls []string
	seen := map[string]struct{}{}

	for _, feedURL := range src.FeedURLs {
		feed, err := s.feeds.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			s.logger.Warn("feed fetch failed", "source", src.ID, "url", feedURL, "error", err)
			continue
		}
		for _, item := range feed.Items {
			if item.Link == "" {
				continue
			}
			if _, ok := seen[item.Link]; ok {
				continue
			}
			seen[item.Link] = struct{}{}
			urls = append(urls, item.Link)
			if len(urls) >= limit {
				return urls
			}
		}
	}
	return urls
}

func (s *StructuredScanner) discoverFromListings(ctx context.Context, src scanner.Source, limit int) []string {
	var urls []string
	seen := map[string]struct{}{}

	for _, listingURL := range src.ListingURLs {
		body, err := s.fetcher.Fetch(ctx, listingURL)
		if err != nil {
			s.logger.Warn("discovery fetch failed", "source", src.ID, "url", listingURL, "error", err)
			continue
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			s.logger.Warn("discovery parse failed", "source", src.ID, "url", listingURL, "error", err)
			continue
		}

		done := false
		doc.Find(src.Selectors.Article).EachWithBreak(func(_ int, item *goquery.Selection) bool {
			href, ok := item.Find(src.Selectors.Title).First().Attr("href")
			if !ok || strings.TrimSpace(href) == "" {
				return true
			}
			link := resolveLink(src.BaseURL, href)
			if _, dup := seen[link]; dup {
				return true
			}
			seen[link] = struct{}{}
			urls = append(urls, link)
			if len(urls) >= limit {
				done = true
				return false
			}
			return true
		})
		if done {
			break
		}
	}
	return urls
}
