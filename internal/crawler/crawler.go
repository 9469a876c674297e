package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"FinNewsScanner/internal/domain"
	"FinNewsScanner/internal/scanner"
)

const (
	defaultMaxWorkers    = 3
	defaultSourceTimeout = 60 * time.Second
	defaultMaxArticles   = 20
)

// Options tune the orchestrator; zero values fall back to defaults.
type Options struct {
	SourceTimeout time.Duration
	MaxArticles   int
	MaxWorkers    int
	Logger        *slog.Logger
}

// Crawler dispatches per-source listing walks across a bounded worker pool
// and aggregates their results. One source failing or timing out never
// affects the others.
type Crawler struct {
	sources       map[string]scanner.Source
	order         []string
	registry      *scanner.Registry
	sourceTimeout time.Duration
	maxArticles   int
	maxWorkers    int
	logger        *slog.Logger
}

// New validates the catalog and builds the orchestrator. An empty catalog is
// a hard configuration error.
func New(sources []scanner.Source, registry *scanner.Registry, opts Options) (*Crawler, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("crawler: no sources configured")
	}
	if registry == nil {
		return nil, fmt.Errorf("crawler: strategy registry is required")
	}

	c := &Crawler{
		sources:       make(map[string]scanner.Source, len(sources)),
		registry:      registry,
		sourceTimeout: opts.SourceTimeout,
		maxArticles:   opts.MaxArticles,
		maxWorkers:    opts.MaxWorkers,
		logger:        opts.Logger,
	}
	for _, src := range sources {
		if _, dup := c.sources[src.ID]; dup {
			return nil, fmt.Errorf("crawler: duplicate source id %s", src.ID)
		}
		c.sources[src.ID] = src
		c.order = append(c.order, src.ID)
	}

	if c.sourceTimeout <= 0 {
		c.sourceTimeout = defaultSourceTimeout
	}
	if c.maxArticles <= 0 {
		c.maxArticles = defaultMaxArticles
	}
	if c.maxWorkers <= 0 {
		c.maxWorkers = defaultMaxWorkers
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c, nil
}

// CrawlSource walks a single source. Rendering sources go through the
// rendered walk; the rest try a structured crawl first and fall back to the
// raw listing scrape when it produced nothing.
func (c *Crawler) CrawlSource(ctx context.Context, sourceID string) ([]domain.RawArticle, error) {
	src, ok := c.sources[sourceID]
	if !ok {
		return nil, fmt.Errorf("unknown source %s", sourceID)
	}

	req := scanner.Request{Source: src, Limit: c.maxArticles}

	if src.RequiresRendering {
		strategy, err := c.registry.Resolve(scanner.StrategyRendered)
		if err != nil {
			return nil, err
		}
		return strategy.Scan(ctx, req)
	}

	structured, err := c.registry.Resolve(scanner.StrategyStructured)
	if err != nil {
		return nil, err
	}
	articles, err := structured.Scan(ctx, req)
	if err == nil && len(articles) > 0 {
		return articles, nil
	}
	if err != nil {
		c.logger.Debug("structured crawl failed, falling back to listing scrape", "source", sourceID, "error", err)
	}

	listing, err := c.registry.Resolve(scanner.StrategyListing)
	if err != nil {
		return nil, err
	}
	return listing.Scan(ctx, req)
}

// CrawlAll crawls the requested sources (all configured ones when ids is
// empty) on a pool of maxWorkers goroutines. Output is deterministic within a
// source (listing order) but the cross-source order follows pool completion
// and is not contractual. Duplicate titles are removed keeping the first
// occurrence in arrival order.
func (c *Crawler) CrawlAll(ctx context.Context, sourceIDs []string, maxWorkers int) ([]domain.RawArticle, Stats) {
	if len(sourceIDs) == 0 {
		sourceIDs = c.order
	}
	if maxWorkers <= 0 {
		maxWorkers = c.maxWorkers
	}
	if maxWorkers > len(sourceIDs) {
		maxWorkers = len(sourceIDs)
	}

	jobs := make(chan string, len(sourceIDs))
	results := make(chan []domain.RawArticle, len(sourceIDs))
	stats := newCounters()

	for i := 0; i < maxWorkers; i++ {
		go func() {
			for id := range jobs {
				results <- c.crawlWithBudget(ctx, id, stats)
			}
		}()
	}

	for _, id := range sourceIDs {
		jobs <- id
	}
	close(jobs)

	var aggregated []domain.RawArticle
	for range sourceIDs {
		aggregated = append(aggregated, <-results...)
	}

	deduped, removed := dedupByTitle(aggregated)
	stats.recordDuplicates(removed)
	if removed > 0 {
		c.logger.Info("removed duplicate titles", "removed", removed, "kept", len(deduped))
	}

	return deduped, stats.snapshot()
}

// crawlWithBudget wraps one source in the hard per-source timeout. A timed
// out or failed source contributes zero articles; partial results gathered
// before the deadline are discarded to avoid partially-applied state.
func (c *Crawler) crawlWithBudget(ctx context.Context, sourceID string, stats *counters) []domain.RawArticle {
	sctx, cancel := context.WithTimeout(ctx, c.sourceTimeout)
	defer cancel()

	articles, err := c.CrawlSource(sctx, sourceID)

	if sctx.Err() == context.DeadlineExceeded {
		c.logger.Warn("source crawl timed out", "source", sourceID, "timeout", c.sourceTimeout, "discarded", len(articles))
		stats.recordTimeout(sourceID)
		return nil
	}
	if err != nil {
		c.logger.Error("source crawl failed", "source", sourceID, "error", err)
		stats.recordError(sourceID)
		return nil
	}

	c.logger.Info("crawled source", "source", sourceID, "articles", len(articles))
	stats.recordSource(sourceID, len(articles))
	return articles
}

// dedupByTitle keeps the first occurrence of each exact title.
func dedupByTitle(articles []domain.RawArticle) ([]domain.RawArticle, int) {
	seen := make(map[string]struct{}, len(articles))
	out := articles[:0]
	removed := 0
	for _, a := range articles {
		if _, dup := seen[a.Title]; dup {
			removed++
			continue
		}
		seen[a.Title] = struct{}{}
		out = append(out, a)
	}
	return out, removed
}
