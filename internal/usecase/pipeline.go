package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"FinNewsScanner/internal/classify"
	"FinNewsScanner/internal/crawler"
	"FinNewsScanner/internal/domain"
	"FinNewsScanner/internal/extract"
	"FinNewsScanner/internal/ports"
	"FinNewsScanner/internal/textproc"
)

// NewsCrawler is the orchestrator contract the pipeline drives.
type NewsCrawler interface {
	CrawlAll(ctx context.Context, sourceIDs []string, maxWorkers int) ([]domain.RawArticle, crawler.Stats)
}

// Extractor is the per-URL extraction chain used for single-URL analysis.
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (*extract.Result, error)
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Crawler    NewsCrawler
	Extractor  Extractor
	Normalizer *textproc.Normalizer
	Repository ports.ArticleRepository
	Notifier   ports.Notifier
	Logger     *slog.Logger
	MaxWorkers int
}

// Pipeline implements the crawl→normalize→classify→persist workflow.
type Pipeline struct {
	crawler    NewsCrawler
	extractor  Extractor
	normalizer *textproc.Normalizer
	repository ports.ArticleRepository
	notifier   ports.Notifier
	logger     *slog.Logger
	maxWorkers int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		crawler:    deps.Crawler,
		extractor:  deps.Extractor,
		normalizer: deps.Normalizer,
		repository: deps.Repository,
		notifier:   deps.Notifier,
		logger:     logger,
		maxWorkers: deps.MaxWorkers,
	}
}

// Run crawls every configured source, processes the results and hands them to
// the repository. Persistence failures are reported but never abort
// processing; partial success is success.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.crawler == nil {
		return fmt.Errorf("pipeline: crawler is not configured")
	}

	articles, stats := p.crawler.CrawlAll(ctx, nil, p.maxWorkers)
	p.logger.Info("crawl finished",
		"articles", len(articles),
		"source_errors", stats.SourceErrors,
		"source_timeouts", stats.SourceTimeouts,
		"duplicates_removed", stats.DuplicatesRemoved)

	if p.repository != nil {
		if err := p.repository.SaveRaw(ctx, articles); err != nil {
			p.logger.Error("persist raw articles failed", "error", err)
		}
	}

	processed := make([]domain.ProcessedArticle, 0, len(articles))
	for _, article := range articles {
		processed = append(processed, p.process(ctx, article))
	}

	if p.repository != nil && len(processed) > 0 {
		if err := p.repository.SaveProcessed(ctx, processed); err != nil {
			p.logger.Error("persist processed articles failed", "error", err)
		}
	}

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, buildDigest(stats, len(processed))); err != nil {
			p.logger.Warn("publish digest failed", "error", err)
		}
	}

	return nil
}

// AnalyzeURL extracts, processes and optionally persists a single article.
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL string) (domain.ProcessedArticle, error) {
	if p.extractor == nil {
		return domain.ProcessedArticle{}, fmt.Errorf("pipeline: extractor is not configured")
	}

	result, err := p.extractor.Extract(ctx, rawURL)
	if err != nil {
		return domain.ProcessedArticle{}, fmt.Errorf("analyze url: %w", err)
	}

	article := p.process(ctx, domain.RawArticle{
		Source:    result.Source,
		Title:     result.Title,
		Summary:   result.Summary(),
		Link:      rawURL,
		CrawlTime: time.Now(),
	})
	article.Content = result.Content

	if p.repository != nil {
		if err := p.repository.SaveProcessed(ctx, []domain.ProcessedArticle{article}); err != nil {
			p.logger.Error("persist analyzed url failed", "url", rawURL, "error", err)
		}
	}

	return article, nil
}

// process composes normalizer and classifiers for one article. Classifiers
// run on the raw title+summary text; the normalizer output becomes
// cleaned_text.
func (p *Pipeline) process(ctx context.Context, article domain.RawArticle) domain.ProcessedArticle {
	fullText := article.Title + " " + article.Summary

	cleaned := ""
	if p.normalizer != nil {
		cleaned = p.normalizer.Normalize(ctx, fullText)
	}

	score, label := classify.Sentiment(fullText)
	sectors := classify.Sectors(fullText)

	return domain.ProcessedArticle{
		RawArticle:     article,
		Content:        article.Summary,
		CleanedText:    cleaned,
		Sentiment:      score,
		PredictedLabel: label,
		Sectors:        sectors,
		ProcessedAt:    time.Now(),
	}
}

func buildDigest(stats crawler.Stats, processed int) string {
	ids := make([]string, 0, len(stats.PerSource))
	for id := range stats.PerSource {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	digest := fmt.Sprintf("Crawl run: %d articles processed\n", processed)
	for _, id := range ids {
		digest += fmt.Sprintf("- %s: %d\n", id, stats.PerSource[id])
	}
	digest += fmt.Sprintf("errors: %d, timeouts: %d, duplicates removed: %d",
		stats.SourceErrors, stats.SourceTimeouts, stats.DuplicatesRemoved)
	return digest
}
