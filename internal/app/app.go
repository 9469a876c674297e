package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"FinNewsScanner/internal/config"
	"FinNewsScanner/internal/crawler"
	"FinNewsScanner/internal/extract"
	"FinNewsScanner/internal/infrastructure/fetch"
	"FinNewsScanner/internal/infrastructure/parser"
	"FinNewsScanner/internal/infrastructure/render"
	"FinNewsScanner/internal/infrastructure/scheduler"
	"FinNewsScanner/internal/infrastructure/segment"
	"FinNewsScanner/internal/infrastructure/storage"
	"FinNewsScanner/internal/infrastructure/telegram"
	"FinNewsScanner/internal/logging"
	"FinNewsScanner/internal/ports"
	"FinNewsScanner/internal/scanner"
	"FinNewsScanner/internal/textproc"
	"FinNewsScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	fetcher := fetch.NewClient(cfg.Crawler.UserAgent, cfg.Crawler.FetchTimeout())
	renderer := render.NewPlainRenderer(fetcher, cfg.Crawler.FetchTimeout())
	chain := extract.NewChain(fetcher, baseLogger.With("component", "extract"))

	registry := scanner.NewRegistry()
	registry.Register(parser.NewStructuredScanner(chain, fetcher, baseLogger.With("component", "scanner.structured")))
	registry.Register(parser.NewListingScanner(fetcher, baseLogger.With("component", "scanner.listing")))
	registry.Register(parser.NewRenderedScanner(renderer, baseLogger.With("component", "scanner.rendered")))

	newsCrawler, err := crawler.New(toScannerSources(cfg.Sources), registry, crawler.Options{
		SourceTimeout: cfg.Crawler.SourceTimeout(),
		MaxArticles:   cfg.Crawler.MaxArticles,
		MaxWorkers:    cfg.Crawler.MaxWorkers,
		Logger:        baseLogger.With("component", "crawler"),
	})
	if err != nil {
		return nil, fmt.Errorf("build crawler: %w", err)
	}

	var segmenter ports.Segmenter = segment.Passthrough{}
	if cfg.Segmenter.ServiceURL != "" {
		segmenter = segment.NewClient(cfg.Segmenter.ServiceURL, cfg.Segmenter.APIKey)
	}
	normalizer := textproc.NewNormalizer(segmenter, baseLogger.With("component", "normalizer"))

	var repository ports.ArticleRepository
	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		repository = storage.NewPostgresRepository(db)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Crawler:    newsCrawler,
		Extractor:  chain,
		Normalizer: normalizer,
		Repository: repository,
		Notifier:   notifier,
		Logger:     baseLogger.With("component", "pipeline"),
		MaxWorkers: cfg.Crawler.MaxWorkers,
	})

	return &Application{cfg: cfg, pipeline: pipeline, logger: baseLogger}, nil
}

// Run executes one crawl cycle, or keeps crawling on the configured interval
// until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	if a.cfg.Scheduler.IntervalMinutes <= 0 {
		return a.pipeline.Run(ctx)
	}

	driver := scheduler.NewTickerScheduler(a.cfg.Scheduler.Interval())
	runner := usecase.NewScheduler(driver, a.pipeline)
	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	return runner.Stop(context.Background())
}

func toScannerSources(cfg []config.SourceConfig) []scanner.Source {
	sources := make([]scanner.Source, 0, len(cfg))
	for _, src := range cfg {
		sources = append(sources, scanner.Source{
			ID:          src.ID,
			Name:        src.Name,
			BaseURL:     src.BaseURL,
			ListingURLs: src.ListingURLs,
			FeedURLs:    src.FeedURLs,
			Selectors: scanner.Selectors{
				Article: src.ArticleSelector,
				Title:   src.TitleSelector,
				Content: src.ContentSelector,
			},
			WaitSelector:      src.WaitSelector,
			RequiresRendering: src.RequiresRendering,
		})
	}
	return sources
}
