package ports

import (
	"context"
	"time"

	"FinNewsScanner/internal/domain"
)

// Fetcher retrieves raw HTML for a URL. Implementations own the timeout and
// the identifying user-agent header.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

// Renderer loads a dynamic page, waits for readiness and returns the rendered
// HTML. Sites that need real JavaScript execution get an injected headless
// implementation; the default adapter degrades to a plain fetch.
type Renderer interface {
	Render(ctx context.Context, pageURL, waitSelector string) ([]byte, error)
}

// Segmenter is the external Vietnamese word-segmentation capability: plain
// string in, space-separated tokens out, multi-syllable words joined by an
// internal marker.
type Segmenter interface {
	Segment(ctx context.Context, text string) (string, error)
}

// ArticleRepository persists crawl output. Failures are reportable but must
// not abort in-flight processing of other articles.
type ArticleRepository interface {
	SaveRaw(ctx context.Context, articles []domain.RawArticle) error
	SaveProcessed(ctx context.Context, articles []domain.ProcessedArticle) error
}

// Notifier publishes per-run crawl digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when crawl runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
