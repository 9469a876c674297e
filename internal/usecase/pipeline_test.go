package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"FinNewsScanner/internal/crawler"
	"FinNewsScanner/internal/domain"
	"FinNewsScanner/internal/extract"
	"FinNewsScanner/internal/textproc"
)

type fakeCrawler struct {
	articles []domain.RawArticle
	stats    crawler.Stats
}

func (f fakeCrawler) CrawlAll(_ context.Context, _ []string, _ int) ([]domain.RawArticle, crawler.Stats) {
	return f.articles, f.stats
}

type fakeRepository struct {
	raw       []domain.RawArticle
	processed []domain.ProcessedArticle
	err       error
}

func (f *fakeRepository) SaveRaw(_ context.Context, articles []domain.RawArticle) error {
	f.raw = append(f.raw, articles...)
	return f.err
}

func (f *fakeRepository) SaveProcessed(_ context.Context, articles []domain.ProcessedArticle) error {
	f.processed = append(f.processed, articles...)
	return f.err
}

type fakeNotifier struct {
	digests []string
}

func (f *fakeNotifier) PublishDigest(_ context.Context, text string) error {
	f.digests = append(f.digests, text)
	return nil
}

type fakeChain struct {
	result *extract.Result
	err    error
}

func (f fakeChain) Extract(_ context.Context, _ string) (*extract.Result, error) {
	return f.result, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rawArticle(title, summary string) domain.RawArticle {
	return domain.RawArticle{
		Source:    "CafeF",
		Title:     title,
		Summary:   summary,
		Link:      "https://cafef.vn/x.chn",
		CrawlTime: time.Now(),
	}
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	repo := &fakeRepository{}
	notifier := &fakeNotifier{}
	p := NewPipeline(PipelineDeps{
		Crawler: fakeCrawler{
			articles: []domain.RawArticle{
				rawArticle("Ngân hàng tăng trưởng tín dụng", "Lợi nhuận cải thiện rõ rệt."),
				rawArticle("Doanh nghiệp thua lỗ nặng", "Khó khăn kéo dài sang quý sau."),
			},
			stats: crawler.Stats{PerSource: map[string]int{"cafef": 2}},
		},
		Normalizer: textproc.NewNormalizer(nil, testLogger()),
		Repository: repo,
		Notifier:   notifier,
		Logger:     testLogger(),
	})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(repo.raw) != 2 {
		t.Fatalf("expected 2 raw articles persisted, got %d", len(repo.raw))
	}
	if len(repo.processed) != 2 {
		t.Fatalf("expected 2 processed articles persisted, got %d", len(repo.processed))
	}

	first := repo.processed[0]
	if first.PredictedLabel != domain.SentimentPositive {
		t.Fatalf("expected positive sentiment, got %v", first.PredictedLabel)
	}
	if len(first.Sectors) == 0 || first.Sectors[0] != domain.SectorBanking {
		t.Fatalf("expected Banking sector, got %v", first.Sectors)
	}
	if first.CleanedText == "" || first.CleanedText != strings.ToLower(first.CleanedText) {
		t.Fatalf("cleaned text must be lowercased and non-empty, got %q", first.CleanedText)
	}
	if first.ProcessedAt.IsZero() {
		t.Fatal("processed timestamp must be set")
	}

	second := repo.processed[1]
	if second.PredictedLabel != domain.SentimentNegative {
		t.Fatalf("expected negative sentiment, got %v", second.PredictedLabel)
	}

	if len(notifier.digests) != 1 {
		t.Fatalf("expected one digest, got %d", len(notifier.digests))
	}
	if !strings.Contains(notifier.digests[0], "cafef: 2") {
		t.Fatalf("digest must carry per-source counts, got %q", notifier.digests[0])
	}
}

func TestPipelineRunSurvivesRepositoryFailure(t *testing.T) {
	t.Parallel()

	repo := &fakeRepository{err: errors.New("connection refused")}
	p := NewPipeline(PipelineDeps{
		Crawler: fakeCrawler{
			articles: []domain.RawArticle{rawArticle("Tin tức", "Nội dung.")},
			stats:    crawler.Stats{PerSource: map[string]int{"cafef": 1}},
		},
		Normalizer: textproc.NewNormalizer(nil, testLogger()),
		Repository: repo,
		Logger:     testLogger(),
	})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("persistence failures must not abort the run: %v", err)
	}
}

func TestPipelineRunWithoutCollaborators(t *testing.T) {
	t.Parallel()

	p := NewPipeline(PipelineDeps{
		Crawler: fakeCrawler{stats: crawler.Stats{PerSource: map[string]int{}}},
		Logger:  testLogger(),
	})
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("nil repository and notifier must be tolerated: %v", err)
	}
}

func TestPipelineRequiresCrawler(t *testing.T) {
	t.Parallel()

	p := NewPipeline(PipelineDeps{Logger: testLogger()})
	if err := p.Run(context.Background()); err == nil {
		t.Fatal("expected an error when no crawler is configured")
	}
}

func TestAnalyzeURL(t *testing.T) {
	t.Parallel()

	repo := &fakeRepository{}
	p := NewPipeline(PipelineDeps{
		Crawler: fakeCrawler{},
		Extractor: fakeChain{result: &extract.Result{
			Title:         "Cổ phiếu tăng mạnh",
			Content:       "Thị trường chứng khoán tăng điểm với thanh khoản cải thiện.",
			ContentLength: 120,
			Source:        "cafef.vn",
		}},
		Normalizer: textproc.NewNormalizer(nil, testLogger()),
		Repository: repo,
		Logger:     testLogger(),
	})

	article, err := p.AnalyzeURL(context.Background(), "https://cafef.vn/bai.chn")
	if err != nil {
		t.Fatalf("AnalyzeURL error: %v", err)
	}

	if article.Link != "https://cafef.vn/bai.chn" {
		t.Fatalf("unexpected link: %q", article.Link)
	}
	if article.Content != "Thị trường chứng khoán tăng điểm với thanh khoản cải thiện." {
		t.Fatalf("analysis must keep the full extracted content, got %q", article.Content)
	}
	if article.PredictedLabel != domain.SentimentPositive {
		t.Fatalf("expected positive sentiment, got %v", article.PredictedLabel)
	}
	if len(repo.processed) != 1 {
		t.Fatalf("expected the analyzed article persisted, got %d", len(repo.processed))
	}
}

func TestAnalyzeURLPropagatesExtractionFailure(t *testing.T) {
	t.Parallel()

	p := NewPipeline(PipelineDeps{
		Crawler:   fakeCrawler{},
		Extractor: fakeChain{err: &extract.Error{Reason: extract.ReasonContentTooShort, ContentLength: 40}},
		Logger:    testLogger(),
	})

	_, err := p.AnalyzeURL(context.Background(), "https://cafef.vn/bai.chn")
	var extractErr *extract.Error
	if !errors.As(err, &extractErr) || extractErr.Reason != extract.ReasonContentTooShort {
		t.Fatalf("expected the extraction diagnostic, got %v", err)
	}
}
