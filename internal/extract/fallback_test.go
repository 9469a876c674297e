package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type staticFetcher struct {
	body []byte
	err  error
}

func (f staticFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	return f.body, f.err
}

const longParagraph = "Thị trường chứng khoán Việt Nam ghi nhận phiên giao dịch sôi động với thanh khoản cải thiện đáng kể so với tuần trước."

func TestFallbackSelectorPriority(t *testing.T) {
	t.Parallel()

	// Both article and div.content are present; article is earlier in the
	// priority list and must win.
	html := `<html><head><title>Page</title></head><body>
		<h1>Tiêu đề bài viết</h1>
		<article><p>` + longParagraph + `</p></article>
		<div class="content"><p>` + longParagraph + ` Nội dung khác hoàn toàn.</p></div>
	</body></html>`

	s := NewFallbackStrategy(staticFetcher{body: []byte(html)})
	result, err := s.Extract(context.Background(), "https://example.com/bai-viet")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if result.Title != "Tiêu đề bài viết" {
		t.Fatalf("unexpected title: %q", result.Title)
	}
	if strings.Contains(result.Content, "Nội dung khác") {
		t.Fatalf("content must come from the first matching selector, got %q", result.Content)
	}
	if result.Source != "example.com" {
		t.Fatalf("unexpected source: %q", result.Source)
	}
}

func TestFallbackFiltersShortParagraphs(t *testing.T) {
	t.Parallel()

	html := `<html><body><h1>T</h1><article>
		<p>Quảng cáo</p>
		<p>` + longParagraph + `</p>
	</article></body></html>`

	s := NewFallbackStrategy(staticFetcher{body: []byte(html)})
	result, err := s.Extract(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if strings.Contains(result.Content, "Quảng cáo") {
		t.Fatalf("short paragraphs must be dropped, got %q", result.Content)
	}
}

func TestFallbackTitleFromTitleTag(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Từ thẻ title</title></head><body>
		<article><p>` + longParagraph + `</p></article></body></html>`

	s := NewFallbackStrategy(staticFetcher{body: []byte(html)})
	result, err := s.Extract(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if result.Title != "Từ thẻ title" {
		t.Fatalf("unexpected title: %q", result.Title)
	}
}

func TestFallbackContentTooShort(t *testing.T) {
	t.Parallel()

	html := `<html><body><h1>T</h1><article><p>Chỉ một câu ngắn gọn thôi.</p></article></body></html>`

	s := NewFallbackStrategy(staticFetcher{body: []byte(html)})
	_, err := s.Extract(context.Background(), "https://example.com/a")

	var extractErr *Error
	if !errors.As(err, &extractErr) || extractErr.Reason != ReasonContentTooShort {
		t.Fatalf("expected content_too_short, got %v", err)
	}
	if extractErr.ContentLength >= 100 {
		t.Fatalf("reported length should be below the threshold, got %d", extractErr.ContentLength)
	}
}

func TestFallbackNoContainerScansWholePage(t *testing.T) {
	t.Parallel()

	html := `<html><body><h1>T</h1><div class="random"><p>` + longParagraph + `</p></div></body></html>`

	s := NewFallbackStrategy(staticFetcher{body: []byte(html)})
	result, err := s.Extract(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if !strings.Contains(result.Content, "Thị trường chứng khoán") {
		t.Fatalf("expected page-wide paragraph harvest, got %q", result.Content)
	}
}

func TestFallbackFetchError(t *testing.T) {
	t.Parallel()

	s := NewFallbackStrategy(staticFetcher{err: errors.New("connection refused")})
	_, err := s.Extract(context.Background(), "https://example.com/a")

	var extractErr *Error
	if !errors.As(err, &extractErr) || extractErr.Reason != ReasonFetchError {
		t.Fatalf("expected fetch_error, got %v", err)
	}
}
