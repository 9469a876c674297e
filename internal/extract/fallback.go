package extract

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"FinNewsScanner/internal/ports"
)

// contentSelectors are tried in fixed priority order; the first selector
// with any matching element wins.
var contentSelectors = []string{
	"article",
	"div.article-body",
	"div.content",
	"div.entry-content",
	"div.post-content",
	"div.article-content",
	"div.detail-content",
}

// minParagraphLength filters boilerplate fragments out of the joined body.
const minParagraphLength = 20

// FallbackStrategy scrapes known content containers when the structured
// heuristics fail on a page.
type FallbackStrategy struct {
	fetcher ports.Fetcher
}

// NewFallbackStrategy wires the shared page fetcher.
func NewFallbackStrategy(fetcher ports.Fetcher) *FallbackStrategy {
	return &FallbackStrategy{fetcher: fetcher}
}

// Extract fetches the raw HTML and assembles a body from paragraph texts.
func (s *FallbackStrategy) Extract(ctx context.Context, pageURL string) (*Result, error) {
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, &Error{Reason: ReasonFetchError, URL: pageURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Reason: ReasonFetchError, URL: pageURL, Err: err}
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = "No title"
	}

	var paragraphs []string
	matched := false
	for _, selector := range contentSelectors {
		containers := doc.Find(selector)
		if containers.Length() == 0 {
			continue
		}
		matched = true
		paragraphs = collectParagraphs(containers)
		break
	}
	if !matched {
		paragraphs = collectParagraphs(doc.Selection)
	}

	content := strings.TrimSpace(strings.Join(paragraphs, "\n"))
	length := utf8.RuneCountInString(content)
	if length < minContentLength {
		return nil, &Error{Reason: ReasonContentTooShort, URL: pageURL, ContentLength: length}
	}

	source := pageURL
	if parsed, err := url.Parse(pageURL); err == nil {
		source = parsed.Host
	}

	return &Result{
		Title:         title,
		Content:       content,
		ContentLength: length,
		Source:        source,
	}, nil
}

func collectParagraphs(sel *goquery.Selection) []string {
	var parts []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if utf8.RuneCountInString(text) > minParagraphLength {
			parts = append(parts, text)
		}
	})
	return parts
}
