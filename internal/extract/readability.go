package extract

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"

	"FinNewsScanner/internal/ports"
)

// ReadabilityStrategy is the primary extraction path: structured-article
// heuristics over the fetched page (main-content detection, primary heading
// as title).
type ReadabilityStrategy struct {
	fetcher ports.Fetcher
}

// NewReadabilityStrategy wires the shared page fetcher.
func NewReadabilityStrategy(fetcher ports.Fetcher) *ReadabilityStrategy {
	return &ReadabilityStrategy{fetcher: fetcher}
}

// Extract fetches and parses one article URL.
func (s *ReadabilityStrategy) Extract(ctx context.Context, pageURL string) (*Result, error) {
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, &Error{Reason: ReasonFetchError, URL: pageURL, Err: err}
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, &Error{Reason: ReasonInvalidURL, URL: pageURL, Err: err}
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return nil, &Error{Reason: ReasonFetchError, URL: pageURL, Err: err}
	}

	content := strings.TrimSpace(article.TextContent)
	length := utf8.RuneCountInString(content)
	if length < minContentLength {
		return nil, &Error{Reason: ReasonContentTooShort, URL: pageURL, ContentLength: length}
	}

	result := &Result{
		Title:         strings.TrimSpace(article.Title),
		Content:       content,
		ContentLength: length,
		Source:        parsed.Host,
		LeadImage:     article.Image,
	}
	if article.Byline != "" {
		result.Authors = []string{article.Byline}
	}
	if article.PublishedTime != nil {
		result.PublishedAt = *article.PublishedTime
	}

	return result, nil
}
