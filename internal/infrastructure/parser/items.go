package parser

import (
	"bytes"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"FinNewsScanner/internal/domain"
	"FinNewsScanner/internal/scanner"
)

// scrapeItems walks the configured item elements of one listing document and
// builds RawArticles in listing order. Items missing a title or link are
// skipped; the skip count is returned so callers can log it.
func scrapeItems(body []byte, src scanner.Source, limit int, now time.Time) ([]domain.RawArticle, int, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}

	var (
		articles []domain.RawArticle
		skipped  int
	)

	doc.Find(src.Selectors.Article).EachWithBreak(func(i int, item *goquery.Selection) bool {
		if i >= limit {
			return false
		}

		titleElem := item.Find(src.Selectors.Title).First()
		title := strings.TrimSpace(titleElem.Text())
		href, _ := titleElem.Attr("href")
		if title == "" || href == "" {
			skipped++
			return true
		}

		summary := ""
		if src.Selectors.Content != "" {
			summary = strings.TrimSpace(item.Find(src.Selectors.Content).First().Text())
		}

		articles = append(articles, domain.RawArticle{
			Source:    src.Name,
			Title:     title,
			Summary:   summary,
			Link:      resolveLink(src.BaseURL, href),
			CrawlTime: now,
		})
		return true
	})

	return articles, skipped, nil
}

// resolveLink turns relative listing hrefs into absolute URLs.
func resolveLink(baseURL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
