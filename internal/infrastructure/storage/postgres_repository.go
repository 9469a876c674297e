package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"FinNewsScanner/internal/domain"
	"FinNewsScanner/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository persists raw and processed articles into Postgres.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.ArticleRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SaveRaw inserts the crawl batch; links already present are left untouched.
func (r *PostgresRepository) SaveRaw(ctx context.Context, articles []domain.RawArticle) error {
	if r.db == nil || len(articles) == 0 {
		return nil
	}

	builder := psql.Insert("raw_articles").
		Columns("source", "title", "summary", "link", "crawl_time")
	for _, a := range articles {
		builder = builder.Values(a.Source, a.Title, a.Summary, a.Link, a.CrawlTime)
	}
	builder = builder.Suffix("ON CONFLICT (link) DO NOTHING")

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build raw insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert raw articles: %w", err)
	}
	return nil
}

// SaveProcessed upserts each processed snapshot keyed on the article link.
func (r *PostgresRepository) SaveProcessed(ctx context.Context, articles []domain.ProcessedArticle) error {
	if r.db == nil || len(articles) == 0 {
		return nil
	}

	for _, a := range articles {
		query, args, err := psql.Insert("processed_articles").
			Columns(
				"source", "title", "summary", "content", "link", "crawl_time",
				"cleaned_text", "sentiment_positive", "sentiment_negative",
				"sentiment_neutral", "predicted_label", "predicted_sentiment",
				"sectors", "processed_at",
			).
			Values(
				a.Source, a.Title, a.Summary, a.Content, a.Link, a.CrawlTime,
				a.CleanedText, a.Sentiment.Positive, a.Sentiment.Negative,
				a.Sentiment.Neutral, int(a.PredictedLabel), a.PredictedLabel.Display(),
				a.SectorList(), a.ProcessedAt,
			).
			Suffix(`ON CONFLICT (link) DO UPDATE
                SET cleaned_text = EXCLUDED.cleaned_text,
                    sentiment_positive = EXCLUDED.sentiment_positive,
                    sentiment_negative = EXCLUDED.sentiment_negative,
                    sentiment_neutral = EXCLUDED.sentiment_neutral,
                    predicted_label = EXCLUDED.predicted_label,
                    predicted_sentiment = EXCLUDED.predicted_sentiment,
                    sectors = EXCLUDED.sectors,
                    processed_at = EXCLUDED.processed_at`).
			ToSql()
		if err != nil {
			return fmt.Errorf("build processed upsert: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert processed article %s: %w", a.Link, err)
		}
	}
	return nil
}
