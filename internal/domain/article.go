package domain

import (
	"strings"
	"time"
)

// RawArticle is the minimally-parsed crawl result produced per discovered
// listing item, before any text processing.
type RawArticle struct {
	Source    string
	Title     string
	Summary   string
	Link      string
	CrawlTime time.Time
}

// SentimentLabel enumerates the sentiment classes stored with each article.
type SentimentLabel int

const (
	SentimentNegative SentimentLabel = 0
	SentimentNeutral  SentimentLabel = 1
	SentimentPositive SentimentLabel = 2
)

// Display returns the Vietnamese label shown to users.
func (l SentimentLabel) Display() string {
	switch l {
	case SentimentNegative:
		return "Tiêu cực"
	case SentimentPositive:
		return "Tích cực"
	default:
		return "Trung tính"
	}
}

// SentimentScore holds normalized keyword-vote probabilities. When any
// keyword matched, the three values sum to 1.0; otherwise the score is the
// neutral default (0, 0, 1).
type SentimentScore struct {
	Positive float64
	Negative float64
	Neutral  float64
}

// Label picks the maximal score with fixed precedence positive, negative,
// neutral: a later key only wins with a strictly greater score.
func (s SentimentScore) Label() SentimentLabel {
	best := s.Positive
	label := SentimentPositive
	if s.Negative > best {
		best = s.Negative
		label = SentimentNegative
	}
	if s.Neutral > best {
		label = SentimentNeutral
	}
	return label
}

// Sector is one tag from the fixed business-domain catalog.
type Sector string

const (
	SectorBanking        Sector = "Banking"
	SectorRealEstate     Sector = "Real Estate"
	SectorFinance        Sector = "Finance"
	SectorRetail         Sector = "Retail"
	SectorTechnology     Sector = "Technology"
	SectorManufacturing  Sector = "Manufacturing"
	SectorEnergy         Sector = "Energy"
	SectorTransportation Sector = "Transportation"
	SectorAgriculture    Sector = "Agriculture"
	SectorOther          Sector = "Other"
)

// ProcessedArticle is a RawArticle enriched with cleaned text, sentiment and
// sector tags. Ownership passes to the repository once built.
type ProcessedArticle struct {
	RawArticle

	Content        string
	CleanedText    string
	Sentiment      SentimentScore
	PredictedLabel SentimentLabel
	Sectors        []Sector
	ProcessedAt    time.Time
}

// SectorList renders the tags in storage form ("Banking,Finance").
func (p ProcessedArticle) SectorList() string {
	if len(p.Sectors) == 0 {
		return string(SectorOther)
	}
	parts := make([]string, 0, len(p.Sectors))
	for _, s := range p.Sectors {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ",")
}
