package textproc

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"FinNewsScanner/internal/ports"
)

var (
	urlPattern    = regexp.MustCompile(`http\S+|www\S+`)
	emailPattern  = regexp.MustCompile(`\S+@\S+`)
	phonePattern  = regexp.MustCompile(`\d{10,}`)
	symbolPattern = regexp.MustCompile(`[^\w\s\x{00C0}-\x{1EF9}]`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// stopwords is the fixed Vietnamese stopword set filtered out of segmented
// tokens.
var stopwords = map[string]struct{}{
	"và": {}, "của": {}, "có": {}, "được": {},
	"trong": {}, "là": {}, "với": {}, "cho": {},
	"theo": {}, "từ": {}, "này": {}, "đó": {},
	"các": {}, "những": {}, "một": {}, "để": {},
}

// Clean applies the deterministic cleanup steps in fixed order: lowercase,
// strip URL/email/phone tokens, drop characters outside alphanumerics,
// whitespace and the Vietnamese accented range, collapse whitespace. It is
// total and idempotent.
func Clean(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = phonePattern.ReplaceAllString(text, "")
	text = symbolPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Normalizer produces cleaned_text: Clean, then external word segmentation,
// then stopword filtering.
type Normalizer struct {
	segmenter ports.Segmenter
	logger    *slog.Logger
}

// NewNormalizer wires the segmentation collaborator; a nil segmenter keeps
// the cleaned tokens as-is.
func NewNormalizer(segmenter ports.Segmenter, logger *slog.Logger) *Normalizer {
	return &Normalizer{segmenter: segmenter, logger: logger}
}

// Normalize never fails: a segmentation error falls back to the unsegmented
// cleaned text and is logged.
func (n *Normalizer) Normalize(ctx context.Context, text string) string {
	cleaned := Clean(text)
	if cleaned == "" {
		return ""
	}

	segmented := cleaned
	if n.segmenter != nil {
		out, err := n.segmenter.Segment(ctx, cleaned)
		if err != nil {
			if n.logger != nil {
				n.logger.Warn("word segmentation failed, keeping unsegmented text", "error", err)
			}
		} else {
			segmented = out
		}
	}

	tokens := strings.Fields(segmented)
	kept := tokens[:0]
	for _, token := range tokens {
		if _, stop := stopwords[token]; stop {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}
