package classify

import (
	"strings"

	"FinNewsScanner/internal/domain"
)

// Fixed sentiment keyword lists; occurrences are counted, not just presence.
var (
	positiveKeywords = []string{
		"tăng", "tăng trưởng", "lợi nhuận", "thành công", "phát triển",
		"cải thiện", "khả quan", "tốt", "cao", "đột phá", "tích cực",
		"hiệu quả", "bứt phá", "vượt trội", "ấn tượng", "mạnh mẽ",
	}
	negativeKeywords = []string{
		"giảm", "lỗ", "sụt giảm", "thua lỗ", "khó khăn", "thách thức",
		"rủi ro", "suy giảm", "tệ", "thấp", "tiêu cực", "khủng hoảng",
		"suy thoái", "đình trệ", "giảm sút", "sa sút",
	}
	neutralKeywords = []string{
		"ổn định", "duy trì", "giữ nguyên", "không đổi", "bình thường",
		"trung bình", "vừa phải",
	}
)

// Sentiment scores the text by keyword-occurrence voting. When nothing
// matches, the result is the neutral default (0, 0, 1); otherwise the three
// scores are the normalized counts and sum to 1.0. The label is the argmax
// under positive, negative, neutral precedence.
func Sentiment(text string) (domain.SentimentScore, domain.SentimentLabel) {
	t := strings.ToLower(text)

	positive := countOccurrences(t, positiveKeywords)
	negative := countOccurrences(t, negativeKeywords)
	neutral := countOccurrences(t, neutralKeywords)

	total := positive + negative + neutral
	if total == 0 {
		score := domain.SentimentScore{Neutral: 1}
		return score, domain.SentimentNeutral
	}

	score := domain.SentimentScore{
		Positive: float64(positive) / float64(total),
		Negative: float64(negative) / float64(total),
		Neutral:  float64(neutral) / float64(total),
	}
	return score, score.Label()
}

func countOccurrences(text string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		count += strings.Count(text, keyword)
	}
	return count
}
