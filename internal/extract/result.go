package extract

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Reason classifies why an extraction attempt failed.
type Reason string

const (
	ReasonInvalidURL      Reason = "invalid_url"
	ReasonContentTooShort Reason = "content_too_short"
	ReasonFetchError      Reason = "fetch_error"
	ReasonRenderTimeout   Reason = "render_timeout"
)

// Error is the structured failure value every strategy converts its network
// and parsing problems into; nothing in this package panics or leaks raw
// transport errors upward.
type Error struct {
	Reason        Reason
	URL           string
	ContentLength int
	Err           error
}

func (e *Error) Error() string {
	if e.Reason == ReasonContentTooShort {
		return fmt.Sprintf("extract %s: %s (%d chars)", e.URL, e.Reason, e.ContentLength)
	}
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.URL, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// minContentLength is the threshold below which an extracted body is treated
// as a failed extraction rather than a real article.
const minContentLength = 100

const summaryLimit = 500

// Result is the transient outcome of one successful extraction call.
type Result struct {
	Title         string
	Content       string
	ContentLength int
	Source        string
	Authors       []string
	PublishedAt   time.Time
	LeadImage     string
}

// Summary returns at most 500 characters of the content, marked with an
// ellipsis when truncated.
func (r Result) Summary() string {
	if utf8.RuneCountInString(r.Content) <= summaryLimit {
		return r.Content
	}
	runes := []rune(r.Content)
	return string(runes[:summaryLimit]) + "..."
}
