package domain

import "time"

// SentimentBreakdown is one category row of a property's current sentiment
// scan. Category is free text in whatever language the source uses; the
// sentiment taxonomy decides what it maps to. A row is usable for scoring
// only if it carries an explicit rating > 0 or at least one mention count.
type SentimentBreakdown struct {
	PropertyID  int64
	Category    string
	Rating      *float64 // 0-5 when the source scored the category directly
	Positive    *int
	Neutral     *int
	Negative    *int
	Description *string
}

// SentimentSnapshot is a past scan's breakdown list, kept so ratings can be
// backfilled from history when the current scan is missing a category.
type SentimentSnapshot struct {
	PropertyID int64
	RecordedAt time.Time
	Breakdowns []SentimentBreakdown
}

type MentionPolarity string

const (
	MentionPositive MentionPolarity = "positive"
	MentionNegative MentionPolarity = "negative"
	MentionNeutral  MentionPolarity = "neutral"
)

// GuestMention is a tagged keyword or text span pulled from guest reviews.
// Mentions are a fallback signal only, never authoritative over a breakdown.
type GuestMention struct {
	PropertyID int64
	Keyword    string
	Polarity   MentionPolarity
	Count      int // >= 1
}
