package domain

import "context"

type MarketRepository interface {
	// Write paths
	UpsertHotel(ctx context.Context, h Hotel) error
	ReplaceBreakdowns(ctx context.Context, propertyID int64, bs []SentimentBreakdown) error
	SnapshotBreakdowns(ctx context.Context, propertyID int64) error
	UpsertMentions(ctx context.Context, ms []GuestMention) error
	LogMiss(ctx context.Context, id int64, status int, reason string) error

	// Read paths
	GetSweep(ctx context.Context, propertyID int64) (PropertySweep, error)
	GetCompetitiveSet(ctx context.Context, targetID int64) (CompetitiveSet, error)
	ListScanTargets(ctx context.Context) ([]int64, error)
}

type RateShopperClient interface {
	GetProperty(ctx context.Context, id int64) (map[string]any, error)
	GetSentiment(ctx context.Context, id int64) ([]map[string]any, error)
	GetMentions(ctx context.Context, id int64, count int) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models

// PropertySweep is everything the analysis engine needs for one hotel: the
// property row plus its current breakdowns, snapshot history, and mentions.
// History carries no ordering guarantee here; consumers order it themselves.
type PropertySweep struct {
	Hotel      Hotel
	Breakdowns []SentimentBreakdown
	History    []SentimentSnapshot
	Mentions   []GuestMention
}

// CompetitiveSet is a target hotel with the competitors it is benchmarked
// against, each fully swept.
type CompetitiveSet struct {
	Target      PropertySweep
	Competitors []PropertySweep
}
