package sentiment

import (
	"sort"

	"ratewatch/internal/domain"
)

// Provenance records which fallback source produced a resolved rating, so a
// genuine 0 is distinguishable from "no data".
type Provenance string

const (
	ProvBreakdownExplicit Provenance = "breakdown-explicit"
	ProvBreakdownCounts   Provenance = "breakdown-counts"
	ProvHistory           Provenance = "history"
	ProvMentions          Provenance = "mentions"
	ProvNone              Provenance = "none"
)

// ResolvedRating is one pillar's comparable rating for one hotel. Rating is
// always within [0,5]; when Provenance is ProvNone the Rating is a sentinel
// zero, not a score.
type ResolvedRating struct {
	PropertyID int64
	Pillar     Pillar
	Rating     float64
	Provenance Provenance
}

// Mention polarity weights on the 0-5 scale.
const (
	weightPositive = 5.0
	weightNeutral  = 3.0
	weightNegative = 1.0
)

// Resolver derives a single per-pillar rating from whatever sentiment data a
// sweep carries, walking a fixed fallback chain: explicit breakdown rating,
// breakdown mention counts, snapshot history, guest mentions.
type Resolver struct {
	tax *Taxonomy
}

func NewResolver(tax *Taxonomy) *Resolver {
	if tax == nil {
		tax = DefaultTaxonomy()
	}
	return &Resolver{tax: tax}
}

// Resolve walks the fallback chain for one pillar. Every step short-circuits
// on success; zero denominators fall through to the next step instead of
// erroring.
func (r *Resolver) Resolve(sweep domain.PropertySweep, p Pillar) ResolvedRating {
	id := sweep.Hotel.ID

	// 1) current breakdown with an explicit rating
	if v, ok := explicitRating(r.tax, sweep.Breakdowns, p); ok {
		return ResolvedRating{PropertyID: id, Pillar: p, Rating: clampRating(v), Provenance: ProvBreakdownExplicit}
	}

	// 2) current breakdown scored from its positive/neutral/negative counts
	if v, ok := countsRating(r.tax, sweep.Breakdowns, p); ok {
		return ResolvedRating{PropertyID: id, Pillar: p, Rating: clampRating(v), Provenance: ProvBreakdownCounts}
	}

	// 3) snapshot history, newest scan first
	if v, ok := historyRating(r.tax, sweep.History, p); ok {
		return ResolvedRating{PropertyID: id, Pillar: p, Rating: clampRating(v), Provenance: ProvHistory}
	}

	// 4) guest mentions whose text hits one of the pillar's aliases
	if v, ok := mentionsRating(r.tax, sweep.Mentions, p); ok {
		return ResolvedRating{PropertyID: id, Pillar: p, Rating: clampRating(v), Provenance: ProvMentions}
	}

	// 5) nothing usable
	return ResolvedRating{PropertyID: id, Pillar: p, Provenance: ProvNone}
}

// ResolveAll resolves every canonical pillar in declaration order.
func (r *Resolver) ResolveAll(sweep domain.PropertySweep) []ResolvedRating {
	pillars := r.tax.Pillars()
	out := make([]ResolvedRating, 0, len(pillars))
	for _, p := range pillars {
		out = append(out, r.Resolve(sweep, p))
	}
	return out
}

// AverageRating is the mean of the hotel's resolved pillar ratings, skipping
// pillars that resolved to ProvNone. nil when no pillar had usable data.
func (r *Resolver) AverageRating(sweep domain.PropertySweep) *float64 {
	var sum float64
	var n int
	for _, rr := range r.ResolveAll(sweep) {
		if rr.Provenance == ProvNone {
			continue
		}
		sum += rr.Rating
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// explicitRating returns the first current breakdown that canonicalizes to p
// and carries a rating > 0.
func explicitRating(tax *Taxonomy, bs []domain.SentimentBreakdown, p Pillar) (float64, bool) {
	for _, b := range bs {
		if got, ok := tax.Canonicalize(b.Category); !ok || got != p {
			continue
		}
		if b.Rating != nil && *b.Rating > 0 {
			return *b.Rating, true
		}
	}
	return 0, false
}

// countsRating scores the first matching breakdown from its mention counts:
// (5*positive + 3*neutral + 1*negative) / total. Rows with a zero total are
// unusable and skipped.
func countsRating(tax *Taxonomy, bs []domain.SentimentBreakdown, p Pillar) (float64, bool) {
	for _, b := range bs {
		if got, ok := tax.Canonicalize(b.Category); !ok || got != p {
			continue
		}
		pos, neu, neg := intOrZero(b.Positive), intOrZero(b.Neutral), intOrZero(b.Negative)
		total := pos + neu + neg
		if total <= 0 {
			continue
		}
		v := (weightPositive*float64(pos) + weightNeutral*float64(neu) + weightNegative*float64(neg)) / float64(total)
		return v, true
	}
	return 0, false
}

// historyRating walks snapshots newest-first, trying each snapshot's
// breakdowns with the same explicit-then-counts rule. The input order is not
// trusted; a copy is sorted by RecordedAt descending.
func historyRating(tax *Taxonomy, history []domain.SentimentSnapshot, p Pillar) (float64, bool) {
	if len(history) == 0 {
		return 0, false
	}
	snaps := append([]domain.SentimentSnapshot(nil), history...)
	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].RecordedAt.After(snaps[j].RecordedAt)
	})
	for _, s := range snaps {
		if v, ok := explicitRating(tax, s.Breakdowns, p); ok {
			return v, true
		}
		if v, ok := countsRating(tax, s.Breakdowns, p); ok {
			return v, true
		}
	}
	return 0, false
}

// mentionsRating is the last data-bearing fallback: a count-weighted average
// over the mentions matching the pillar, 5/3/1 per polarity. Mentions with an
// unknown polarity or a non-positive count contribute nothing; an all-zero
// total falls through.
func mentionsRating(tax *Taxonomy, ms []domain.GuestMention, p Pillar) (float64, bool) {
	var weighted, total float64
	for _, m := range ms {
		if m.Count <= 0 || !tax.MatchesPillar(m.Keyword, p) {
			continue
		}
		var w float64
		switch m.Polarity {
		case domain.MentionPositive:
			w = weightPositive
		case domain.MentionNeutral:
			w = weightNeutral
		case domain.MentionNegative:
			w = weightNegative
		default:
			continue
		}
		weighted += w * float64(m.Count)
		total += float64(m.Count)
	}
	if total <= 0 {
		return 0, false
	}
	return weighted / total, true
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func clampRating(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}
