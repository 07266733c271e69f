package app

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"ratewatch/internal/domain"
)

/********** alias registries (single source of truth) **********/

var propertyAliases = map[string][]string{
	"name":     {"name", "hotel_name", "property_name", "title"},
	"price":    {"price", "rate", "nightly_rate", "price.amount", "rates.nightly", "lowest_rate"},
	"currency": {"currency", "currency_code", "price.currency", "rates.currency"},
	"rating":   {"rating", "guest_rating", "review_score", "scores.overall", "overall_score"},
}

var breakdownAliases = map[string][]string{
	"category":    {"category", "name", "label", "pillar", "kategori"},
	"rating":      {"rating", "score", "value", "rating.value", "puan"},
	"positive":    {"positive", "positive_count", "counts.positive", "pos", "olumlu"},
	"neutral":     {"neutral", "neutral_count", "counts.neutral", "neu", "notr"},
	"negative":    {"negative", "negative_count", "counts.negative", "neg", "olumsuz"},
	"description": {"description", "summary", "text", "aciklama"},
}

var mentionAliases = map[string][]string{
	"keyword":  {"keyword", "text", "phrase", "term", "mention", "anahtar"},
	"polarity": {"polarity", "sentiment", "tone", "type"},
	"count":    {"count", "mentions", "frequency", "total"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) *string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return &s
		}
	}
	return nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstIntFlexible: int from several paths (float64/int/string).
func firstIntFlexible(m map[string]any, paths ...string) *int {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int(v)
			return &x
		case int:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.Atoi(s); err == nil {
				return &n
			}
		}
	}
	return nil
}

// firstInt64Flexible: int64 from several paths (float64/int/string).
func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

/********** property mapper **********/

func mapProperty(p map[string]any) domain.Hotel {
	id := int64(0)
	if v := firstInt64Flexible(p, "property_id", "hotel_id", "id"); v != nil {
		id = *v
	}

	raw, err := json.Marshal(p)
	if err != nil {
		log.Error().Err(err).
			Str("context", "mapProperty").
			Msg("failed to marshal property to JSON")
	}

	role := domain.RoleCompetitor
	if s := lookupStr(p, "role"); strings.EqualFold(s, string(domain.RoleTarget)) {
		role = domain.RoleTarget
	}

	return domain.Hotel{
		ID:          id,
		Name:        deref(firstNonEmptyAlias(p, propertyAliases, "name")),
		Role:        role,
		Price:       getFloatFlexible(p, propertyAliases["price"]...),
		Currency:    firstNonEmptyAlias(p, propertyAliases, "currency"),
		GuestRating: getFloatFlexible(p, propertyAliases["rating"]...),
		RawJSON:     raw,
	}
}

/********** sentiment breakdown mapper **********/

func mapBreakdowns(propertyID int64, in []map[string]any) []domain.SentimentBreakdown {
	out := make([]domain.SentimentBreakdown, 0, len(in))
	for _, row := range in {
		category := deref(firstNonEmptyAlias(row, breakdownAliases, "category"))
		if category == "" {
			// a row without a category can never match a pillar; drop it
			continue
		}
		out = append(out, domain.SentimentBreakdown{
			PropertyID:  propertyID,
			Category:    category,
			Rating:      getFloatFlexible(row, breakdownAliases["rating"]...),
			Positive:    firstIntFlexible(row, breakdownAliases["positive"]...),
			Neutral:     firstIntFlexible(row, breakdownAliases["neutral"]...),
			Negative:    firstIntFlexible(row, breakdownAliases["negative"]...),
			Description: firstNonEmptyAlias(row, breakdownAliases, "description"),
		})
	}
	return out
}

/********** guest mention mapper **********/

// polarityWords normalizes the polarity spellings the rate shopper has been
// seen to emit, English and Turkish.
var polarityWords = map[string]domain.MentionPolarity{
	"positive": domain.MentionPositive,
	"pos":      domain.MentionPositive,
	"good":     domain.MentionPositive,
	"olumlu":   domain.MentionPositive,
	"negative": domain.MentionNegative,
	"neg":      domain.MentionNegative,
	"bad":      domain.MentionNegative,
	"olumsuz":  domain.MentionNegative,
	"neutral":  domain.MentionNeutral,
	"neu":      domain.MentionNeutral,
	"notr":     domain.MentionNeutral,
	"nötr":     domain.MentionNeutral,
}

func mapMentions(propertyID int64, in []map[string]any) []domain.GuestMention {
	out := make([]domain.GuestMention, 0, len(in))
	for _, row := range in {
		keyword := strings.TrimSpace(deref(firstNonEmptyAlias(row, mentionAliases, "keyword")))
		if keyword == "" {
			continue
		}
		pol, ok := polarityWords[strings.ToLower(strings.TrimSpace(deref(firstNonEmptyAlias(row, mentionAliases, "polarity"))))]
		if !ok {
			// unknown polarity carries no usable signal; drop the row
			continue
		}
		count := 1
		if c := firstIntFlexible(row, mentionAliases["count"]...); c != nil && *c > 0 {
			count = *c
		}
		out = append(out, domain.GuestMention{
			PropertyID: propertyID,
			Keyword:    keyword,
			Polarity:   pol,
			Count:      count,
		})
	}
	return out
}
