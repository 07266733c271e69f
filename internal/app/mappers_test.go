package app

import (
	"testing"

	"ratewatch/internal/domain"
)

func TestMapProperty_AliasesAndFlexibleNumbers(t *testing.T) {
	h := mapProperty(map[string]any{
		"id":    "4242",
		"title": "Pera Palace",
		"rates": map[string]any{"nightly": float64(89), "currency": "TRY"},
		"scores": map[string]any{
			"overall": "4,3",
		},
		"role": "TARGET",
	})

	if h.ID != 4242 {
		t.Fatalf("id = %d, want 4242 parsed from string", h.ID)
	}
	if h.Name != "Pera Palace" {
		t.Fatalf("name = %q", h.Name)
	}
	if h.Role != domain.RoleTarget {
		t.Fatalf("role = %q, want target (case-insensitive)", h.Role)
	}
	if h.Price == nil || *h.Price != 89 {
		t.Fatalf("price = %v, want 89 from rates.nightly", h.Price)
	}
	if h.Currency == nil || *h.Currency != "TRY" {
		t.Fatalf("currency = %v, want TRY from rates.currency", h.Currency)
	}
	if h.GuestRating == nil || *h.GuestRating != 4.3 {
		t.Fatalf("guest rating = %v, want 4.3 from comma-decimal", h.GuestRating)
	}
	if len(h.RawJSON) == 0 {
		t.Fatalf("raw payload should be preserved")
	}
}

func TestMapProperty_DefaultsToCompetitor(t *testing.T) {
	h := mapProperty(map[string]any{"property_id": float64(5)})
	if h.Role != domain.RoleCompetitor {
		t.Fatalf("role = %q, want competitor default", h.Role)
	}
}

func TestMapBreakdowns(t *testing.T) {
	bs := mapBreakdowns(11, []map[string]any{
		{"kategori": "Hizmet", "puan": "3,9", "aciklama": "personel"},
		{"label": "Value", "counts": map[string]any{"positive": float64(8), "negative": "2"}},
		{"score": 4.0}, // no category: dropped
	})

	if len(bs) != 2 {
		t.Fatalf("expected 2 usable rows, got %+v", bs)
	}
	first := bs[0]
	if first.PropertyID != 11 || first.Category != "Hizmet" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.Rating == nil || *first.Rating != 3.9 {
		t.Fatalf("rating = %v, want 3.9 from Turkish alias", first.Rating)
	}
	if first.Description == nil || *first.Description != "personel" {
		t.Fatalf("description = %v", first.Description)
	}
	second := bs[1]
	if second.Positive == nil || *second.Positive != 8 || second.Negative == nil || *second.Negative != 2 {
		t.Fatalf("counts not mapped: %+v", second)
	}
	if second.Rating != nil {
		t.Fatalf("rating should be absent, got %v", *second.Rating)
	}
}

func TestMapMentions(t *testing.T) {
	ms := mapMentions(12, []map[string]any{
		{"phrase": "kahvaltı harika", "tone": "olumlu", "frequency": float64(14)},
		{"keyword": "thin walls", "polarity": "NEG"},
		// unusable rows: unknown polarity, then missing keyword
		{"keyword": "elevator", "polarity": "mixed"},
		{"polarity": "negative", "count": float64(3)},
	})

	if len(ms) != 2 {
		t.Fatalf("expected 2 usable mentions, got %+v", ms)
	}
	if m := ms[0]; m.Keyword != "kahvaltı harika" || m.Polarity != domain.MentionPositive || m.Count != 14 {
		t.Fatalf("unexpected first mention: %+v", m)
	}
	if m := ms[1]; m.Polarity != domain.MentionNegative || m.Count != 1 {
		t.Fatalf("unexpected second mention: %+v", m)
	}
}
