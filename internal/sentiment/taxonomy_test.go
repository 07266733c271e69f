package sentiment_test

import (
	"testing"

	"ratewatch/internal/sentiment"
)

func TestCanonicalize(t *testing.T) {
	tax := sentiment.DefaultTaxonomy()

	cases := []struct {
		label string
		want  sentiment.Pillar
		ok    bool
	}{
		{"Cleanliness", sentiment.PillarCleanliness, true},
		{"Room cleanliness & hygiene", sentiment.PillarCleanliness, true},
		{"  Service  ", sentiment.PillarService, true},
		{"Staff & Reception", sentiment.PillarService, true},
		{"Location", sentiment.PillarLocation, true},
		{"Neighborhood / transport", sentiment.PillarLocation, true},
		{"Value for money", sentiment.PillarValue, true},
		{"Price", sentiment.PillarValue, true},
		// Turkish labels as the rate shopper sends them
		{"Temizlik", sentiment.PillarCleanliness, true},
		{"Hizmet kalitesi", sentiment.PillarService, true},
		{"Konum", sentiment.PillarLocation, true},
		{"Fiyat / Performans", sentiment.PillarValue, true},
		// uppercase Turkish: İ lowercases to i + combining dot, I to dotless ı
		{"TEMİZLİK", sentiment.PillarCleanliness, true},
		{"FIYAT", sentiment.PillarValue, true},
		{"ULAŞIM", sentiment.PillarLocation, true},
		// no match
		{"Breakfast", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, c := range cases {
		got, ok := tax.Canonicalize(c.label)
		if ok != c.ok || got != c.want {
			t.Fatalf("Canonicalize(%q) = (%q, %v), want (%q, %v)", c.label, got, ok, c.want, c.ok)
		}
	}
}

func TestCanonicalize_DeclarationOrderBreaksTies(t *testing.T) {
	tax := sentiment.DefaultTaxonomy()

	// "service" (Service) and "value" (Value) both match; Service is
	// declared earlier so it wins.
	got, ok := tax.Canonicalize("service value")
	if !ok || got != sentiment.PillarService {
		t.Fatalf("expected Service, got (%q, %v)", got, ok)
	}
}

func TestMatchesPillar(t *testing.T) {
	tax := sentiment.DefaultTaxonomy()

	cases := []struct {
		text   string
		pillar sentiment.Pillar
		want   bool
	}{
		{"the staff were friendly", sentiment.PillarService, true},
		{"cleanliness impeccable", sentiment.PillarCleanliness, true}, // canonical name itself
		{"great value for money", sentiment.PillarValue, true},
		{"odalar çok temizdi", sentiment.PillarCleanliness, true},
		{"merkeze yakın", sentiment.PillarLocation, true},
		{"the pool was cold", sentiment.PillarService, false},
		{"", sentiment.PillarValue, false},
	}
	for _, c := range cases {
		if got := tax.MatchesPillar(c.text, c.pillar); got != c.want {
			t.Fatalf("MatchesPillar(%q, %s) = %v, want %v", c.text, c.pillar, got, c.want)
		}
	}
}

func TestPillarsReturnsCopy(t *testing.T) {
	tax := sentiment.DefaultTaxonomy()

	got := tax.Pillars()
	if len(got) != 4 || got[0] != sentiment.PillarCleanliness || got[3] != sentiment.PillarValue {
		t.Fatalf("unexpected pillar order: %v", got)
	}

	got[0] = "Mutated"
	if again := tax.Pillars(); again[0] != sentiment.PillarCleanliness {
		t.Fatalf("Pillars leaked internal slice: %v", again)
	}
}

func TestNewTaxonomy_CustomAliases(t *testing.T) {
	tax := sentiment.NewTaxonomy(
		[]sentiment.Pillar{sentiment.PillarService},
		map[sentiment.Pillar][]string{sentiment.PillarService: {"concierge"}},
	)

	if _, ok := tax.Canonicalize("Concierge desk"); !ok {
		t.Fatalf("custom alias did not match")
	}
	if _, ok := tax.Canonicalize("Cleanliness"); ok {
		t.Fatalf("pillar outside the custom order should not match")
	}
}
