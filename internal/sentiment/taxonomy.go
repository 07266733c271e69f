// Package sentiment turns heterogeneous, partially-missing guest-sentiment
// data for a hotel and its competitors into comparable per-pillar ratings,
// price/sentiment composite indices, a strategic quadrant placement, and
// ranked competitor vulnerabilities. Everything here is a pure function of
// its inputs: no I/O, no clocks, no shared state.
package sentiment

import "strings"

// Pillar is a canonical guest-sentiment category.
type Pillar string

const (
	PillarCleanliness Pillar = "Cleanliness"
	PillarService     Pillar = "Service"
	PillarLocation    Pillar = "Location"
	PillarValue       Pillar = "Value"
)

// Taxonomy maps loosely-labeled category strings and free-text mention
// keywords onto canonical pillars via an alias-substring table. Pillar order
// is significant: when a label matches aliases of two pillars, the first
// declared pillar wins.
type Taxonomy struct {
	order   []Pillar
	aliases map[Pillar][]string // normalized substrings
	names   map[string]Pillar   // normalized canonical name -> pillar
}

// NewTaxonomy builds a taxonomy from an ordered pillar list and an alias
// table. Aliases are normalized once here so lookups stay allocation-light.
func NewTaxonomy(order []Pillar, aliases map[Pillar][]string) *Taxonomy {
	t := &Taxonomy{
		order:   append([]Pillar(nil), order...),
		aliases: make(map[Pillar][]string, len(aliases)),
		names:   make(map[string]Pillar, len(order)),
	}
	for _, p := range order {
		t.names[normalizeLabel(string(p))] = p
		for _, a := range aliases[p] {
			t.aliases[p] = append(t.aliases[p], normalizeLabel(a))
		}
	}
	return t
}

// DefaultTaxonomy carries the stock four pillars with English and Turkish
// alias substrings, stemmed where Turkish suffixing would otherwise defeat
// plain containment ("ulaş" covers ulaşım/ulaşımı, "temiz" covers
// temizlik/temizliği).
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy(
		[]Pillar{PillarCleanliness, PillarService, PillarLocation, PillarValue},
		map[Pillar][]string{
			PillarCleanliness: {"clean", "hygien", "housekeeping", "temiz", "hijyen"},
			PillarService:     {"service", "staff", "reception", "servis", "hizmet", "personel", "resepsiyon"},
			PillarLocation:    {"location", "neighborhood", "transport", "konum", "lokasyon", "ulaş", "merkez"},
			PillarValue:       {"value", "price", "worth", "fiyat", "değer", "ücret"},
		},
	)
}

// Pillars returns the canonical pillars in declaration order.
func (t *Taxonomy) Pillars() []Pillar {
	return append([]Pillar(nil), t.order...)
}

// Canonicalize resolves a free-text category label to a pillar. Exact
// case-insensitive name matches win over alias substring matches; alias ties
// between pillars resolve by declaration order. ok is false when nothing
// matches; the caller must treat the record as uncategorized, not guess.
func (t *Taxonomy) Canonicalize(label string) (Pillar, bool) {
	norm := normalizeLabel(label)
	if norm == "" {
		return "", false
	}
	if p, ok := t.names[norm]; ok {
		return p, true
	}
	for _, p := range t.order {
		for _, a := range t.aliases[p] {
			if strings.Contains(norm, a) {
				return p, true
			}
		}
	}
	return "", false
}

// MatchesPillar reports whether free text mentions the given pillar, by its
// canonical name or any of its aliases.
func (t *Taxonomy) MatchesPillar(text string, p Pillar) bool {
	norm := normalizeLabel(text)
	if norm == "" {
		return false
	}
	if strings.Contains(norm, normalizeLabel(string(p))) {
		return true
	}
	for _, a := range t.aliases[p] {
		if strings.Contains(norm, a) {
			return true
		}
	}
	return false
}

// normalizeLabel lowercases and folds Turkish dotted/dotless i variants onto
// plain i, so "TEMİZLİK" and "temizlik" both hit the "temiz" alias. Go's
// ToLower maps İ to i plus a combining dot (U+0307), which would break plain
// substring checks.
func normalizeLabel(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u0307': // combining dot above, left behind by İ
			return -1
		case 'ı':
			return 'i'
		}
		return r
	}, lower)
}
