package sentiment

import (
	"sort"
	"strings"

	"ratewatch/internal/domain"
)

// DefaultVulnerabilityThreshold marks the resolved rating below which a
// pillar counts as a weakness.
const DefaultVulnerabilityThreshold = 3.8

const (
	maxVulnerabilities  = 3
	maxNegativeMentions = 3
)

// OpportunityLevel ranks how exposed a competitor looks. It drives display
// ordering on threat cards, never filtering.
type OpportunityLevel string

const (
	OpportunitySecure OpportunityLevel = "secure"
	OpportunityMedium OpportunityLevel = "Medium"
	OpportunityHigh   OpportunityLevel = "High"
)

// MentionEvidence ties a weakness back to the guest keyword that surfaced it.
type MentionEvidence struct {
	Keyword string
	Count   int
}

// Vulnerability is one weak spot on a competitor. Rating is 0 when the entry
// came purely from mentions rather than a resolved pillar.
type Vulnerability struct {
	Category string
	Rating   float64
	Evidence *MentionEvidence
}

// CompetitorThreat is the extract result for one competitor. DataPoints
// counts the pillars that resolved at all, so callers can tell a genuinely
// clean hotel apart from one that was never scanned.
type CompetitorThreat struct {
	PropertyID      int64
	Vulnerabilities []Vulnerability
	Secure          bool
	Opportunity     OpportunityLevel
	DataPoints      int
}

// VulnerabilityExtractor finds the weakest pillars and loudest negative
// mentions per competitor, merged into at most three entries.
type VulnerabilityExtractor struct {
	tax *Taxonomy
	res *Resolver

	Threshold float64
}

func NewVulnerabilityExtractor(res *Resolver) *VulnerabilityExtractor {
	if res == nil {
		res = NewResolver(nil)
	}
	return &VulnerabilityExtractor{tax: res.tax, res: res, Threshold: DefaultVulnerabilityThreshold}
}

// mentionCategories maps a canonicalized mention keyword to its display
// category. Keywords that hit no pillar land in the fallback bucket.
var mentionCategories = map[Pillar]string{
	PillarCleanliness: "Cleanliness Issue",
	PillarService:     "Service Issue",
	PillarLocation:    "Location Issue",
	PillarValue:       "Value Issue",
}

const fallbackMentionCategory = "Problem Area"

// Extract builds the threat card data for one competitor. The result is
// always well-formed: an empty list plus Secure=true is the terminal state
// for a hotel with nothing below threshold and no negative chatter.
func (e *VulnerabilityExtractor) Extract(sweep domain.PropertySweep) CompetitorThreat {
	threat := CompetitorThreat{PropertyID: sweep.Hotel.ID}

	// 1) weak pillars from the resolver, tagged with their ratings
	var entries []Vulnerability
	for _, p := range e.tax.Pillars() {
		r := e.res.Resolve(sweep, p)
		if r.Provenance == ProvNone {
			continue
		}
		threat.DataPoints++
		if r.Rating < e.Threshold {
			entries = append(entries, Vulnerability{Category: string(p), Rating: r.Rating})
		}
	}

	// 2) up to three negative mentions, merged into existing categories
	// where the names overlap so the same complaint is not listed twice
	seen := 0
	for _, m := range sweep.Mentions {
		if seen >= maxNegativeMentions {
			break
		}
		if m.Polarity != domain.MentionNegative {
			continue
		}
		seen++
		cat := e.mentionCategory(m.Keyword)
		if i := findCategory(entries, cat); i >= 0 {
			if entries[i].Evidence == nil {
				entries[i].Evidence = &MentionEvidence{Keyword: m.Keyword, Count: m.Count}
			}
			continue
		}
		entries = append(entries, Vulnerability{
			Category: cat,
			Evidence: &MentionEvidence{Keyword: m.Keyword, Count: m.Count},
		})
	}

	// 3) worst first, mention-only entries at rating 0 lead, capped at three
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Rating < entries[j].Rating })
	if len(entries) > maxVulnerabilities {
		entries = entries[:maxVulnerabilities]
	}

	threat.Vulnerabilities = entries
	threat.Secure = len(entries) == 0
	switch len(entries) {
	case 0:
		threat.Opportunity = OpportunitySecure
	case 1:
		threat.Opportunity = OpportunityMedium
	default:
		threat.Opportunity = OpportunityHigh
	}
	return threat
}

func (e *VulnerabilityExtractor) mentionCategory(keyword string) string {
	if p, ok := e.tax.Canonicalize(keyword); ok {
		if cat, ok := mentionCategories[p]; ok {
			return cat
		}
	}
	return fallbackMentionCategory
}

// findCategory matches loosely in both directions, so the pillar name
// "Cleanliness" and the mention category "Cleanliness Issue" fold together.
func findCategory(entries []Vulnerability, category string) int {
	c := strings.ToLower(category)
	for i, entry := range entries {
		ec := strings.ToLower(entry.Category)
		if strings.Contains(ec, c) || strings.Contains(c, ec) {
			return i
		}
	}
	return -1
}
