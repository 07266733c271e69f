package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ratewatch/internal/adapters/observability"
	"ratewatch/internal/domain"
	"ratewatch/internal/insights"
	"ratewatch/internal/sentiment"
)

/********** read models served by the API **********/

type PillarRating struct {
	Pillar     string  `json:"pillar"`
	Rating     float64 `json:"rating"`
	Provenance string  `json:"provenance"`
}

type RatingsView struct {
	PropertyID int64          `json:"property_id"`
	Ratings    []PillarRating `json:"ratings"`
	Average    *float64       `json:"average,omitempty"`
}

type QuadrantView struct {
	X       float64          `json:"x"`
	Y       float64          `json:"y"`
	Label   string           `json:"label"`
	Insight insights.Insight `json:"insight"`
}

type EvidenceView struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

type VulnerabilityView struct {
	Category string        `json:"category"`
	Rating   float64       `json:"rating"`
	Evidence *EvidenceView `json:"evidence,omitempty"`
}

type CompetitorCard struct {
	PropertyID      int64               `json:"property_id"`
	Name            string              `json:"name"`
	Price           *float64            `json:"price,omitempty"`
	Currency        *string             `json:"currency,omitempty"`
	AverageRating   *float64            `json:"average_rating,omitempty"`
	Secure          bool                `json:"secure"`
	Opportunity     string              `json:"opportunity"`
	DataPoints      int                 `json:"data_points"`
	Vulnerabilities []VulnerabilityView `json:"vulnerabilities,omitempty"`
}

type TargetSummary struct {
	PropertyID     int64          `json:"property_id"`
	Name           string         `json:"name"`
	Price          *float64       `json:"price,omitempty"`
	Currency       *string        `json:"currency,omitempty"`
	Ratings        []PillarRating `json:"ratings"`
	AverageRating  *float64       `json:"average_rating,omitempty"`
	PriceIndex     *float64       `json:"price_index,omitempty"`
	SentimentIndex *float64       `json:"sentiment_index,omitempty"`
}

type CompetitiveReport struct {
	PropertyID  int64            `json:"property_id"`
	Language    string           `json:"language"`
	Target      TargetSummary    `json:"target"`
	Quadrant    QuadrantView     `json:"quadrant"`
	Competitors []CompetitorCard `json:"competitors"`
}

/********** service **********/

type AnalysisService struct {
	repo     domain.MarketRepository
	cache    domain.Cache
	cacheTTL time.Duration

	res  *sentiment.Resolver
	calc *sentiment.Calculator
	quad *sentiment.QuadrantClassifier
	vuln *sentiment.VulnerabilityExtractor
}

func NewAnalysisService(r domain.MarketRepository, c domain.Cache, ttl time.Duration) *AnalysisService {
	res := sentiment.NewResolver(nil)
	return &AnalysisService{
		repo:     r,
		cache:    c,
		cacheTTL: ttl,
		res:      res,
		calc:     sentiment.NewCalculator(res),
		quad:     sentiment.NewQuadrantClassifier(0),
		vuln:     sentiment.NewVulnerabilityExtractor(res),
	}
}

func (s *AnalysisService) GetCompetitiveAnalysis(ctx context.Context, targetID int64, lang string) (CompetitiveReport, error) {
	key := fmt.Sprintf("analysis:%d:%s", targetID, lang)
	var rep CompetitiveReport
	if ok, _ := s.cache.Get(ctx, key, &rep); ok {
		observability.ObserveAnalysis("cache")
		return rep, nil
	}

	cs, err := s.repo.GetCompetitiveSet(ctx, targetID)
	if err != nil {
		observability.ObserveAnalysis("error")
		return CompetitiveReport{}, err
	}

	rep = s.buildReport(cs, lang)
	observability.ObserveAnalysis("fresh")

	// size guard before caching, same policy as any other derived view
	if b, _ := json.Marshal(rep); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, rep, int(s.cacheTTL.Seconds()))
	}
	return rep, nil
}

func (s *AnalysisService) GetPillarRatings(ctx context.Context, propertyID int64) (RatingsView, error) {
	key := fmt.Sprintf("ratings:%d", propertyID)
	var out RatingsView
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	sweep, err := s.repo.GetSweep(ctx, propertyID)
	if err != nil {
		return RatingsView{}, err
	}

	out = RatingsView{
		PropertyID: propertyID,
		Ratings:    s.resolvePillars(sweep),
		Average:    s.res.AverageRating(sweep),
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

/********** report assembly **********/

func (s *AnalysisService) buildReport(cs domain.CompetitiveSet, lang string) CompetitiveReport {
	idx := s.calc.Composite(cs.Target, cs.Competitors)
	pos := s.quad.Classify(idx)

	target := TargetSummary{
		PropertyID:     cs.Target.Hotel.ID,
		Name:           cs.Target.Hotel.Name,
		Price:          cs.Target.Hotel.Price,
		Currency:       cs.Target.Hotel.Currency,
		Ratings:        s.resolvePillars(cs.Target),
		AverageRating:  s.res.AverageRating(cs.Target),
		PriceIndex:     idx.PriceIndex,
		SentimentIndex: idx.SentimentIndex,
	}

	cards := make([]CompetitorCard, 0, len(cs.Competitors))
	for _, comp := range cs.Competitors {
		threat := s.vuln.Extract(comp)
		cards = append(cards, CompetitorCard{
			PropertyID:      comp.Hotel.ID,
			Name:            comp.Hotel.Name,
			Price:           comp.Hotel.Price,
			Currency:        comp.Hotel.Currency,
			AverageRating:   s.res.AverageRating(comp),
			Secure:          threat.Secure,
			Opportunity:     string(threat.Opportunity),
			DataPoints:      threat.DataPoints,
			Vulnerabilities: mapVulnerabilities(threat.Vulnerabilities),
		})
	}

	return CompetitiveReport{
		PropertyID: cs.Target.Hotel.ID,
		Language:   lang,
		Target:     target,
		Quadrant: QuadrantView{
			X:       pos.X,
			Y:       pos.Y,
			Label:   string(pos.Label),
			Insight: insights.Lookup(pos.Label, lang),
		},
		Competitors: cards,
	}
}

func (s *AnalysisService) resolvePillars(sweep domain.PropertySweep) []PillarRating {
	resolved := s.res.ResolveAll(sweep)
	out := make([]PillarRating, 0, len(resolved))
	for _, rr := range resolved {
		observability.ObserveResolve(string(rr.Pillar), string(rr.Provenance))
		out = append(out, PillarRating{
			Pillar:     string(rr.Pillar),
			Rating:     rr.Rating,
			Provenance: string(rr.Provenance),
		})
	}
	return out
}

func mapVulnerabilities(in []sentiment.Vulnerability) []VulnerabilityView {
	if len(in) == 0 {
		return nil
	}
	out := make([]VulnerabilityView, 0, len(in))
	for _, v := range in {
		view := VulnerabilityView{Category: v.Category, Rating: v.Rating}
		if v.Evidence != nil {
			view.Evidence = &EvidenceView{Keyword: v.Evidence.Keyword, Count: v.Evidence.Count}
		}
		out = append(out, view)
	}
	return out
}
