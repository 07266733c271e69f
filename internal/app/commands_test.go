package app_test

import (
	"context"
	"errors"
	"testing"

	"ratewatch/internal/app"
	"ratewatch/internal/domain"
)

// ---- fakes ----

type miss struct {
	id     int64
	status int
	reason string
}

type scanRepo struct {
	hotels    []domain.Hotel
	replaced  map[int64][]domain.SentimentBreakdown
	mentions  []domain.GuestMention
	misses    []miss
	callOrder []string
}

func (r *scanRepo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	r.hotels = append(r.hotels, h)
	r.callOrder = append(r.callOrder, "upsert-hotel")
	return nil
}
func (r *scanRepo) ReplaceBreakdowns(ctx context.Context, propertyID int64, bs []domain.SentimentBreakdown) error {
	if r.replaced == nil {
		r.replaced = map[int64][]domain.SentimentBreakdown{}
	}
	r.replaced[propertyID] = bs
	r.callOrder = append(r.callOrder, "replace-breakdowns")
	return nil
}
func (r *scanRepo) SnapshotBreakdowns(ctx context.Context, propertyID int64) error {
	r.callOrder = append(r.callOrder, "snapshot-breakdowns")
	return nil
}
func (r *scanRepo) UpsertMentions(ctx context.Context, ms []domain.GuestMention) error {
	r.mentions = append(r.mentions, ms...)
	r.callOrder = append(r.callOrder, "upsert-mentions")
	return nil
}
func (r *scanRepo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	r.misses = append(r.misses, miss{id, status, reason})
	return nil
}
func (r *scanRepo) GetSweep(ctx context.Context, propertyID int64) (domain.PropertySweep, error) {
	return domain.PropertySweep{}, nil
}
func (r *scanRepo) GetCompetitiveSet(ctx context.Context, targetID int64) (domain.CompetitiveSet, error) {
	return domain.CompetitiveSet{}, nil
}
func (r *scanRepo) ListScanTargets(ctx context.Context) ([]int64, error) { return nil, nil }

type fakeShopper struct {
	property map[string]any
	propErr  error

	sentiment []map[string]any
	sentErr   error

	mentions     []map[string]any
	mentErr      error
	mentionCount int
}

func (f *fakeShopper) GetProperty(ctx context.Context, id int64) (map[string]any, error) {
	return f.property, f.propErr
}
func (f *fakeShopper) GetSentiment(ctx context.Context, id int64) ([]map[string]any, error) {
	return f.sentiment, f.sentErr
}
func (f *fakeShopper) GetMentions(ctx context.Context, id int64, count int) ([]map[string]any, error) {
	f.mentionCount = count
	return f.mentions, f.mentErr
}

type recordingCache struct {
	fakeCache
	dels []string
}

func (c *recordingCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	return nil
}

func containsKey(keys []string, want string) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}

// ---- tests ----

func TestScanProperty_HappyPath(t *testing.T) {
	shopper := &fakeShopper{
		property: map[string]any{
			"property_id": float64(42), // JSON numbers decode as float64
			"hotel_name":  "Hotel Bosphorus",
			"price":       "120,50",
			"currency":    "EUR",
		},
		sentiment: []map[string]any{
			{"name": "Temizlik", "counts": map[string]any{"positive": float64(3), "neutral": float64(1)}},
			{"category": "Service", "score": 4.1},
		},
		mentions: []map[string]any{
			{"text": "rude staff", "sentiment": "olumsuz", "count": float64(7)},
			{"text": "great view", "sentiment": "positive"},
		},
	}
	repo := &scanRepo{}
	cache := &recordingCache{}
	svc := app.NewScanService(shopper, repo, cache)

	if err := svc.ScanProperty(context.Background(), 42, 25); err != nil {
		t.Fatalf("err: %v", err)
	}

	// property mapped through the alias registry
	if len(repo.hotels) != 1 {
		t.Fatalf("expected one hotel upsert, got %d", len(repo.hotels))
	}
	h := repo.hotels[0]
	if h.ID != 42 || h.Name != "Hotel Bosphorus" {
		t.Fatalf("unexpected hotel: %+v", h)
	}
	if h.Price == nil || *h.Price != 120.50 {
		t.Fatalf("price = %v, want 120.50 from comma-decimal string", h.Price)
	}

	// previous scan snapshotted before the new rows replace it
	var snapAt, replAt int
	for i, step := range repo.callOrder {
		switch step {
		case "snapshot-breakdowns":
			snapAt = i
		case "replace-breakdowns":
			replAt = i
		}
	}
	if snapAt >= replAt {
		t.Fatalf("snapshot must run before replace, order: %v", repo.callOrder)
	}

	bs := repo.replaced[42]
	if len(bs) != 2 {
		t.Fatalf("expected 2 breakdowns, got %+v", bs)
	}
	if bs[0].Category != "Temizlik" || bs[0].Positive == nil || *bs[0].Positive != 3 {
		t.Fatalf("nested counts not mapped: %+v", bs[0])
	}
	if bs[1].Rating == nil || *bs[1].Rating != 4.1 {
		t.Fatalf("aliased score not mapped: %+v", bs[1])
	}

	// mentions normalized: Turkish polarity word, default count of 1
	if shopper.mentionCount != 25 {
		t.Fatalf("mention count = %d, want 25 passed through", shopper.mentionCount)
	}
	if len(repo.mentions) != 2 {
		t.Fatalf("expected 2 mentions, got %+v", repo.mentions)
	}
	if m := repo.mentions[0]; m.Polarity != domain.MentionNegative || m.Count != 7 {
		t.Fatalf("unexpected first mention: %+v", m)
	}
	if m := repo.mentions[1]; m.Polarity != domain.MentionPositive || m.Count != 1 {
		t.Fatalf("unexpected second mention: %+v", m)
	}

	// cached analyses for the property are gone in every language
	for _, key := range []string{"analysis:42:en", "analysis:42:tr", "ratings:42"} {
		if !containsKey(cache.dels, key) {
			t.Fatalf("expected %s to be invalidated, dels: %v", key, cache.dels)
		}
	}
	if len(repo.misses) != 0 {
		t.Fatalf("unexpected misses: %+v", repo.misses)
	}
}

func TestScanProperty_NotFoundIsAMiss(t *testing.T) {
	shopper := &fakeShopper{propErr: errors.New("rateshopper: not found")}
	repo := &scanRepo{}
	svc := app.NewScanService(shopper, repo, &recordingCache{})

	if err := svc.ScanProperty(context.Background(), 99, 10); err != nil {
		t.Fatalf("404 should not fail the scan: %v", err)
	}
	if len(repo.misses) != 1 || repo.misses[0] != (miss{99, 404, "not found"}) {
		t.Fatalf("unexpected misses: %+v", repo.misses)
	}
	if len(repo.hotels) != 0 {
		t.Fatalf("nothing should be upserted on a miss")
	}
}

func TestScanProperty_ForbiddenIsAMiss(t *testing.T) {
	shopper := &fakeShopper{propErr: errors.New("rateshopper: forbidden")}
	repo := &scanRepo{}
	svc := app.NewScanService(shopper, repo, &recordingCache{})

	if err := svc.ScanProperty(context.Background(), 99, 10); err != nil {
		t.Fatalf("403 should not fail the scan: %v", err)
	}
	if len(repo.misses) != 1 || repo.misses[0] != (miss{99, 403, "inactive"}) {
		t.Fatalf("unexpected misses: %+v", repo.misses)
	}
}

func TestScanProperty_UnexpectedErrorBubbles(t *testing.T) {
	shopper := &fakeShopper{propErr: errors.New("remote 500")}
	repo := &scanRepo{}
	svc := app.NewScanService(shopper, repo, &recordingCache{})

	if err := svc.ScanProperty(context.Background(), 99, 10); err == nil {
		t.Fatalf("5xx must bubble up")
	}
	if len(repo.misses) != 0 {
		t.Fatalf("5xx is not a miss: %+v", repo.misses)
	}
}

func TestScanProperty_SentimentMissIsBestEffort(t *testing.T) {
	shopper := &fakeShopper{
		property: map[string]any{"property_id": float64(7), "name": "Hotel Pera"},
		sentErr:  errors.New("rateshopper: not found"),
		mentions: []map[string]any{
			{"keyword": "noisy", "polarity": "negative", "count": float64(2)},
		},
	}
	repo := &scanRepo{}
	svc := app.NewScanService(shopper, repo, &recordingCache{})

	if err := svc.ScanProperty(context.Background(), 7, 10); err != nil {
		t.Fatalf("sentiment 404 should not fail the scan: %v", err)
	}
	if len(repo.misses) != 1 || repo.misses[0] != (miss{7, 404, "sentiment"}) {
		t.Fatalf("unexpected misses: %+v", repo.misses)
	}
	if len(repo.replaced) != 0 {
		t.Fatalf("breakdowns must not be touched on a sentiment miss")
	}
	// mentions still flow
	if len(repo.mentions) != 1 {
		t.Fatalf("mentions should still be ingested, got %+v", repo.mentions)
	}
}
