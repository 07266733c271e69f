package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "ratewatch/internal/adapters/redis"
)

type view struct {
	Name  string   `json:"name"`
	Score *float64 `json:"score,omitempty"`
}

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var out view
	ok, err := c.Get(ctx, "analysis:1:en", &out)
	if err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	score := 4.5
	if err := c.Set(ctx, "analysis:1:en", view{Name: "Bosphorus", Score: &score}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	ok, err = c.Get(ctx, "analysis:1:en", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if out.Name != "Bosphorus" || out.Score == nil || *out.Score != 4.5 {
		t.Fatalf("value did not round-trip: %+v", out)
	}

	if ttl := mr.TTL("analysis:1:en"); ttl != 60*time.Second {
		t.Fatalf("ttl = %v, want 60s", ttl)
	}

	if err := c.Del(ctx, "analysis:1:en"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "analysis:1:en", &out); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_ExpiredKeyIsAMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "ratings:7", view{Name: "Galata"}, 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var out view
	if ok, err := c.Get(ctx, "ratings:7", &out); ok || err != nil {
		t.Fatalf("expected expiry miss, got ok=%v err=%v", ok, err)
	}
}
