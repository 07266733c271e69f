package rateshopper_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ratewatch/internal/adapters/rateshopper"
)

func TestClient_GetProperty_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(map[string]any{"property_id": 123.0})
		}
	}))
	defer ts.Close()

	cl, err := rateshopper.New(ts.URL, "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := cl.GetProperty(ctx, 123)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	id, ok := got["property_id"].(float64)
	if !ok || int(id) != 123 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_GetSentiment_FallsBackToLegacyPath(t *testing.T) {
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/property/9/sentiment" {
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode([]map[string]any{{"category": "Cleanliness", "score": 4.2}})
			return
		}
		w.WriteHeader(404)
	}))
	defer ts.Close()

	cl, _ := rateshopper.New(ts.URL, "test-key", 100)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rows, err := cl.GetSentiment(ctx, 9)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 1 || rows[0]["category"] != "Cleanliness" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if len(paths) != 3 {
		t.Fatalf("expected all 3 candidate paths to be tried in order, got %v", paths)
	}
}

func TestClient_GetMentions_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := rateshopper.New(ts.URL, "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = cl.GetMentions(ctx, 1, 10)
	if !errors.Is(err, rateshopper.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Forbidden_StopsWithoutFallback(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(403)
	}))
	defer ts.Close()

	cl, _ := rateshopper.New(ts.URL, "test-key", 100)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := cl.GetProperty(ctx, 1)
	if !errors.Is(err, rateshopper.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("403 must not retry or fall back, got %d hits", hits)
	}
}

func TestClient_SendsAPIKey(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.WriteHeader(200)
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer ts.Close()

	cl, _ := rateshopper.New(ts.URL, "secret-key", 100)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := cl.GetProperty(ctx, 5); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotKey != "secret-key" {
		t.Fatalf("API key header = %q", gotKey)
	}
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := rateshopper.New("http://example.test", "", 5); err == nil {
		t.Fatalf("expected error for missing API key")
	}
}
