package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukahq/duka-backend/pkg/logger"
)

type memoryCounterStore struct {
	counts map[string]int64
}

func newCounterStore() *memoryCounterStore {
	return &memoryCounterStore{counts: map[string]int64{}}
}

func (s *memoryCounterStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.counts[key]++
	return s.counts[key], nil
}

func rateLimitedHandler(policy RateLimitPolicy, store *memoryCounterStore) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test"})
	var next http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return RateLimit(policy, store, logg)(next)
}

func TestRateLimitBlocksAfterIPLimit(t *testing.T) {
	store := newCounterStore()
	handler := rateLimitedHandler(NewRateLimitPolicy("onboarding", time.Minute, 2, 0), store)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding/complete", nil)
		req.RemoteAddr = "203.0.113.9:4410"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding/complete", nil)
	req.RemoteAddr = "203.0.113.9:4410"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the limit, got %d", rec.Code)
	}
}

func TestRateLimitSeparatesClients(t *testing.T) {
	store := newCounterStore()
	handler := rateLimitedHandler(NewRateLimitPolicy("onboarding", time.Minute, 1, 0), store)

	for _, addr := range []string{"203.0.113.9:1000", "198.51.100.7:1000"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("addr %s: expected 200, got %d", addr, rec.Code)
		}
	}
}

func TestRateLimitUsesForwardedForHeader(t *testing.T) {
	store := newCounterStore()
	handler := rateLimitedHandler(NewRateLimitPolicy("onboarding", time.Minute, 1, 0), store)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1:1000"
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if i == 0 && rec.Code != http.StatusOK {
			t.Fatalf("first request: expected 200, got %d", rec.Code)
		}
		if i == 1 && rec.Code != http.StatusTooManyRequests {
			t.Fatalf("second request: expected 429, got %d", rec.Code)
		}
	}
}

func TestRateLimitPerUser(t *testing.T) {
	store := newCounterStore()
	handler := rateLimitedHandler(NewRateLimitPolicy("onboarding", time.Minute, 0, 1), store)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "203.0.113.9:1000"
		req = req.WithContext(WithUserID(req.Context(), "user-1"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if i == 0 && rec.Code != http.StatusOK {
			t.Fatalf("first request: expected 200, got %d", rec.Code)
		}
		if i == 1 && rec.Code != http.StatusTooManyRequests {
			t.Fatalf("second request: expected 429, got %d", rec.Code)
		}
	}
}

func TestRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	store := newCounterStore()
	handler := rateLimitedHandler(NewRateLimitPolicy("noop", 0, 0, 0), store)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
	if len(store.counts) != 0 {
		t.Fatalf("disabled policy must not touch the store, got %d keys", len(store.counts))
	}
}
