package priceclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/pkg/cache"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
	"github.com/mealpath/mealplan-engine/pkg/ratelimit"
)

type fakeCache struct {
	mu       sync.Mutex
	values   map[string][]domain.SKUCandidate
	inflight map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string][]domain.SKUCandidate{}, inflight: map[string]bool{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (cache.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return cache.Miss, nil
	}
	*dest.(*[]domain.SKUCandidate) = v
	return cache.Fresh, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, freshTTL, hardTTL time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value.([]domain.SKUCandidate)
	return nil
}

func (f *fakeCache) TryBeginRefresh(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inflight[key] {
		return false
	}
	f.inflight[key] = true
	return true
}

func (f *fakeCache) EndRefresh(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inflight, key)
}

func testConfig() Config {
	return Config{
		HTTPTimeout:         2 * time.Second,
		MaxRetries:          2,
		RateLimitRetryDelay: 10 * time.Millisecond,
		FreshTTL:            time.Hour,
		HardTTL:             3 * time.Hour,
		PageSize:            20,
	}
}

func newTestBucket() *ratelimit.TokenBucket {
	return ratelimit.New(nil, "test", ratelimit.Config{Capacity: 10, RefillRate: 100, MaxWait: 50 * time.Millisecond})
}

func TestFetchPricesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]searchResponseItem{
			{Title: "Chicken Breast 500g", Price: "5.99", SizeVal: 500, SizeUnit: "g", URL: "http://store/1"},
		})
	}))
	defer srv.Close()

	provider := NewHTTPSearchProvider("teststore", srv.URL, srv.Client(), nil)
	client := New([]SearchProvider{provider}, newTestBucket(), newFakeCache(), testConfig(), applogger.NewNop())

	results, err := client.FetchPrices(context.Background(), "teststore", "chicken breast", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Title != "Chicken Breast 500g" {
		t.Fatalf("unexpected title: %v", results[0].Title)
	}
}

func TestFetchPricesUnknownStore(t *testing.T) {
	client := New(nil, newTestBucket(), newFakeCache(), testConfig(), applogger.NewNop())
	_, err := client.FetchPrices(context.Background(), "nowhere", "q", 1)
	if err == nil {
		t.Fatal("expected error for unconfigured store")
	}
}

func TestFetchPricesRetriesOn5xxThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]searchResponseItem{
			{Title: "OK", Price: "1.00", SizeVal: 100, SizeUnit: "g", URL: "http://store/ok"},
		})
	}))
	defer srv.Close()

	provider := NewHTTPSearchProvider("teststore", srv.URL, srv.Client(), nil)
	client := New([]SearchProvider{provider}, newTestBucket(), newFakeCache(), testConfig(), applogger.NewNop())

	results, err := client.FetchPrices(context.Background(), "teststore", "q", 1)
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result after retry, got %d", len(results))
	}
	if calls < 2 {
		t.Fatalf("expected at least 2 calls, got %d", calls)
	}
}

func TestFetchPricesBadRequestNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	provider := NewHTTPSearchProvider("teststore", srv.URL, srv.Client(), nil)
	client := New([]SearchProvider{provider}, newTestBucket(), newFakeCache(), testConfig(), applogger.NewNop())

	_, err := client.FetchPrices(context.Background(), "teststore", "q", 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 call for a non-retryable error, got %d", calls)
	}
}

func TestFetchPricesCachesResult(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]searchResponseItem{
			{Title: "Cached Item", Price: "2.50", SizeVal: 200, SizeUnit: "g", URL: "http://store/cached"},
		})
	}))
	defer srv.Close()

	provider := NewHTTPSearchProvider("teststore", srv.URL, srv.Client(), nil)
	cch := newFakeCache()
	client := New([]SearchProvider{provider}, newTestBucket(), cch, testConfig(), applogger.NewNop())

	if _, err := client.FetchPrices(context.Background(), "teststore", "q", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.FetchPrices(context.Background(), "teststore", "q", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single upstream call thanks to caching, got %d", calls)
	}
}
