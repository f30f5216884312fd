package nutresolve

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/nutrition"
	"github.com/mealpath/mealplan-engine/internal/registry"
	"github.com/mealpath/mealplan-engine/pkg/cache"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
)

// fakeCache is an in-memory stand-in for pkg/cache.SWRCache, since
// tests can't stand up Redis.
type fakeCache struct {
	mu       sync.Mutex
	values   map[string]domain.NutritionRow
	inflight map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]domain.NutritionRow{}, inflight: map[string]bool{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (cache.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return cache.Miss, nil
	}
	*dest.(*domain.NutritionRow) = v
	return cache.Fresh, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, freshTTL, hardTTL time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value.(domain.NutritionRow)
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

type fakeProvider struct {
	name    string
	barcode func(ctx context.Context, barcode string) (domain.NutritionRow, error)
	query   func(ctx context.Context, query string) (domain.NutritionRow, error)
}

func (f *fakeProvider) Name() string { return f.name }
func (f *fakeProvider) FetchByBarcode(ctx context.Context, barcode string) (domain.NutritionRow, error) {
	if f.barcode != nil {
		return f.barcode(ctx, barcode)
	}
	return domain.NutritionRow{}, fmt.Errorf("no barcode support")
}
func (f *fakeProvider) FetchByQuery(ctx context.Context, query string) (domain.NutritionRow, error) {
	if f.query != nil {
		return f.query(ctx, query)
	}
	return domain.NutritionRow{}, fmt.Errorf("no query support")
}

func defaultTolerances() Tolerances {
	return Tolerances{KcalPct: 0.20, MacroPct: 0.25}
}

func TestResolveHitsOfflineFirst(t *testing.T) {
	r := New(nutrition.NewOffline(), registry.New(), newFakeCache(), nil, defaultTolerances(), time.Hour, 3*time.Hour, applogger.NewNop())
	row, src, err := r.Resolve(context.Background(), Request{CID: "chicken_breast", NormalizedKey: "chicken_breast"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != domain.SourceHotPath {
		t.Fatalf("expected hotpath source, got %v", src)
	}
	if row.ProteinPer100g <= 0 {
		t.Fatalf("expected positive protein, got %v", row)
	}
}

func TestResolveFallsBackToExternalQueryWithValidFingerprint(t *testing.T) {
	provider := &fakeProvider{
		name: "test_provider",
		query: func(ctx context.Context, query string) (domain.NutritionRow, error) {
			return domain.NutritionRow{KcalPer100g: 884, ProteinPer100g: 0, FatPer100g: 100, CarbPer100g: 0}, nil
		},
	}
	reg := registry.New()
	r := New(nutrition.NewOffline(), reg, newFakeCache(), []Provider{provider}, defaultTolerances(), time.Hour, 3*time.Hour, applogger.NewNop())

	// olive_oil is in the hot path already, so force a miss by using an
	// unregistered-but-fingerprint-known CID shape isn't possible here;
	// instead exercise the CID registered for olive_oil fingerprint but
	// bypass hot path entirely to hit the external branch.
	row, src, err := r.Resolve(context.Background(), Request{CID: "olive_oil", NormalizedKey: "not_a_hotpath_key_xyz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != domain.SourceExternalQuery {
		t.Fatalf("expected external_query source, got %v", src)
	}
}

func TestResolveRejectsFingerprintMismatch(t *testing.T) {
	provider := &fakeProvider{
		name: "bad_provider",
		query: func(ctx context.Context, query string) (domain.NutritionRow, error) {
			// Wildly wrong for olive oil (expects ~884 kcal, 100g fat).
			return domain.NutritionRow{KcalPer100g: 50, ProteinPer100g: 5, FatPer100g: 1, CarbPer100g: 5}, nil
		},
	}
	reg := registry.New()
	r := New(nutrition.NewOffline(), reg, newFakeCache(), []Provider{provider}, defaultTolerances(), time.Hour, 3*time.Hour, applogger.NewNop())

	_, _, err := r.Resolve(context.Background(), Request{CID: "olive_oil", NormalizedKey: "not_a_hotpath_key_xyz"})
	if err == nil {
		t.Fatal("expected fingerprint mismatch to produce an error")
	}
}

func TestResolveAllNeverShortCircuits(t *testing.T) {
	r := New(nutrition.NewOffline(), registry.New(), newFakeCache(), nil, defaultTolerances(), time.Hour, 3*time.Hour, applogger.NewNop())
	reqs := []Request{
		{CID: "chicken_breast", NormalizedKey: "chicken_breast"},
		{CID: "unknown_cid", NormalizedKey: "totally_unknown_xyz"},
		{CID: "broccoli", NormalizedKey: "broccoli"},
	}
	results := r.ResolveAll(context.Background(), 2, reqs)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("expected known CIDs to succeed: %+v / %+v", results[0], results[2])
	}
	if results[1].Err == nil {
		t.Fatal("expected unknown CID to fail without aborting the others")
	}
}
