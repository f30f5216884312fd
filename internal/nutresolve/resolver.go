package nutresolve

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/normalize"
	"github.com/mealpath/mealplan-engine/internal/nutrition"
	"github.com/mealpath/mealplan-engine/internal/registry"
	"github.com/mealpath/mealplan-engine/pkg/cache"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
	"github.com/mealpath/mealplan-engine/pkg/retry"
	"github.com/mealpath/mealplan-engine/pkg/workerpool"
)

// Tolerances bounds how far an external provider's reported macros may
// drift from the registry's expected fingerprint before the row is
// rejected outright (§4.5).
type Tolerances struct {
	KcalPct  float64
	MacroPct float64
}

// Resolver implements C5's full tiered lookup: hot path, canonical,
// external barcode, external query. The two offline tiers are trusted
// as audited at load time; both external tiers pass the same
// fingerprint check.
type Resolver struct {
	offline    *nutrition.Offline
	registry   *registry.Registry
	cache      Cache
	providers  []Provider
	retryer    *retry.Policy
	tolerances Tolerances
	cachePrefix string
	freshDur   time.Duration
	hardDur    time.Duration
	log        *applogger.Logger
}

func New(offline *nutrition.Offline, reg *registry.Registry, c Cache, providers []Provider, tol Tolerances, freshTTL, hardTTL time.Duration, log *applogger.Logger) *Resolver {
	return &Resolver{
		offline:    offline,
		registry:   reg,
		cache:      c,
		providers:  providers,
		retryer:    retry.NewExponential(3, 100*time.Millisecond, 2*time.Second),
		tolerances: tol,
		cachePrefix: "nutrition",
		freshDur:   freshTTL,
		hardDur:    hardTTL,
		log:        log.Tag("nutresolve"),
	}
}

// Request is one CID's resolution ask, fed into ResolveAll.
type Request struct {
	CID           string
	NormalizedKey string
	Barcode       string
}

// Result is one CID's resolution outcome.
type Result struct {
	CID    string
	Row    domain.NutritionRow
	Source domain.NutritionSource
	Err    error
}

// Resolve runs the full tiered lookup for a single ingredient.
func (r *Resolver) Resolve(ctx context.Context, req Request) (domain.NutritionRow, domain.NutritionSource, error) {
	if row, src, ok := r.lookupOffline(req.NormalizedKey); ok {
		return row, src, nil
	}

	expected, hasExpected := r.registry.ExpectedFingerprint(req.CID)

	if req.Barcode != "" {
		if row, ok := r.lookupExternal(ctx, "barcode:"+req.CID, func(ctx context.Context) (domain.NutritionRow, string, error) {
			return r.fetchByBarcode(ctx, req.Barcode)
		}, expected, hasExpected); ok {
			return row, row.Source, nil
		}
	}

	if row, ok := r.lookupExternal(ctx, "query:"+req.CID, func(ctx context.Context) (domain.NutritionRow, string, error) {
		return r.fetchByQuery(ctx, req.NormalizedKey)
	}, expected, hasExpected); ok {
		return row, row.Source, nil
	}

	return domain.NutritionRow{}, "", fmt.Errorf("nutresolve: no provider produced a fingerprint-valid row for cid %q", req.CID)
}

// ResolveAll fans Resolve out across a bounded worker pool, never
// short-circuiting on a single CID's failure (§4.5, §7 all-settled).
func (r *Resolver) ResolveAll(ctx context.Context, workers int, reqs []Request) []Result {
	tasks := make([]workerpool.Task[Result], len(reqs))
	for i, req := range reqs {
		req := req
		tasks[i] = func(ctx context.Context) workerpool.Outcome[Result] {
			row, src, err := r.Resolve(ctx, req)
			res := Result{CID: req.CID, Row: row, Source: src, Err: err}
			if err != nil {
				return workerpool.Outcome[Result]{Value: res, Err: err, Success: false}
			}
			return workerpool.Outcome[Result]{Value: res, Success: true}
		}
	}
	outcomes := workerpool.Run(ctx, workers, tasks)
	results := make([]Result, len(outcomes))
	for i, o := range outcomes {
		results[i] = o.Value
	}
	return results
}

func (r *Resolver) lookupOffline(normalizedKey string) (domain.NutritionRow, domain.NutritionSource, bool) {
	if row, src, ok := r.offline.Lookup(normalizedKey); ok {
		return row, src, true
	}
	for _, cand := range normalize.FuzzyCandidates(normalizedKey) {
		if row, src, ok := r.offline.Lookup(cand); ok {
			return row, src, true
		}
	}
	return domain.NutritionRow{}, "", false
}

type fetchFunc func(ctx context.Context) (domain.NutritionRow, string, error)

// lookupExternal wraps a provider fetch with the SWR cache: fresh
// hits return immediately, stale hits return immediately while
// triggering at most one background refresh (P6), and miss/expired
// block on a synchronous refresh.
func (r *Resolver) lookupExternal(ctx context.Context, cacheKey string, fetch fetchFunc, expected domain.Macros, hasExpected bool) (domain.NutritionRow, bool) {
	var cached domain.NutritionRow
	state, err := r.cache.Get(ctx, r.cachePrefix+":"+cacheKey, &cached)
	if err == nil {
		switch state {
		case cache.Fresh:
			return cached, true
		case cache.Stale:
			if r.cache.TryBeginRefresh(cacheKey) {
				go func() {
					defer r.cache.EndRefresh(cacheKey)
					r.refreshAndCache(context.Background(), cacheKey, fetch, expected, hasExpected)
				}()
			}
			return cached, true
		}
	}

	row, ok := r.refreshAndCache(ctx, cacheKey, fetch, expected, hasExpected)
	return row, ok
}

func (r *Resolver) refreshAndCache(ctx context.Context, cacheKey string, fetch fetchFunc, expected domain.Macros, hasExpected bool) (domain.NutritionRow, bool) {
	var result domain.NutritionRow
	var source string
	err := r.retryer.Execute(ctx, func(attempt int) error {
		row, src, ferr := fetch(ctx)
		if ferr != nil {
			return ferr
		}
		if hasExpected && !fingerprintOK(row, expected, r.tolerances) {
			return fmt.Errorf("nutresolve: fingerprint mismatch for %s", cacheKey)
		}
		result, source = row, src
		return nil
	})
	if err != nil {
		r.log.Warn("external nutrition lookup failed", "cache_key", cacheKey, "error", err.Error())
		return domain.NutritionRow{}, false
	}
	result.Source = domain.NutritionSource(source)
	_ = r.cache.Set(ctx, r.cachePrefix+":"+cacheKey, result, r.freshDur, r.hardDur)
	return result, true
}

func (r *Resolver) fetchByBarcode(ctx context.Context, barcode string) (domain.NutritionRow, string, error) {
	var lastErr error
	for _, p := range r.providers {
		row, err := p.FetchByBarcode(ctx, barcode)
		if err == nil {
			return row, string(domain.SourceExternalBarcode), nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("nutresolve: no providers configured")
	}
	return domain.NutritionRow{}, "", lastErr
}

func (r *Resolver) fetchByQuery(ctx context.Context, query string) (domain.NutritionRow, string, error) {
	var lastErr error
	for _, p := range r.providers {
		row, err := p.FetchByQuery(ctx, query)
		if err == nil {
			return row, string(domain.SourceExternalQuery), nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("nutresolve: no providers configured")
	}
	return domain.NutritionRow{}, "", lastErr
}

// fingerprintOK checks every macro (and kcal) is within its configured
// percentage tolerance of the registry's expectation; a zero expected
// value is only acceptable if the actual value is also near zero.
func fingerprintOK(row domain.NutritionRow, expected domain.Macros, tol Tolerances) bool {
	checks := []struct {
		actual, exp, pct float64
	}{
		{row.KcalPer100g, expected.Kcal, tol.KcalPct},
		{row.ProteinPer100g, expected.Protein, tol.MacroPct},
		{row.FatPer100g, expected.Fat, tol.MacroPct},
		{row.CarbPer100g, expected.Carb, tol.MacroPct},
	}
	for _, c := range checks {
		if c.exp <= 0 {
			if c.actual > 1 {
				return false
			}
			continue
		}
		if math.Abs(c.actual-c.exp)/c.exp > c.pct {
			return false
		}
	}
	return true
}
