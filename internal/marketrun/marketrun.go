// Package marketrun implements C8: per-ingredient execution of the
// query ladder against the price client, validation of every
// candidate, and selection of the cheapest-by-unit-price survivor —
// fanned out across a fixed worker pool that never lets one
// ingredient's failure abort its peers (§4.8).
package marketrun

import (
	"context"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/normalize"
	"github.com/mealpath/mealplan-engine/internal/registry"
	"github.com/mealpath/mealplan-engine/internal/validator"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
	"github.com/mealpath/mealplan-engine/pkg/metrics"
	"github.com/mealpath/mealplan-engine/pkg/workerpool"
)

// PriceFetcher is the subset of priceclient.Client the runner depends
// on, narrowed to an interface so tests don't need a live HTTP server.
type PriceFetcher interface {
	FetchPrices(ctx context.Context, store, query string, page int) ([]domain.SKUCandidate, error)
}

// skipHeuristicScore is the per-candidate score threshold: once the
// tight rung alone produces a score at or above this, the ladder stops
// without trying the wider, noisier rungs (§4.8).
const skipHeuristicScore = 1.0

const searchPage = 1

// Runner executes the market run for a set of CIDs.
type Runner struct {
	registry *registry.Registry
	client   PriceFetcher
	store    string
	workers  int
	log      *applogger.Logger
}

func New(reg *registry.Registry, client PriceFetcher, store string, workers int, log *applogger.Logger) *Runner {
	return &Runner{registry: reg, client: client, store: store, workers: workers, log: log.Tag("marketrun")}
}

// Run fans the per-CID resolution out across the worker pool,
// preserving input order in the returned results.
func (r *Runner) Run(ctx context.Context, cids []string) []domain.MarketRunResult {
	tasks := make([]workerpool.Task[domain.MarketRunResult], len(cids))
	for i, cid := range cids {
		cid := cid
		tasks[i] = func(ctx context.Context) workerpool.Outcome[domain.MarketRunResult] {
			result := r.runOne(ctx, cid)
			return workerpool.Outcome[domain.MarketRunResult]{Value: result, Success: result.Kind == domain.OutcomeDiscovery}
		}
	}
	outcomes := workerpool.Run(ctx, r.workers, tasks)
	results := make([]domain.MarketRunResult, len(outcomes))
	for i, o := range outcomes {
		results[i] = o.Value
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, cid string) domain.MarketRunResult {
	result := r.resolveOne(ctx, cid)
	metrics.MarketRunItemsTotal.WithLabelValues(string(result.Kind)).Inc()
	return result
}

func (r *Runner) resolveOne(ctx context.Context, cid string) domain.MarketRunResult {
	spec, ok := r.registry.Spec(cid)
	if !ok {
		return domain.MarketRunResult{CID: cid, Kind: domain.OutcomeError, ErrMessage: "unknown cid"}
	}

	queries, err := r.registry.BuildQueries(cid)
	if err != nil {
		return domain.MarketRunResult{CID: cid, Kind: domain.OutcomeError, ErrMessage: err.Error()}
	}

	var attempts []domain.QueryAttempt
	var rejected []domain.RejectionReason
	var candidates []domain.SKUCandidate
	scoreByURL := make(map[string]float64)
	seenURLs := make(map[string]bool)
	var queryStrings []string
	bestScore := 0.0
	// One memo per CID: every candidate checked across all three rungs
	// validates against the same spec.MustInclude words, so this avoids
	// re-normalizing them once per candidate.
	memo := normalize.NewMemo()

	for _, rung := range queries {
		queryStrings = append(queryStrings, rung.Query)
		results, ferr := r.client.FetchPrices(ctx, r.store, rung.Query, searchPage)
		attempt := domain.QueryAttempt{Rung: string(rung.Rung), Query: rung.Query, ResultCount: len(results)}
		if ferr != nil {
			attempt.Error = ferr.Error()
			attempts = append(attempts, attempt)
			continue
		}
		attempts = append(attempts, attempt)

		for _, sku := range results {
			if sku.URL != "" && seenURLs[sku.URL] {
				continue
			}
			outcome := validator.Validate(sku, spec, memo)
			if !outcome.Pass {
				rejected = append(rejected, domain.RejectionReason{Candidate: sku, Reason: outcome.Reason})
				continue
			}
			if sku.URL != "" {
				seenURLs[sku.URL] = true
				scoreByURL[sku.URL] = outcome.Score
			}
			if outcome.Score > bestScore {
				bestScore = outcome.Score
			}
			candidates = append(candidates, sku)
		}

		if rung.Rung == registry.RungTight && bestScore >= skipHeuristicScore {
			break
		}
	}

	kept, outlierRejections := validator.ApplyPriceOutlierGuard(candidates)
	rejected = append(rejected, outlierRejections...)

	debug := domain.ResolvedDebug{Queries: queryStrings, Attempts: attempts, Rejected: rejected}

	if len(kept) == 0 {
		return domain.MarketRunResult{
			CID:  cid,
			Kind: domain.OutcomeFailed,
			Resolved: domain.ResolvedIngredient{
				CID:   cid,
				Debug: debug,
			},
			ErrMessage: "no validated candidate survived",
		}
	}

	chosen := cheapestByUnitPrice(kept)
	return domain.MarketRunResult{
		CID:  cid,
		Kind: domain.OutcomeDiscovery,
		Resolved: domain.ResolvedIngredient{
			CID:        cid,
			ChosenSKU:  &chosen,
			Confidence: confidenceFor(chosen, spec, scoreByURL),
			Debug:      debug,
		},
	}
}

func cheapestByUnitPrice(candidates []domain.SKUCandidate) domain.SKUCandidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.UnitPricePer100.LessThan(best.UnitPricePer100) {
			best = c
		}
	}
	return best
}

// confidenceFor is the chosen candidate's own validator score — how
// strongly it matched the ingredient spec (§4.7) — falling back to a
// fresh Validate call when the chosen SKU had no URL to key the
// accumulated score map by.
func confidenceFor(chosen domain.SKUCandidate, spec domain.IngredientSpec, scoreByURL map[string]float64) float64 {
	if chosen.URL != "" {
		if s, ok := scoreByURL[chosen.URL]; ok {
			return s
		}
	}
	return validator.Validate(chosen, spec, nil).Score
}
