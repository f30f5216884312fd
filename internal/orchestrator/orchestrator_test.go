package orchestrator

import (
	"context"
	"testing"

	"github.com/mealpath/mealplan-engine/internal/contract"
	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/llm"
	"github.com/mealpath/mealplan-engine/internal/marketrun"
	"github.com/mealpath/mealplan-engine/internal/nutresolve"
	"github.com/mealpath/mealplan-engine/internal/nutrition"
	"github.com/mealpath/mealplan-engine/internal/registry"
	"github.com/mealpath/mealplan-engine/pkg/cache"
	"github.com/mealpath/mealplan-engine/pkg/events"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
	"github.com/shopspring/decimal"
	"time"
)

// allGoodFetcher answers every query in the registry's ladder for
// every CID it knows about with one plausible, validator-passing SKU,
// so the market run always reaches discovery.
type allGoodFetcher struct {
	reg *registry.Registry
}

func (f *allGoodFetcher) FetchPrices(ctx context.Context, store, query string, page int) ([]domain.SKUCandidate, error) {
	for _, cid := range knownCIDs {
		spec, ok := f.reg.Spec(cid)
		if !ok {
			continue
		}
		queries, err := f.reg.BuildQueries(cid)
		if err != nil || len(queries) == 0 {
			continue
		}
		if query != queries[0].Query {
			continue
		}
		size := 500.0
		if len(spec.TypicalPackSizesG) > 0 {
			size = spec.TypicalPackSizesG[0]
		}
		price := decimal.NewFromFloat(5.0)
		unitPrice := price.Div(decimal.NewFromFloat(size)).Mul(decimal.NewFromInt(100))
		title := spec.DisplayName
		for _, must := range spec.MustInclude {
			title = title + " " + must
		}
		return []domain.SKUCandidate{{
			Title: title, Category: firstOr(spec.AllowedStoreCategories, "grocery"),
			Price: price, Size: domain.Size{Value: size, Unit: domain.SizeGram},
			URL: "http://store/" + cid, UnitPricePer100: unitPrice,
		}}, nil
	}
	return nil, nil
}

func firstOr(vs []string, def string) string {
	if len(vs) > 0 {
		return vs[0]
	}
	return def
}

var knownCIDs = []string{
	"chicken_breast", "white_rice", "broccoli", "salmon_fillet", "sweet_potato",
	"spinach", "egg", "oats", "banana", "honey",
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (cache.State, error) {
	return cache.Miss, nil
}
func (noopCache) Set(ctx context.Context, key string, value interface{}, freshTTL, hardTTL time.Duration) error {
	return nil
}
func (noopCache) TryBeginRefresh(key string) bool { return true }
func (noopCache) EndRefresh(key string)           {}

func buildOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	reg := registry.New()
	log := applogger.NewNop()
	fetcher := &allGoodFetcher{reg: reg}
	runner := marketrun.New(reg, fetcher, "S1", 5, log)
	offline := nutrition.NewOffline()
	resolver := nutresolve.New(offline, reg, noopCache{}, nil, nutresolve.Tolerances{KcalPct: 0.2, MacroPct: 0.25}, time.Hour, 24*time.Hour, log)
	return New(contractLimits(), reg, llm.NewStub(), runner, resolver, 5, log)
}

func contractLimits() contract.Limits {
	return contract.Limits{
		ProteinMaxGPerKg: 2.8, FatMaxMultiple: 1.5, CarbMinMultiple: 0.8, MinKcal: 1200,
		KcalPct: 0.03, MacroPct: 0.08, CarbFloorPct: 0.8,
	}
}

type discardSink struct{}

func (discardSink) Publish(ctx context.Context, e events.Event)  {}
func (discardSink) PublishFinal(ctx context.Context, data interface{}) {}
func (discardSink) Close()                                        {}

func TestRunBaselineLeanBulkProducesPlausibleDailyMacros(t *testing.T) {
	o := buildOrchestrator(t)
	profile := domain.Profile{
		HeightCM: 187, WeightKG: 73, Age: 23, Sex: domain.SexMale,
		Activity: domain.ActivityActive, Goal: domain.GoalBulkLean,
		Days: 1, EatingOccasions: 3, Store: "S1",
	}

	resp, fail := o.Run(context.Background(), profile, discardSink{})
	if fail != nil {
		t.Fatalf("expected success, got failure %+v", fail)
	}
	if len(resp.MealPlan) != 1 {
		t.Fatalf("expected 1 day, got %d", len(resp.MealPlan))
	}
	if len(resp.UniqueIngredients) == 0 {
		t.Fatal("expected at least one resolved ingredient")
	}
	if resp.Contract.Kcal <= 0 {
		t.Fatal("expected a positive kcal target")
	}
}

func TestRunRejectsMacroInfeasibleProfileBeforeSketching(t *testing.T) {
	o := buildOrchestrator(t)
	o.limits.MinKcal = 0
	o.limits.CarbMinMultiple = 6.0
	o.limits.ProteinMaxGPerKg = 0.1
	o.limits.FatMaxMultiple = 0.05

	profile := domain.Profile{
		HeightCM: 150, WeightKG: 40, Age: 55, Sex: domain.SexFemale,
		Activity: domain.ActivitySedentary, Goal: domain.GoalCutAggressive,
		Days: 1, EatingOccasions: 3, Store: "S1",
	}

	resp, fail := o.Run(context.Background(), profile, discardSink{})
	if resp != nil {
		t.Fatalf("expected no response, got %+v", resp)
	}
	if fail == nil || fail.Error != "CARBS_TOO_LOW" {
		t.Fatalf("expected CARBS_TOO_LOW failure, got %+v", fail)
	}
}

func TestRunRejectsBlueprintWithUnknownIngredient(t *testing.T) {
	o := buildOrchestrator(t)
	badCollaborator := fixedSketchCollaborator{days: []domain.DayPlan{
		{Day: 1, Meals: []domain.Meal{
			{MealID: "d1-B", Type: domain.MealBreakfast, Title: "Breakfast", Items: []domain.PlannedIngredient{
				{DisplayName: "unobtainium dust", QtyValue: 100, QtyUnit: domain.UnitGram},
			}},
		}},
	}}
	o.collaborator = badCollaborator

	profile := domain.Profile{
		HeightCM: 180, WeightKG: 80, Age: 30, Sex: domain.SexMale,
		Activity: domain.ActivityModerate, Goal: domain.GoalMaintain,
		Days: 1, EatingOccasions: 3, Store: "S1",
	}
	resp, fail := o.Run(context.Background(), profile, discardSink{})
	if resp != nil {
		t.Fatal("expected no response for an unresolvable ingredient")
	}
	if fail == nil || fail.Error != "BLUEPRINT_INVALID" {
		t.Fatalf("expected BLUEPRINT_INVALID, got %+v", fail)
	}
}

type fixedSketchCollaborator struct{ days []domain.DayPlan }

func (f fixedSketchCollaborator) Sketch(ctx context.Context, profile domain.Profile, contract domain.MacroContract) ([]domain.DayPlan, error) {
	return f.days, nil
}

// noStockFetcher never returns a candidate, so every CID's market run
// ends in OutcomeFailed and any resolved nutrition must have come
// through the canonical-fallback path.
type noStockFetcher struct{}

func (noStockFetcher) FetchPrices(ctx context.Context, store, query string, page int) ([]domain.SKUCandidate, error) {
	return nil, nil
}

func TestRunFallsBackToCanonicalNutritionWhenNoSKUFound(t *testing.T) {
	reg := registry.New()
	log := applogger.NewNop()
	runner := marketrun.New(reg, noStockFetcher{}, "S1", 5, log)
	offline := nutrition.NewOffline()
	resolver := nutresolve.New(offline, reg, noopCache{}, nil, nutresolve.Tolerances{KcalPct: 0.2, MacroPct: 0.25}, time.Hour, 24*time.Hour, log)
	o := New(contractLimits(), reg, llm.NewStub(), runner, resolver, 5, log)
	// A day made of chicken breast alone would otherwise blow past the
	// default protein/fat hard caps; loosen them so this test's failure
	// mode, if any, is isolated to the canonical-fallback wiring.
	o.limits.ProteinMaxGPerKg = 10
	o.limits.FatMaxMultiple = 10
	o.limits.CarbMinMultiple = 0

	badCollaborator := fixedSketchCollaborator{days: []domain.DayPlan{
		{Day: 1, Meals: []domain.Meal{
			{MealID: "d1-B", Type: domain.MealBreakfast, Title: "Breakfast", Items: []domain.PlannedIngredient{
				{DisplayName: "chicken breast", CID: "chicken_breast", NormalizedKey: "chicken_breast", QtyValue: 150, QtyUnit: domain.UnitGram},
			}},
		}},
	}}
	o.collaborator = badCollaborator

	profile := domain.Profile{
		HeightCM: 180, WeightKG: 80, Age: 30, Sex: domain.SexMale,
		Activity: domain.ActivityModerate, Goal: domain.GoalMaintain,
		Days: 1, EatingOccasions: 1, Store: "S1",
	}
	resp, fail := o.Run(context.Background(), profile, discardSink{})
	if fail != nil {
		t.Fatalf("expected a response despite no SKU being found, got failure %+v", fail)
	}
	ri, ok := resp.Results["chicken_breast"]
	if !ok {
		t.Fatal("expected chicken_breast in results")
	}
	if ri.ChosenSKU != nil {
		t.Fatalf("expected no chosen SKU, got %+v", ri.ChosenSKU)
	}
	if ri.NutritionPer100g == nil {
		t.Fatal("expected nutrition to be resolved via canonical fallback")
	}

	var summary *IngredientSummary
	for i := range resp.UniqueIngredients {
		if resp.UniqueIngredients[i].CID == "chicken_breast" {
			summary = &resp.UniqueIngredients[i]
		}
	}
	if summary == nil {
		t.Fatal("expected chicken_breast in uniqueIngredients")
	}
	if summary.QuantityUnits != domain.UnitGram {
		t.Fatalf("expected quantity_units to be carried through, got %q", summary.QuantityUnits)
	}
}
