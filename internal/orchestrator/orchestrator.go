// Package orchestrator implements C12: the single sequencing point
// that runs contract -> sketch -> referential integrity -> market run
// -> nutrition resolve -> portion solver -> ledger, fires progress
// events at each phase boundary, and assembles the one structured
// response spec.md §6 describes (success or typed failure). Every
// other package in this module is a library the orchestrator calls;
// only the orchestrator sequences the phases into one run.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mealpath/mealplan-engine/internal/contract"
	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/ledger"
	"github.com/mealpath/mealplan-engine/internal/llm"
	"github.com/mealpath/mealplan-engine/internal/marketrun"
	"github.com/mealpath/mealplan-engine/internal/nutresolve"
	"github.com/mealpath/mealplan-engine/internal/registry"
	"github.com/mealpath/mealplan-engine/internal/solver"
	apperr "github.com/mealpath/mealplan-engine/pkg/errors"
	"github.com/mealpath/mealplan-engine/pkg/events"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
)

// boosterItems mirrors solver's internal canonical booster recipe
// (rice/banana/honey) so the response can describe a booster meal
// with real display names and ledger-grade nutrition when the solver
// reports FallbackUsed=="booster".
var boosterItems = []solver.ItemInput{
	{CID: "white_rice", BaseGrams: 200, MinG: 100, MaxG: 400, NutritionP100: domain.Macros{Kcal: 130, Protein: 2.7, Fat: 0.3, Carb: 28}},
	{CID: "banana", BaseGrams: 120, MinG: 60, MaxG: 240, NutritionP100: domain.Macros{Kcal: 89, Protein: 1.1, Fat: 0.3, Carb: 23}},
	{CID: "honey", BaseGrams: 30, MinG: 10, MaxG: 60, NutritionP100: domain.Macros{Kcal: 304, Protein: 0.3, Fat: 0, Carb: 82}},
}

// gramsPerUnit approximates non-gram quantities so the solver always
// has a starting mass to scale. ml is treated as 1:1 with grams in
// the absence of a resolved density, which is close enough for the
// watery/liquid ingredients this unit is used for.
var gramsPerUnit = map[domain.QtyUnit]float64{
	domain.UnitGram:   1,
	domain.UnitML:     1,
	domain.UnitSlice:  30,
	domain.UnitEgg:    50,
	domain.UnitMedium: 150,
	domain.UnitLarge:  200,
}

// Orchestrator wires together every stage of a single meal-plan run.
type Orchestrator struct {
	limits          contract.Limits
	registry        *registry.Registry
	collaborator    llm.Collaborator
	marketRunner    *marketrun.Runner
	nutResolver     *nutresolve.Resolver
	resolverWorkers int
	log             *applogger.Logger
}

func New(limits contract.Limits, reg *registry.Registry, collaborator llm.Collaborator, runner *marketrun.Runner, resolver *nutresolve.Resolver, resolverWorkers int, log *applogger.Logger) *Orchestrator {
	return &Orchestrator{
		limits:          limits,
		registry:        reg,
		collaborator:    collaborator,
		marketRunner:    runner,
		nutResolver:     resolver,
		resolverWorkers: resolverWorkers,
		log:             log.Tag("orchestrator"),
	}
}

// ContractSatisfied is the response's verdict on whether the final
// ledger actually met the contract predicate (§4.11/§6).
type ContractSatisfied struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type ItemResponse struct {
	CID         string  `json:"cid"`
	DisplayName string  `json:"display_name"`
	Grams       float64 `json:"grams"`
}

type MealResponse struct {
	MealID      string          `json:"meal_id"`
	Type        domain.MealType `json:"type"`
	Title       string          `json:"title"`
	Items       []ItemResponse  `json:"items"`
	FinalMacros domain.Macros   `json:"final_macros"`
}

type DayResponse struct {
	Day    int            `json:"day"`
	Meals  []MealResponse `json:"meals"`
	Totals domain.Macros  `json:"totals"`
}

type IngredientSummary struct {
	CID           string               `json:"cid"`
	DisplayName   string               `json:"display_name"`
	ChosenSKU     *domain.SKUCandidate `json:"chosen_sku,omitempty"`
	Confidence    float64              `json:"confidence"`
	TotalGrams    float64              `json:"total_grams"`
	QuantityUnits domain.QtyUnit       `json:"quantity_units,omitempty"`
}

// Response is the success shape from spec.md §6.
type Response struct {
	Contract          domain.MacroContract                 `json:"contract"`
	MealPlan          []DayResponse                        `json:"mealPlan"`
	UniqueIngredients []IngredientSummary                  `json:"uniqueIngredients"`
	Results           map[string]domain.ResolvedIngredient `json:"results"`
	Ledger            domain.Macros                         `json:"ledger"`
	ContractSatisfied ContractSatisfied                     `json:"contractSatisfied"`
	Logs              []events.Event                        `json:"logs"`
}

// Failure is the typed-error shape from spec.md §6: a short machine
// code, a human reason, and the progress log up to the point of
// failure.
type Failure struct {
	Error  string         `json:"error"`
	Reason string         `json:"reason"`
	Logs   []events.Event `json:"logs"`
}

// Run executes the full pipeline for one profile. It always returns
// either a Response or a Failure, never both, and never panics: any
// unexpected condition is surfaced as an UNCAUGHT failure rather than
// propagated to the caller.
func (o *Orchestrator) Run(ctx context.Context, profile domain.Profile, sink events.Sink) (resp *Response, fail *Failure) {
	var logBuf []events.Event
	emit := func(level events.Level, tag, msg string, data map[string]interface{}) {
		e := events.Event{Level: level, Tag: tag, Message: msg, Data: data}
		logBuf = append(logBuf, e)
		sink.Publish(ctx, e)
	}

	defer func() {
		if r := recover(); r != nil {
			fail = &Failure{
				Error:  string(apperr.CodeUncaught),
				Reason: fmt.Sprintf("panic recovered: %v", r),
				Logs:   logBuf,
			}
			resp = nil
		}
	}()

	emit(events.LevelInfo, "contract", "building macro contract", nil)
	mc, err := contract.Build(profile, o.limits, o.log)
	if err != nil {
		return nil, o.failFrom(err, logBuf)
	}
	emit(events.LevelInfo, "contract", "contract built", map[string]interface{}{
		"kcal": mc.Kcal, "protein_g": mc.Protein, "fat_g": mc.Fat, "carb_g": mc.Carb,
	})

	emit(events.LevelInfo, "sketch", "requesting meal sketch from collaborator", nil)
	days, err := o.collaborator.Sketch(ctx, profile, mc)
	if err != nil {
		return nil, o.failFrom(sketchFailure(err), logBuf)
	}

	emit(events.LevelInfo, "sketch", "validating referential integrity", nil)
	if err := llm.ValidateReferentialIntegrity(days, o.registry); err != nil {
		return nil, o.failFrom(err, logBuf)
	}

	cidToNormalizedKey := make(map[string]string)
	for _, d := range days {
		for _, m := range d.Meals {
			for _, it := range m.Items {
				cidToNormalizedKey[it.CID] = it.NormalizedKey
			}
		}
	}
	cids := sortedKeys(cidToNormalizedKey)

	emit(events.LevelInfo, "marketrun", "running market run", map[string]interface{}{"ingredient_count": len(cids)})
	marketResults := o.marketRunner.Run(ctx, cids)
	resolved := make(map[string]domain.ResolvedIngredient, len(marketResults))
	kindByCID := make(map[string]domain.OutcomeKind, len(marketResults))
	for _, mr := range marketResults {
		resolved[mr.CID] = mr.Resolved
		kindByCID[mr.CID] = mr.Kind
		if mr.Kind == domain.OutcomeDiscovery {
			emit(events.LevelDebug, "marketrun", "ingredient discovered", map[string]interface{}{"cid": mr.CID})
		} else {
			emit(events.LevelWarn, "marketrun", "ingredient not resolved", map[string]interface{}{
				"cid": mr.CID, "kind": string(mr.Kind), "reason": mr.ErrMessage,
			})
		}
	}

	// Nutrition resolution (C4/C5) only needs a normalized name/barcode,
	// not a priced SKU, so it's attempted for every ingredient — even
	// one the market run never discovered a product for. A successful
	// resolve there is the canonical_fallback outcome (§4.8): no SKU,
	// but the plan can still carry correct macros for that ingredient.
	var reqs []nutresolve.Request
	for _, mr := range marketResults {
		barcode := ""
		if mr.Resolved.ChosenSKU != nil {
			barcode = mr.Resolved.ChosenSKU.Barcode
		}
		reqs = append(reqs, nutresolve.Request{
			CID:           mr.CID,
			NormalizedKey: cidToNormalizedKey[mr.CID],
			Barcode:       barcode,
		})
	}

	emit(events.LevelInfo, "nutresolve", "resolving nutrition", map[string]interface{}{"ingredient_count": len(reqs)})
	nutritionByCID := make(map[string]domain.NutritionRow, len(reqs))
	for _, nr := range o.nutResolver.ResolveAll(ctx, o.resolverWorkers, reqs) {
		if nr.Err != nil {
			emit(events.LevelWarn, "nutresolve", "nutrition resolution failed", map[string]interface{}{"cid": nr.CID, "error": nr.Err.Error()})
			continue
		}
		nutritionByCID[nr.CID] = nr.Row
		emit(events.LevelDebug, "nutresolve", "nutrition resolved", map[string]interface{}{"cid": nr.CID, "source": string(nr.Source)})
		if kindByCID[nr.CID] != domain.OutcomeDiscovery {
			kindByCID[nr.CID] = domain.OutcomeCanonicalFallback
			emit(events.LevelInfo, "nutresolve", "canonical fallback: nutrition resolved without a priced SKU", map[string]interface{}{"cid": nr.CID})
		}
	}

	for cid, row := range nutritionByCID {
		ri := resolved[cid]
		rowCopy := row
		ri.NutritionPer100g = &rowCopy
		resolved[cid] = ri
	}

	emit(events.LevelInfo, "solver", "fitting portions", nil)
	dayResponses := make([]DayResponse, 0, len(days))
	var allLineItems []ledger.LineItem
	var ledgerErrs []error
	totalGramsByCID := make(map[string]float64)
	qtyUnitByCID := make(map[string]domain.QtyUnit)
	anyInfeasible := false

	for _, day := range days {
		mealInputs, plans := buildMealInputs(day, nutritionByCID)
		result := solver.Solve(mc, mealInputs)
		if !result.Feasible {
			anyInfeasible = true
			emit(events.LevelWarn, "solver", "day could not be fit within tolerance", map[string]interface{}{
				"day": day.Day, "fallback": result.FallbackUsed,
			})
		}

		var dayLineItems []ledger.LineItem
		meals := make([]MealResponse, 0, len(day.Meals))
		for pi, plan := range plans {
			var itemResponses []ItemResponse
			var mealLineItems []ledger.LineItem
			gramsByOriginalIdx := make(map[int]float64, len(plan.itemIdx))
			if pi < len(result.ItemGrams) {
				for filteredIdx, originalIdx := range plan.itemIdx {
					if filteredIdx >= len(result.ItemGrams[pi]) {
						continue
					}
					gramsByOriginalIdx[originalIdx] = result.ItemGrams[pi][filteredIdx]
				}
			}
			for idx, item := range plan.meal.Items {
				grams := gramsByOriginalIdx[idx]
				totalGramsByCID[item.CID] += grams
				if item.QtyUnit != "" {
					qtyUnitByCID[item.CID] = item.QtyUnit
				}
				itemResponses = append(itemResponses, ItemResponse{
					CID: item.CID, DisplayName: item.DisplayName, Grams: round1(grams),
				})
				if row, ok := nutritionByCID[item.CID]; ok && grams > 0 {
					mealLineItems = append(mealLineItems, ledger.LineItem{CID: item.CID, Grams: grams, NutritionP100: row.AsMacros()})
				}
			}
			dayLineItems = append(dayLineItems, mealLineItems...)
			meals = append(meals, MealResponse{
				MealID: plan.meal.MealID, Type: plan.meal.Type, Title: plan.meal.Title,
				Items: itemResponses, FinalMacros: ledger.Totals(mealLineItems),
			})
		}

		if result.FallbackUsed == "booster" && len(result.ItemGrams) == len(mealInputs)+1 {
			boosterGrams := result.ItemGrams[len(mealInputs)]
			var boosterItemResponses []ItemResponse
			var boosterLineItems []ledger.LineItem
			for i, item := range boosterItems {
				grams := 0.0
				if i < len(boosterGrams) {
					grams = boosterGrams[i]
				}
				totalGramsByCID[item.CID] += grams
				spec, _ := o.registry.Spec(item.CID)
				boosterItemResponses = append(boosterItemResponses, ItemResponse{CID: item.CID, DisplayName: spec.DisplayName, Grams: round1(grams)})
				boosterLineItems = append(boosterLineItems, ledger.LineItem{CID: item.CID, Grams: grams, NutritionP100: item.NutritionP100})
			}
			dayLineItems = append(dayLineItems, boosterLineItems...)
			meals = append(meals, MealResponse{
				MealID: fmt.Sprintf("d%d-booster", day.Day), Type: domain.MealSnack2, Title: "Carb Booster",
				Items: boosterItemResponses, FinalMacros: ledger.Totals(boosterLineItems),
			})
			emit(events.LevelInfo, "solver", "booster meal injected", map[string]interface{}{"day": day.Day})
		}

		dayTotals, dayErr := ledger.Build(dayLineItems, mc)
		if dayErr != nil {
			ledgerErrs = append(ledgerErrs, dayErr)
			emit(events.LevelWarn, "ledger", "day did not satisfy contract", map[string]interface{}{"day": day.Day, "error": dayErr.Error()})
		}
		allLineItems = append(allLineItems, dayLineItems...)
		dayResponses = append(dayResponses, DayResponse{Day: day.Day, Meals: meals, Totals: dayTotals})
	}

	emit(events.LevelInfo, "ledger", "building final ledger", nil)
	totals := ledger.Totals(allLineItems)
	satisfied := ContractSatisfied{OK: len(ledgerErrs) == 0 && !anyInfeasible}
	if len(ledgerErrs) > 0 {
		firstErr := ledgerErrs[0]
		satisfied.Reason = firstErr.Error()
		emit(events.LevelError, "ledger", "contract not satisfied", map[string]interface{}{"error": firstErr.Error()})
		var ae *apperr.AppError
		if errors.As(firstErr, &ae) && (ae.Code != apperr.CodeFinalMacroMismatch || len(allLineItems) == 0) {
			// Hard-cap violations and a ledger with no line items at
			// all are fatal; a
			// plain percentage mismatch is still reported, with
			// contractSatisfied.ok=false, rather than rejected outright.
			return nil, o.failFrom(firstErr, logBuf)
		}
	} else if anyInfeasible {
		satisfied.Reason = "one or more days could not be fit within tolerance by the portion solver"
	}

	summaries := make([]IngredientSummary, 0, len(resolved))
	for cid, ri := range resolved {
		spec, _ := o.registry.Spec(cid)
		summaries = append(summaries, IngredientSummary{
			CID: cid, DisplayName: spec.DisplayName, ChosenSKU: ri.ChosenSKU,
			Confidence: ri.Confidence, TotalGrams: round1(totalGramsByCID[cid]),
			QuantityUnits: qtyUnitByCID[cid],
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].CID < summaries[j].CID })

	emit(events.LevelInfo, "done", "run complete", nil)
	response := &Response{
		Contract: mc, MealPlan: dayResponses, UniqueIngredients: summaries,
		Results: resolved, Ledger: totals, ContractSatisfied: satisfied, Logs: logBuf,
	}
	sink.PublishFinal(ctx, response)
	return response, nil
}

// mealPlan pairs a day's original meal with the ordered list of item
// indices that made it into the solver's item list (skipping items
// whose nutrition never resolved), so the solver's output grams can
// be mapped back onto the original item slots.
type mealPlan struct {
	meal    domain.Meal
	itemIdx []int
}

func buildMealInputs(day domain.DayPlan, nutritionByCID map[string]domain.NutritionRow) ([]solver.MealInput, []mealPlan) {
	var inputs []solver.MealInput
	var plans []mealPlan
	for _, meal := range day.Meals {
		var items []solver.ItemInput
		var idx []int
		for i, item := range meal.Items {
			row, ok := nutritionByCID[item.CID]
			if !ok {
				continue
			}
			base := item.QtyValue * gramsPerUnit[item.QtyUnit]
			if base <= 0 {
				base = 30
			}
			items = append(items, solver.ItemInput{
				CID: item.CID, BaseGrams: base, MinG: base * 0.3, MaxG: base * 3,
				NutritionP100: row.AsMacros(),
			})
			idx = append(idx, i)
		}
		if len(items) == 0 {
			continue
		}
		inputs = append(inputs, solver.MealInput{MealID: meal.MealID, Items: items})
		plans = append(plans, mealPlan{meal: meal, itemIdx: idx})
	}
	return inputs, plans
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

// sketchFailure classifies an arbitrary error from the LLM collaborator
// as BLUEPRINT_INVALID when it is already typed that way, or UNCAUGHT
// when the collaborator's own transport failed.
func sketchFailure(err error) error {
	var ae *apperr.AppError
	if errors.As(err, &ae) {
		return ae
	}
	return apperr.Wrap(err, apperr.KindUpstreamTransient, apperr.CodeUncaught, "meal sketch collaborator failed")
}

func (o *Orchestrator) failFrom(err error, logs []events.Event) *Failure {
	var ae *apperr.AppError
	code := apperr.CodeUncaught
	if errors.As(err, &ae) {
		if ae.Code != "" {
			code = ae.Code
		} else if ae.Kind == apperr.KindSolverInfeasible {
			code = apperr.CodeMacroInfeasible
		}
	}
	return &Failure{Error: string(code), Reason: err.Error(), Logs: logs}
}
