// Package solver implements C10: fitting one scale multiplier per
// meal so a day's aggregate macros satisfy the macro contract, via a
// bounded projected-gradient descent with a heuristic fallback and a
// one-shot carb-booster injection when the gradient method can't
// close the gap (§4.10).
package solver

import (
	"math"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/pkg/metrics"
)

const (
	minScale = 0.3
	maxScale = 3.0

	primaryMaxIterations   = 800
	heuristicMaxIterations = 400
	maxBacktracks          = 6

	initialStep      = 0.05
	stepAcceleration = 1.10
	stepDecay        = 0.5
)

// weights bias carbs highest to prevent the solver from satisfying
// kcal by over-delivering fat or protein (§4.10). Order: kcal, protein,
// fat, carb.
var weights = [4]float64{1.0, 1.2, 1.2, 1.6}

// ItemInput is one meal item's base (unscaled) grams and validated
// per-100g nutrition, as handed off by C5/C8.
type ItemInput struct {
	CID           string
	BaseGrams     float64
	MinG          float64
	MaxG          float64
	NutritionP100 domain.Macros
}

// MealInput is one eating occasion's item list at scale 1.0.
type MealInput struct {
	MealID string
	Items  []ItemInput
}

// Result is the solver's output for a full day.
type Result struct {
	Scales       []float64
	ItemGrams    [][]float64 // ItemGrams[m][i] aligns with Meals[m].Items[i]
	Totals       domain.Macros
	Feasible     bool
	FallbackUsed string // "", "heuristic", "booster", "min_g_fallback"
}

// boosterMeal is the canonical high-carb meal appended once when the
// primary solve can't close the carb gap (§4.10 Fallback 2): rice +
// banana + honey, roughly 450 kcal / 100 g carbs.
func boosterMeal() MealInput {
	return MealInput{
		MealID: "_booster",
		Items: []ItemInput{
			{CID: "white_rice", BaseGrams: 200, MinG: 100, MaxG: 400, NutritionP100: domain.Macros{Kcal: 130, Protein: 2.7, Fat: 0.3, Carb: 28}},
			{CID: "banana", BaseGrams: 120, MinG: 60, MaxG: 240, NutritionP100: domain.Macros{Kcal: 89, Protein: 1.1, Fat: 0.3, Carb: 23}},
			{CID: "honey", BaseGrams: 30, MinG: 10, MaxG: 60, NutritionP100: domain.Macros{Kcal: 304, Protein: 0.3, Fat: 0, Carb: 82}},
		},
	}
}

// Solve fits meal scales against the day contract's targets and hard
// caps. It always returns a Result; Feasible is false only for the
// min_g fallback, and otherwise reflects the tolerance check made on
// the unrounded solve, before scales are rounded and grams clamped
// (the ledger re-checks the final grams). FallbackUsed records which
// escape hatch produced it (empty string means the primary solve
// converged on its own).
func Solve(contract domain.MacroContract, meals []MealInput) Result {
	result := solveImpl(contract, meals)
	fallback := result.FallbackUsed
	if fallback == "" {
		fallback = "none"
	}
	metrics.SolverFallbacksTotal.WithLabelValues(fallback).Inc()
	return result
}

func solveImpl(contract domain.MacroContract, meals []MealInput) Result {
	target := contract.AsMacros()

	primary := runPrimary(meals, target, contract.Tolerances)
	if satisfies(primary.totals, target, contract.Tolerances) {
		return finalize(meals, primary, "")
	}

	heuristic := runHeuristic(meals, target)
	if satisfies(heuristic.totals, target, contract.Tolerances) {
		return finalize(meals, heuristic, "heuristic")
	}

	boosted := append(append([]MealInput{}, meals...), boosterMeal())
	boosterResult := runPrimary(boosted, target, contract.Tolerances)
	if satisfies(boosterResult.totals, target, contract.Tolerances) {
		return finalize(boosted, boosterResult, "booster")
	}

	return minGFallback(meals)
}

type rawResult struct {
	scales []float64
	totals domain.Macros
}

// contributions returns A, the 4xN matrix where A[k][j] is meal j's
// contribution to macro k at scale 1.0 (k: 0=kcal,1=protein,2=fat,3=carb).
func contributions(meals []MealInput) [4][]float64 {
	var a [4][]float64
	for k := range a {
		a[k] = make([]float64, len(meals))
	}
	for j, meal := range meals {
		var kcal, protein, fat, carb float64
		for _, item := range meal.Items {
			frac := item.BaseGrams / 100
			kcal += frac * item.NutritionP100.Kcal
			protein += frac * item.NutritionP100.Protein
			fat += frac * item.NutritionP100.Fat
			carb += frac * item.NutritionP100.Carb
		}
		a[0][j], a[1][j], a[2][j], a[3][j] = kcal, protein, fat, carb
	}
	return a
}

func targetVec(t domain.Macros) [4]float64 {
	return [4]float64{t.Kcal, t.Protein, t.Fat, t.Carb}
}

func predict(a [4][]float64, s []float64) [4]float64 {
	var p [4]float64
	for k := 0; k < 4; k++ {
		var sum float64
		for j, sj := range s {
			sum += a[k][j] * sj
		}
		p[k] = sum
	}
	return p
}

func loss(p, t [4]float64) float64 {
	var l float64
	for k := 0; k < 4; k++ {
		d := p[k] - t[k]
		l += weights[k] * d * d
	}
	return l
}

func gradient(a [4][]float64, p, t [4]float64, n int) []float64 {
	grad := make([]float64, n)
	for j := 0; j < n; j++ {
		var g float64
		for k := 0; k < 4; k++ {
			g += 2 * weights[k] * (p[k] - t[k]) * a[k][j]
		}
		grad[j] = g
	}
	return grad
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// runPrimary runs the projected-gradient descent with backtracking
// line search described in §4.10. tol is the same contract tolerance
// the caller checks the final result against, so the descent can stop
// as soon as it's converged rather than spending its whole iteration
// budget chasing a tighter fit than the contract requires.
func runPrimary(meals []MealInput, target domain.Macros, tol domain.Tolerances) rawResult {
	n := len(meals)
	if n == 0 {
		return rawResult{scales: nil, totals: domain.Macros{}}
	}
	a := contributions(meals)
	t := targetVec(target)

	s := make([]float64, n)
	for j := range s {
		s[j] = 1.0
	}

	// initialStep is taken relative to 1/L, where L = 2·Σ w_k·a_kj² bounds
	// the loss's curvature, so the first trial step is sized to the
	// meals' macro magnitudes rather than fixed in scale units.
	var lipschitz float64
	for k := 0; k < 4; k++ {
		for _, akj := range a[k] {
			lipschitz += 2 * weights[k] * akj * akj
		}
	}
	eta := initialStep
	if lipschitz > 0 {
		eta = initialStep / lipschitz
	}

	for iter := 0; iter < primaryMaxIterations; iter++ {
		p := predict(a, s)
		curLoss := loss(p, t)
		grad := gradient(a, p, t, n)

		improved := false
		trialEta := eta
		for backtrack := 0; backtrack <= maxBacktracks; backtrack++ {
			candidate := make([]float64, n)
			for j := range candidate {
				candidate[j] = clip(s[j]-trialEta*grad[j], minScale, maxScale)
			}
			candidateLoss := loss(predict(a, candidate), t)
			if candidateLoss < curLoss {
				s = candidate
				eta = trialEta * stepAcceleration
				improved = true
				break
			}
			trialEta *= stepDecay
		}
		if !improved {
			break
		}
		if satisfies(macrosFrom(predict(a, s)), target, tol) {
			break
		}
	}

	return rawResult{scales: s, totals: macrosFrom(predict(a, s))}
}

// runHeuristic implements §4.10 Fallback 1: a per-meal macro-ratio
// bias combined with a global scale mixing carb- and kcal-ratios,
// iterated until the global scale stabilizes.
func runHeuristic(meals []MealInput, target domain.Macros) rawResult {
	n := len(meals)
	if n == 0 {
		return rawResult{scales: nil, totals: domain.Macros{}}
	}
	a := contributions(meals)
	t := targetVec(target)

	bias := make([]float64, n)
	for j := 0; j < n; j++ {
		kcal, protein, fat, carb := a[0][j], a[1][j], a[2][j], a[3][j]
		if kcal <= 0 {
			bias[j] = 1.0
			continue
		}
		bias[j] = clip(1+0.8*carb/kcal-0.6*fat/kcal-0.2*protein/kcal, 0.6, 1.4)
	}

	globalScale := 1.0
	s := make([]float64, n)
	for iter := 0; iter < heuristicMaxIterations; iter++ {
		for j := range s {
			s[j] = clip(bias[j]*globalScale, minScale, maxScale)
		}
		p := predict(a, s)

		carbRatio := safeRatio(t[3], p[3])
		kcalRatio := safeRatio(t[0], p[0])
		next := clip(0.7*carbRatio+0.3*kcalRatio, 0.7, 1.4)
		if math.Abs(next-globalScale) < 1e-6 {
			globalScale = next
			break
		}
		globalScale = next
	}
	for j := range s {
		s[j] = clip(bias[j]*globalScale, minScale, maxScale)
	}

	return rawResult{scales: s, totals: macrosFrom(predict(a, s))}
}

func safeRatio(target, actual float64) float64 {
	if actual <= 0 {
		return 1.0
	}
	return target / actual
}

func macrosFrom(p [4]float64) domain.Macros {
	return domain.Macros{Kcal: p[0], Protein: p[1], Fat: p[2], Carb: p[3]}
}

// satisfies checks the percentage-tolerance half of the contract
// predicate (§4.11); the solver itself doesn't evaluate hard caps,
// which the Ledger (C11) enforces independently on the recomputed
// totals.
func satisfies(totals, target domain.Macros, tol domain.Tolerances) bool {
	return within(totals.Kcal, target.Kcal, tol.KcalPct) &&
		within(totals.Protein, target.Protein, tol.ProteinPct) &&
		within(totals.Fat, target.Fat, tol.FatPct) &&
		within(totals.Carb, target.Carb, tol.CarbPct)
}

func within(actual, target, pct float64) bool {
	if target <= 0 {
		return actual <= 1
	}
	dev := math.Abs(actual-target) / target
	return dev <= pct
}

// finalize converts a rawResult's per-meal scales into rounded,
// clamped per-item grams and the ledger-shaped totals (§4.10's
// tie-breaking and numeric rules).
func finalize(meals []MealInput, r rawResult, fallback string) Result {
	itemGrams := make([][]float64, len(meals))
	for m, meal := range meals {
		scale := 1.0
		if m < len(r.scales) {
			scale = round2(r.scales[m])
		}
		grams := make([]float64, len(meal.Items))
		for i, item := range meal.Items {
			g := item.BaseGrams * scale
			g = clip(g, item.MinG, item.MaxG)
			grams[i] = math.Round(g)
		}
		itemGrams[m] = grams
	}
	scalesRounded := make([]float64, len(r.scales))
	for i, s := range r.scales {
		scalesRounded[i] = round2(s)
	}
	return Result{
		Scales:       scalesRounded,
		ItemGrams:    itemGrams,
		Totals:       recompute(meals, itemGrams),
		Feasible:     fallback != "min_g_fallback",
		FallbackUsed: fallback,
	}
}

// minGFallback is §4.10's last resort: every ingredient in every meal
// reverts to its declared minimum, and the result is explicitly
// labeled infeasible rather than silently reported as success.
func minGFallback(meals []MealInput) Result {
	itemGrams := make([][]float64, len(meals))
	scales := make([]float64, len(meals))
	for m, meal := range meals {
		grams := make([]float64, len(meal.Items))
		for i, item := range meal.Items {
			grams[i] = math.Round(item.MinG)
		}
		itemGrams[m] = grams
		scales[m] = 0
	}
	return Result{
		Scales:       scales,
		ItemGrams:    itemGrams,
		Totals:       recompute(meals, itemGrams),
		Feasible:     false,
		FallbackUsed: "min_g_fallback",
	}
}

func recompute(meals []MealInput, itemGrams [][]float64) domain.Macros {
	var totals domain.Macros
	for m, meal := range meals {
		for i, item := range meal.Items {
			grams := item.BaseGrams
			if m < len(itemGrams) && i < len(itemGrams[m]) {
				grams = itemGrams[m][i]
			}
			frac := grams / 100
			totals.Kcal += frac * item.NutritionP100.Kcal
			totals.Protein += frac * item.NutritionP100.Protein
			totals.Fat += frac * item.NutritionP100.Fat
			totals.Carb += frac * item.NutritionP100.Carb
		}
	}
	return totals
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
