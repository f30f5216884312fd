package llm

import (
	"context"
	"fmt"

	"github.com/mealpath/mealplan-engine/internal/domain"
)

// mealPlanShare is this eating occasion's share of the day's macro
// contract and the canonical ingredients the stub sketches into it.
type mealPlanShare struct {
	Type       domain.MealType
	Title      string
	Share      float64
	Ingredient []string
}

// occasionPlans enumerates the meal-count configurations
// Profile.EatingOccasions allows (§3), each summing to 1.0 share.
var occasionPlans = map[int][]mealPlanShare{
	3: {
		{domain.MealBreakfast, "Breakfast", 0.30, []string{"egg", "oats", "banana"}},
		{domain.MealLunch, "Lunch", 0.35, []string{"chicken_breast", "white_rice", "broccoli"}},
		{domain.MealDinner, "Dinner", 0.35, []string{"salmon_fillet", "sweet_potato", "spinach"}},
	},
	4: {
		{domain.MealBreakfast, "Breakfast", 0.25, []string{"greek_yogurt_plain", "oats", "blueberries"}},
		{domain.MealLunch, "Lunch", 0.30, []string{"chicken_breast", "white_rice", "broccoli"}},
		{domain.MealDinner, "Dinner", 0.30, []string{"ground_beef", "pasta_dry", "tomato_sauce"}},
		{domain.MealSnack1, "Snack", 0.15, []string{"whey_protein", "almonds"}},
	},
	5: {
		{domain.MealBreakfast, "Breakfast", 0.22, []string{"egg", "whole_wheat_bread", "avocado"}},
		{domain.MealLunch, "Lunch", 0.28, []string{"turkey_breast", "quinoa", "zucchini"}},
		{domain.MealDinner, "Dinner", 0.28, []string{"tilapia", "white_rice", "carrot"}},
		{domain.MealSnack1, "Snack", 0.11, []string{"cottage_cheese", "apple"}},
		{domain.MealSnack2, "Snack", 0.11, []string{"protein_bar"}},
	},
}

// StubCollaborator is a deterministic stand-in for the real LLM
// endpoint: it distributes the macro contract across the requested
// number of eating occasions and emits a fixed canonical-ingredient
// sketch per occasion. It satisfies Collaborator so the orchestrator
// and its tests can run without a live model (§1: the LLM is an
// external collaborator, out of scope for the core).
type StubCollaborator struct{}

func NewStub() *StubCollaborator { return &StubCollaborator{} }

func (s *StubCollaborator) Sketch(ctx context.Context, profile domain.Profile, contract domain.MacroContract) ([]domain.DayPlan, error) {
	plan, ok := occasionPlans[profile.EatingOccasions]
	if !ok {
		plan = occasionPlans[3]
	}
	days := make([]domain.DayPlan, 0, profile.Days)
	for d := 1; d <= maxInt(profile.Days, 1); d++ {
		meals := make([]domain.Meal, 0, len(plan))
		for _, occasion := range plan {
			meals = append(meals, sketchMeal(d, occasion, contract))
		}
		days = append(days, domain.DayPlan{Day: d, Meals: meals})
	}
	return days, nil
}

func sketchMeal(day int, occasion mealPlanShare, contract domain.MacroContract) domain.Meal {
	targets := domain.Macros{
		Kcal:    contract.Kcal * occasion.Share,
		Protein: contract.Protein * occasion.Share,
		Fat:     contract.Fat * occasion.Share,
		Carb:    contract.Carb * occasion.Share,
	}
	// Grams are a rough starting point only; the Portion Solver (C10)
	// is what actually fits them to the contract.
	perItemKcal := targets.Kcal / float64(len(occasion.Ingredient))
	items := make([]domain.PlannedIngredient, 0, len(occasion.Ingredient))
	for _, name := range occasion.Ingredient {
		grams := perItemKcal / 1.5 // ~150kcal/100g average density placeholder
		if grams < 30 {
			grams = 30
		}
		items = append(items, domain.PlannedIngredient{
			DisplayName: name,
			QtyValue:    grams,
			QtyUnit:     domain.UnitGram,
			StateHint:   domain.StateRaw,
		})
	}
	return domain.Meal{
		MealID:     fmt.Sprintf("d%d-%s", day, occasion.Type),
		Type:       occasion.Type,
		Title:      occasion.Title,
		Targets:    targets,
		Tolerances: contract.Tolerances,
		Items:      items,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
