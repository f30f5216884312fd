package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/registry"
	apperr "github.com/mealpath/mealplan-engine/pkg/errors"
)

const validSketch = `{
  "days": [
    {
      "day": 1,
      "meals": [
        {
          "meal_id": "d1-B",
          "type": "B",
          "title": "Breakfast",
          "items": [
            {"display_name": "egg", "qty_value": 150, "qty_unit": "g", "state_hint": "raw"},
            {"display_name": "oats", "qty_value": 60, "qty_unit": "g", "state_hint": "dry"}
          ]
        }
      ]
    }
  ]
}`

func TestParseSketchAcceptsWellFormedResponse(t *testing.T) {
	days, err := ParseSketch([]byte(validSketch))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 || len(days[0].Meals) != 1 || len(days[0].Meals[0].Items) != 2 {
		t.Fatalf("unexpected parsed shape: %+v", days)
	}
}

func TestParseSketchRejectsMissingMealType(t *testing.T) {
	raw := `{"days":[{"day":1,"meals":[{"meal_id":"d1-B","title":"Breakfast","items":[{"display_name":"egg","qty_value":100,"qty_unit":"g"}]}]}]}`
	_, err := ParseSketch([]byte(raw))
	assertBlueprintInvalidAtPath(t, err, "days[0].meals[0].type")
}

func TestParseSketchRejectsMissingItemQtyUnit(t *testing.T) {
	raw := `{"days":[{"day":1,"meals":[{"meal_id":"d1-B","type":"B","title":"Breakfast","items":[{"display_name":"egg","qty_value":100}]}]}]}`
	_, err := ParseSketch([]byte(raw))
	assertBlueprintInvalidAtPath(t, err, "days[0].meals[0].items[0].qty_unit")
}

func TestParseSketchRejectsEmptyDays(t *testing.T) {
	_, err := ParseSketch([]byte(`{"days":[]}`))
	if err == nil {
		t.Fatal("expected rejection for empty days")
	}
}

func TestParseSketchRejectsMalformedJSON(t *testing.T) {
	_, err := ParseSketch([]byte(`not json`))
	if err == nil {
		t.Fatal("expected rejection for malformed JSON")
	}
}

func assertBlueprintInvalidAtPath(t *testing.T, err error, wantPath string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var ae *apperr.AppError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apperr.AppError, got %T", err)
	}
	if ae.Code != apperr.CodeBlueprintInvalid {
		t.Fatalf("expected BLUEPRINT_INVALID, got %v", ae.Code)
	}
	if ae.Context["path"] != wantPath {
		t.Fatalf("expected path %q, got %v", wantPath, ae.Context["path"])
	}
}

func TestValidateReferentialIntegrityResolvesKnownIngredients(t *testing.T) {
	reg := registry.New()
	days := []domain.DayPlan{
		{Day: 1, Meals: []domain.Meal{
			{MealID: "d1-B", Items: []domain.PlannedIngredient{
				{DisplayName: "chicken breast"},
				{DisplayName: "white rice"},
			}},
		}},
	}
	if err := ValidateReferentialIntegrity(days, reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days[0].Meals[0].Items[0].CID != "chicken_breast" {
		t.Fatalf("expected resolved cid, got %q", days[0].Meals[0].Items[0].CID)
	}
}

func TestValidateReferentialIntegrityRejectsUnknownIngredient(t *testing.T) {
	reg := registry.New()
	days := []domain.DayPlan{
		{Day: 1, Meals: []domain.Meal{
			{MealID: "d1-B", Items: []domain.PlannedIngredient{
				{DisplayName: "unobtainium dust"},
			}},
		}},
	}
	err := ValidateReferentialIntegrity(days, reg)
	var ae *apperr.AppError
	if !errors.As(err, &ae) || ae.Code != apperr.CodeBlueprintInvalid {
		t.Fatalf("expected BLUEPRINT_INVALID, got %v", err)
	}
}

func TestStubCollaboratorProducesRequestedDaysAndOccasions(t *testing.T) {
	stub := NewStub()
	profile := domain.Profile{Days: 2, EatingOccasions: 4}
	contract := domain.MacroContract{Kcal: 2400, Protein: 180, Fat: 70, Carb: 260}

	days, err := stub.Sketch(context.Background(), profile, contract)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if len(days[0].Meals) != 4 {
		t.Fatalf("expected 4 meals for eating_occasions=4, got %d", len(days[0].Meals))
	}
}

func TestStubCollaboratorFallsBackToThreeOccasions(t *testing.T) {
	stub := NewStub()
	profile := domain.Profile{Days: 1, EatingOccasions: 7}
	contract := domain.MacroContract{Kcal: 2000, Protein: 150, Fat: 60, Carb: 220}

	days, err := stub.Sketch(context.Background(), profile, contract)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days[0].Meals) != 3 {
		t.Fatalf("expected fallback to 3 meals, got %d", len(days[0].Meals))
	}
}
