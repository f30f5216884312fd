// Package llm defines the engine's one contract with its external
// meal-sketch collaborator: a typed Go interface plus explicit,
// path-precise extraction of its JSON response. Per spec.md §1 the
// core never prompts or parses free text itself — it only consumes
// a JSON-schema-constrained response and treats the model as an
// unreliable external service whose structural mistakes are surfaced
// as BLUEPRINT_INVALID, never guessed around.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/registry"
	apperr "github.com/mealpath/mealplan-engine/pkg/errors"
)

// Collaborator is the orchestrator's only dependency on the LLM
// layer. Implementations own their own prompt construction, schema
// enforcement, and transport — none of which this package specifies.
type Collaborator interface {
	Sketch(ctx context.Context, profile domain.Profile, contract domain.MacroContract) ([]domain.DayPlan, error)
}

// rawSketch and friends mirror the JSON-schema-constrained response
// shape with pointer fields, so a present-but-zero value (qty_value:0)
// is distinguishable from an absent one, and every missing field can
// be reported at its exact path rather than collapsed into one
// generic "invalid JSON" error.
type rawSketch struct {
	Days []rawDay `json:"days"`
}

type rawDay struct {
	Day   *int      `json:"day"`
	Meals []rawMeal `json:"meals"`
}

type rawMeal struct {
	MealID *string   `json:"meal_id"`
	Type   *string   `json:"type"`
	Title  *string   `json:"title"`
	Items  []rawItem `json:"items"`
}

type rawItem struct {
	DisplayName *string `json:"display_name"`
	QtyValue    *float64 `json:"qty_value"`
	QtyUnit     *string `json:"qty_unit"`
	StateHint   *string `json:"state_hint"`
	MethodHint  *string `json:"method_hint"`
}

// ParseSketch extracts a []domain.DayPlan from the collaborator's raw
// JSON response, field by field, so any structural defect names its
// own path (e.g. "days[0].meals[1].items[2].qty_unit").
func ParseSketch(raw []byte) ([]domain.DayPlan, error) {
	var sketch rawSketch
	if err := json.Unmarshal(raw, &sketch); err != nil {
		return nil, blueprintInvalid("<root>", "malformed JSON: "+err.Error())
	}
	if len(sketch.Days) == 0 {
		return nil, blueprintInvalid("days", "must contain at least one day")
	}

	days := make([]domain.DayPlan, len(sketch.Days))
	for di, rd := range sketch.Days {
		path := fmt.Sprintf("days[%d]", di)
		if rd.Day == nil {
			return nil, blueprintInvalid(path+".day", "missing")
		}
		if len(rd.Meals) == 0 {
			return nil, blueprintInvalid(path+".meals", "must contain at least one meal")
		}

		meals := make([]domain.Meal, len(rd.Meals))
		for mi, rm := range rd.Meals {
			mpath := fmt.Sprintf("%s.meals[%d]", path, mi)
			if rm.MealID == nil || *rm.MealID == "" {
				return nil, blueprintInvalid(mpath+".meal_id", "missing")
			}
			if rm.Type == nil || !validMealType(*rm.Type) {
				return nil, blueprintInvalid(mpath+".type", "missing or not one of B,L,D,S1,S2")
			}
			if rm.Title == nil || *rm.Title == "" {
				return nil, blueprintInvalid(mpath+".title", "missing")
			}
			if len(rm.Items) == 0 {
				return nil, blueprintInvalid(mpath+".items", "must contain at least one item")
			}

			items := make([]domain.PlannedIngredient, len(rm.Items))
			for ii, ri := range rm.Items {
				ipath := fmt.Sprintf("%s.items[%d]", mpath, ii)
				if ri.DisplayName == nil || *ri.DisplayName == "" {
					return nil, blueprintInvalid(ipath+".display_name", "missing")
				}
				if ri.QtyValue == nil || *ri.QtyValue <= 0 {
					return nil, blueprintInvalid(ipath+".qty_value", "missing or non-positive")
				}
				if ri.QtyUnit == nil || !validQtyUnit(*ri.QtyUnit) {
					return nil, blueprintInvalid(ipath+".qty_unit", "missing or unrecognized")
				}

				item := domain.PlannedIngredient{
					DisplayName: *ri.DisplayName,
					QtyValue:    *ri.QtyValue,
					QtyUnit:     domain.QtyUnit(*ri.QtyUnit),
				}
				if ri.StateHint != nil {
					item.StateHint = domain.StateHint(*ri.StateHint)
				}
				if ri.MethodHint != nil {
					item.MethodHint = domain.MethodHint(*ri.MethodHint)
				}
				items[ii] = item
			}

			meals[mi] = domain.Meal{
				MealID: *rm.MealID,
				Type:   domain.MealType(*rm.Type),
				Title:  *rm.Title,
				Items:  items,
			}
		}

		days[di] = domain.DayPlan{Day: *rd.Day, Meals: meals}
	}

	return days, nil
}

func validMealType(t string) bool {
	switch domain.MealType(t) {
	case domain.MealBreakfast, domain.MealLunch, domain.MealDinner, domain.MealSnack1, domain.MealSnack2:
		return true
	}
	return false
}

func validQtyUnit(u string) bool {
	switch domain.QtyUnit(u) {
	case domain.UnitGram, domain.UnitML, domain.UnitSlice, domain.UnitEgg, domain.UnitMedium, domain.UnitLarge:
		return true
	}
	return false
}

func blueprintInvalid(path, reason string) error {
	return apperr.New(apperr.KindInput, apperr.CodeBlueprintInvalid, fmt.Sprintf("%s: %s", path, reason)).
		WithContext("path", path)
}

// ValidateReferentialIntegrity maps every item's display_name to a CID
// via the registry (§4.12 step 3), mutating each item in place with
// its resolved CID/NormalizedKey. Any item that doesn't resolve is
// collected and reported together as one BLUEPRINT_INVALID error
// rather than failing on the first miss, so a caller can see every
// offending ingredient at once.
func ValidateReferentialIntegrity(days []domain.DayPlan, reg *registry.Registry) error {
	var unresolved []string
	for di := range days {
		for mi := range days[di].Meals {
			items := days[di].Meals[mi].Items
			for ii := range items {
				cid, normalizedKey, ok := reg.MapToCID(items[ii].DisplayName)
				if !ok {
					unresolved = append(unresolved, items[ii].DisplayName)
					continue
				}
				items[ii].CID = cid
				items[ii].NormalizedKey = normalizedKey
			}
		}
	}
	if len(unresolved) > 0 {
		return apperr.New(apperr.KindInput, apperr.CodeBlueprintInvalid, "one or more ingredients could not be mapped to a CID").
			WithContext("unresolved", unresolved)
	}
	return nil
}
