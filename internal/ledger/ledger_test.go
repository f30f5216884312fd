package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealpath/mealplan-engine/internal/domain"
	apperr "github.com/mealpath/mealplan-engine/pkg/errors"
)

func sampleContract() domain.MacroContract {
	return domain.MacroContract{
		Kcal: 900, Protein: 60, Fat: 20, Carb: 110,
		Tolerances: domain.Tolerances{KcalPct: 0.03, ProteinPct: 0.08, FatPct: 0.08, CarbPct: 0.08},
		HardCaps:   domain.HardCaps{ProteinMax: 120, FatMax: 40, CarbMin: 60},
	}
}

func item(cid string, grams, kcal, protein, fat, carb float64) LineItem {
	return LineItem{CID: cid, Grams: grams, NutritionP100: domain.Macros{Kcal: kcal, Protein: protein, Fat: fat, Carb: carb}}
}

func TestTotalsIsLinearInGrams(t *testing.T) {
	items := []LineItem{
		item("a", 150, 165, 31, 3.6, 0),
		item("b", 300, 130, 2.7, 0.3, 28),
	}
	base := Totals(items)

	alpha := 2.0
	scaled := make([]LineItem, len(items))
	for i, it := range items {
		scaled[i] = it
		scaled[i].Grams *= alpha
	}
	doubled := Totals(scaled)

	assert.InDelta(t, base.Kcal*alpha, doubled.Kcal, 1, "ledger totals should scale linearly with grams")
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		totals   domain.Macros
		wantCode apperr.Code
	}{
		{
			name:     "within tolerance passes",
			totals:   domain.Macros{Kcal: 905, Protein: 61, Fat: 19.5, Carb: 108},
			wantCode: "",
		},
		{
			name:     "carbs below hard floor",
			totals:   domain.Macros{Kcal: 900, Protein: 60, Fat: 20, Carb: 40},
			wantCode: apperr.CodeCarbsTooLow,
		},
		{
			name:     "protein above hard cap",
			totals:   domain.Macros{Kcal: 900, Protein: 150, Fat: 20, Carb: 110},
			wantCode: apperr.CodeProteinTooHigh,
		},
		{
			name:     "fat above hard cap",
			totals:   domain.Macros{Kcal: 900, Protein: 60, Fat: 80, Carb: 110},
			wantCode: apperr.CodeFatTooHigh,
		},
		{
			// Within hard caps but kcal is about 22% off target, a
			// percentage mismatch the hard-cap checks alone
			// wouldn't catch.
			name:     "percentage mismatch beyond hard caps",
			totals:   domain.Macros{Kcal: 1100, Protein: 60, Fat: 20, Carb: 110},
			wantCode: apperr.CodeFinalMacroMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.totals, sampleContract())
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ae *apperr.AppError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

func TestBuildFailsWithNoLineItems(t *testing.T) {
	_, err := Build(nil, sampleContract())
	assert.Error(t, err, "expected error when no line items are resolved")
}

func TestBuildSucceedsAndReturnsTotals(t *testing.T) {
	items := []LineItem{
		item("chicken_breast", 200, 165, 31, 3.6, 0),
		item("white_rice", 300, 130, 2.7, 0.3, 28),
		item("broccoli", 250, 52, 3.3, 0.4, 12),
	}
	expected := Totals(items)
	c := domain.MacroContract{
		Kcal: expected.Kcal, Protein: expected.Protein, Fat: expected.Fat, Carb: expected.Carb,
		Tolerances: domain.Tolerances{KcalPct: 0.03, ProteinPct: 0.08, FatPct: 0.08, CarbPct: 0.08},
		HardCaps:   domain.HardCaps{ProteinMax: expected.Protein * 2, FatMax: expected.Fat * 2, CarbMin: expected.Carb * 0.5},
	}

	totals, err := Build(items, c)
	require.NoError(t, err)
	assert.Greater(t, totals.Kcal, 0.0)
}
