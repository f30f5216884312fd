// Package ledger implements C11: recomputing a day's macros from the
// solver's final grams and validated per-100g nutrition only, then
// applying the hard-cap and tolerance predicate that has the final
// say over whether a plan is reported as satisfying its contract
// (§4.11). The solver's own feasibility claim carries no weight here.
package ledger

import (
	"math"

	"github.com/mealpath/mealplan-engine/internal/domain"
	apperr "github.com/mealpath/mealplan-engine/pkg/errors"
)

// LineItem is one ingredient's final grams paired with the per-100g
// nutrition that passed C5's fingerprint check — the only figures the
// ledger is allowed to use (§4.11).
type LineItem struct {
	CID           string
	Grams         float64
	NutritionP100 domain.Macros
}

// Totals sums every line item's contribution. Totals never trusts
// an upstream-reported total; it always derives macros from grams ×
// per-100g figures.
func Totals(items []LineItem) domain.Macros {
	var totals domain.Macros
	for _, item := range items {
		frac := item.Grams / 100
		totals.Kcal += frac * item.NutritionP100.Kcal
		totals.Protein += frac * item.NutritionP100.Protein
		totals.Fat += frac * item.NutritionP100.Fat
		totals.Carb += frac * item.NutritionP100.Carb
	}
	return totals
}

// Check is the contract predicate from §4.11: hard caps are checked
// first and are fatal independent of percentage tolerance, then each
// macro's percentage deviation from target is checked.
func Check(totals domain.Macros, contract domain.MacroContract) error {
	if totals.Carb < contract.HardCaps.CarbMin {
		return apperr.New(apperr.KindLedgerMismatch, apperr.CodeCarbsTooLow, "ledger carbs below hard floor").
			WithContext("carb", totals.Carb).WithContext("carb_min", contract.HardCaps.CarbMin)
	}
	if totals.Protein > contract.HardCaps.ProteinMax {
		return apperr.New(apperr.KindLedgerMismatch, apperr.CodeProteinTooHigh, "ledger protein exceeds hard cap").
			WithContext("protein", totals.Protein).WithContext("protein_max", contract.HardCaps.ProteinMax)
	}
	if totals.Fat > contract.HardCaps.FatMax {
		return apperr.New(apperr.KindLedgerMismatch, apperr.CodeFatTooHigh, "ledger fat exceeds hard cap").
			WithContext("fat", totals.Fat).WithContext("fat_max", contract.HardCaps.FatMax)
	}

	target := contract.AsMacros()
	tol := contract.Tolerances
	if !withinPct(totals.Kcal, target.Kcal, tol.KcalPct) ||
		!withinPct(totals.Protein, target.Protein, tol.ProteinPct) ||
		!withinPct(totals.Fat, target.Fat, tol.FatPct) ||
		!withinPct(totals.Carb, target.Carb, tol.CarbPct) {
		return apperr.New(apperr.KindLedgerMismatch, apperr.CodeFinalMacroMismatch, "ledger totals exceed percentage tolerance of contract").
			WithContext("ledger", totals).WithContext("contract", target)
	}
	return nil
}

func withinPct(actual, target, pct float64) bool {
	if target <= 0 {
		return actual <= 1
	}
	return math.Abs(actual-target)/target <= pct
}

// Build computes the ledger totals for every line item across all
// meals and evaluates the contract predicate against them. The
// returned error, when non-nil, is always a *apperr.AppError carrying
// the specific hard-cap or tolerance code that failed.
func Build(items []LineItem, contract domain.MacroContract) (domain.Macros, error) {
	totals := Totals(items)
	if len(items) == 0 {
		return totals, apperr.New(apperr.KindLedgerMismatch, apperr.CodeFinalMacroMismatch, "no resolved line items to ledger")
	}
	if err := Check(totals, contract); err != nil {
		return totals, err
	}
	return totals, nil
}
