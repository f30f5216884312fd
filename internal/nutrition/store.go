// Package nutrition implements C3 (the hot-path nutrition dictionary)
// and C4 (the embedded canonical nutrition store), the two offline
// tiers the resolver (C5) checks before ever making a network call.
package nutrition

import "github.com/mealpath/mealplan-engine/internal/domain"

// Store is the read side both tiers expose to the resolver.
type Store interface {
	Lookup(normalizedKey string) (domain.NutritionRow, bool)
	Size() int
}

// kcalBalanceCeiling is the 5% tolerance every ingested row must
// satisfy between its stated kcal and its macro-implied kcal (P1/P2).
const kcalBalanceCeiling = 0.05

// macroSumCeilingPer100g rejects physically impossible rows: more
// than 105g of protein+fat+carb can't fit in 100g of food, with a
// small allowance for rounding in source data.
const macroSumCeilingPer100g = 105.0

// maxPlausibleKcalPer100g rejects runaway kcal figures (oils cap out
// near 900 kcal/100g).
const maxPlausibleKcalPer100g = 900.0

func passesIngestionGate(row domain.NutritionRow) (string, bool) {
	sum := row.ProteinPer100g + row.FatPer100g + row.CarbPer100g
	if sum > macroSumCeilingPer100g {
		return "macro_sum_exceeds_100g_basis", false
	}
	if row.KcalPer100g < 0 || row.KcalPer100g > maxPlausibleKcalPer100g {
		return "kcal_out_of_plausible_range", false
	}
	if row.KcalBalance() > kcalBalanceCeiling {
		return "kcal_balance_exceeds_tolerance", false
	}
	return "", true
}
