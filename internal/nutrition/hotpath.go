package nutrition

import "github.com/mealpath/mealplan-engine/internal/domain"

// hotPathEntry pairs a normalized lookup key with its row. Keys are
// the normalize.Normalize form of the ingredient name, so the key the
// registry hands back from MapToCID serves both lookups; for a plural
// CID such as almonds that form is the singular (almond).
type hotPathEntry struct {
	Key string
	Row domain.NutritionRow
}

// hotPathSeed is the curated, always-in-memory nutrition table (C3).
// Entries are state-tagged (raw/dry/cooked/as_sold) since the same
// ingredient's figures differ wildly by preparation state (§3).
var hotPathSeed = []hotPathEntry{
	{"chicken_breast", row(120, 22.5, 2.6, 0, domain.NutritionRaw)},
	{"chicken_thigh", row(177, 20, 10, 0, domain.NutritionRaw)},
	{"ground_beef", row(250, 18, 20, 0, domain.NutritionRaw)},
	{"salmon_fillet", row(208, 20, 13, 0, domain.NutritionRaw)},
	{"shrimp", row(99, 24, 0.3, 0.2, domain.NutritionRaw)},
	{"egg", row(143, 12.6, 9.5, 0.7, domain.NutritionRaw)},
	{"tofu_firm", row(144, 15.5, 8.7, 3, domain.NutritionRaw)},
	{"greek_yogurt_plain", row(59, 10, 0.4, 3.6, domain.NutritionAsSold)},
	{"cottage_cheese", row(98, 11, 4.3, 3.4, domain.NutritionAsSold)},
	{"milk_2pct", row(50, 3.3, 2, 4.9, domain.NutritionLiquid)},
	{"cheddar_cheese", row(403, 25, 33, 1.3, domain.NutritionAsSold)},
	{"whey_protein", row(380, 80, 5, 8, domain.NutritionPowder)},
	{"white_rice", row(365, 7.1, 0.7, 80, domain.NutritionDry)},
	{"white_rice_cooked", row(130, 2.7, 0.3, 28.2, domain.NutritionCooked)},
	{"brown_rice", row(362, 7.5, 2.7, 76, domain.NutritionDry)},
	{"brown_rice_cooked", row(123, 2.6, 1, 25.6, domain.NutritionCooked)},
	{"oats", row(379, 13.2, 6.9, 67.7, domain.NutritionDry)},
	{"oats_cooked", row(71, 2.5, 1.5, 12, domain.NutritionCooked)},
	{"quinoa", row(368, 14.1, 6.1, 64.2, domain.NutritionDry)},
	{"quinoa_cooked", row(120, 4.4, 1.9, 21.3, domain.NutritionCooked)},
	{"whole_wheat_bread", row(247, 13, 3.4, 41, domain.NutritionAsSold)},
	{"pasta_dry", row(371, 13, 1.5, 74.7, domain.NutritionDry)},
	{"pasta_cooked", row(158, 5.8, 0.9, 30.9, domain.NutritionCooked)},
	{"couscous", row(376, 12.8, 0.6, 77.4, domain.NutritionDry)},
	{"couscous_cooked", row(112, 3.8, 0.2, 23.2, domain.NutritionCooked)},
	{"sweet_potato", row(86, 1.6, 0.1, 20, domain.NutritionRaw)},
	{"sweet_potato_cooked", row(90, 2, 0.1, 20.7, domain.NutritionCooked)},
	{"white_potato", row(77, 2, 0.1, 17.5, domain.NutritionRaw)},
	{"white_potato_cooked", row(87, 1.9, 0.1, 20.1, domain.NutritionCooked)},
	{"broccoli", row(34, 2.8, 0.4, 6.6, domain.NutritionRaw)},
	{"spinach", row(23, 2.9, 0.4, 3.6, domain.NutritionRaw)},
	{"bell_pepper", row(31, 1, 0.3, 6, domain.NutritionRaw)},
	{"zucchini", row(17, 1.2, 0.3, 3.1, domain.NutritionRaw)},
	{"carrot", row(41, 0.9, 0.2, 9.6, domain.NutritionRaw)},
	{"green_onion", row(32, 1.8, 0.2, 7.3, domain.NutritionRaw)},
	{"banana", row(89, 1.1, 0.3, 22.8, domain.NutritionRaw)},
	{"apple", row(52, 0.3, 0.2, 13.8, domain.NutritionRaw)},
	{"blueberry", row(57, 0.7, 0.3, 14.5, domain.NutritionRaw)},
	{"avocado", row(160, 2, 14.7, 8.5, domain.NutritionRaw)},
	{"olive_oil", row(884, 0, 100, 0, domain.NutritionAsSold)},
	{"peanut_butter", row(588, 25, 50, 20, domain.NutritionAsSold)},
	{"almond", row(579, 21.2, 49.9, 21.6, domain.NutritionRaw)},
	{"walnut", row(654, 15.2, 65.2, 13.7, domain.NutritionRaw)},
	{"chia_seed", row(486, 16.5, 30.7, 42.1, domain.NutritionDry)},
	{"black_bean", row(132, 8.9, 0.5, 23.7, domain.NutritionCooked)},
	{"chickpea", row(164, 8.9, 2.6, 27.4, domain.NutritionCooked)},
	{"lentils", row(116, 9, 0.4, 20.1, domain.NutritionCooked)},
	{"hummus", row(166, 7.9, 9.6, 14.3, domain.NutritionAsSold)},
	{"tomato_sauce", row(29, 1.4, 0.2, 6.6, domain.NutritionAsSold)},
	{"soy_sauce", row(53, 8, 0.1, 4.9, domain.NutritionLiquid)},
	{"cooking_spray", row(884, 0, 100, 0, domain.NutritionAsSold)},
	{"oat_milk", row(47, 1, 1.5, 7.5, domain.NutritionLiquid)},
	{"almond_milk", row(17, 0.6, 1.1, 0.6, domain.NutritionLiquid)},
	{"tortilla", row(312, 8.2, 7.2, 52, domain.NutritionAsSold)},
	{"soft_drink", row(42, 0, 0, 10.6, domain.NutritionLiquid)},
	{"mayonnaise", row(680, 1, 75, 0.6, domain.NutritionAsSold)},
	{"protein_bar", row(374, 30, 13, 36, domain.NutritionAsSold)},
	{"asparagus", row(20, 2.2, 0.1, 3.9, domain.NutritionRaw)},
	{"mushroom", row(22, 3.1, 0.3, 3.3, domain.NutritionRaw)},
	{"cucumber", row(15, 0.7, 0.1, 3.6, domain.NutritionRaw)},
	{"turkey_breast", row(135, 24, 3.6, 0, domain.NutritionRaw)},
	{"pork_loin", row(143, 22, 5.7, 0, domain.NutritionRaw)},
	{"tilapia", row(96, 20.1, 1.7, 0, domain.NutritionRaw)},
	{"tuna_canned", row(116, 25.5, 1, 0, domain.NutritionAsSold)},
	{"edamame", row(121, 11.9, 5.2, 8.9, domain.NutritionCooked)},
	{"feta_cheese", row(264, 14.2, 21.3, 4.1, domain.NutritionAsSold)},
	{"mozzarella", row(280, 28, 17, 3.1, domain.NutritionAsSold)},
	{"butter", row(717, 0.9, 81, 0.1, domain.NutritionAsSold)},
	{"honey", row(304, 0.3, 0, 82.4, domain.NutritionAsSold)},
	{"flour_ww", row(340, 13.2, 2.5, 72, domain.NutritionDry)},
	{"granola", row(471, 10, 20, 64, domain.NutritionAsSold)},
	{"strawberry", row(32, 0.7, 0.3, 7.7, domain.NutritionRaw)},
	{"orange", row(47, 0.9, 0.1, 11.8, domain.NutritionRaw)},
	{"cashew", row(553, 18.2, 43.9, 30.2, domain.NutritionRaw)},
	{"bagel", row(257, 10, 1.5, 50.5, domain.NutritionAsSold)},
	{"rice_cake", row(387, 8.2, 3, 81.2, domain.NutritionAsSold)},
	{"kale", row(49, 4.3, 0.9, 8.8, domain.NutritionRaw)},
	{"beet", row(43, 1.6, 0.2, 9.6, domain.NutritionRaw)},
}

func row(kcal, protein, fat, carb float64, state domain.NutritionState) domain.NutritionRow {
	return domain.NutritionRow{
		KcalPer100g:    kcal,
		ProteinPer100g: protein,
		FatPer100g:     fat,
		CarbPer100g:    carb,
		State:          state,
		Source:         domain.SourceHotPath,
		Confidence:     0.95,
	}
}

// HotPath is the self-audited in-memory dictionary, built once at
// package init time and safe for concurrent reads thereafter.
type HotPath struct {
	rows      map[string]domain.NutritionRow
	corrected []string
	rejected  []string
}

var defaultHotPath = buildHotPath()

// NewHotPath returns the shared, pre-audited hot-path store.
func NewHotPath() *HotPath { return defaultHotPath }

func buildHotPath() *HotPath {
	hp := &HotPath{rows: make(map[string]domain.NutritionRow, len(hotPathSeed))}
	for _, e := range hotPathSeed {
		reason, ok := passesIngestionGate(e.Row)
		if !ok {
			// Auto-correct: hot-path rows are hand-curated, so a
			// kcal-balance failure is almost always a transcription
			// slip in the stated kcal, not the macros. Recompute kcal
			// from macros rather than dropping a curated entry.
			if reason == "kcal_balance_exceeds_tolerance" {
				e.Row.KcalPer100g = 4*e.Row.ProteinPer100g + 4*e.Row.CarbPer100g + 9*e.Row.FatPer100g
				hp.corrected = append(hp.corrected, e.Key)
			} else {
				hp.rejected = append(hp.rejected, e.Key+": "+reason)
				continue
			}
		}
		if _, exists := hp.rows[e.Key]; exists {
			continue // first-writer-wins
		}
		hp.rows[e.Key] = e.Row
	}
	return hp
}

func (h *HotPath) Lookup(normalizedKey string) (domain.NutritionRow, bool) {
	r, ok := h.rows[normalizedKey]
	return r, ok
}

func (h *HotPath) Size() int { return len(h.rows) }

// AuditReport exposes the self-audit outcome, surfaced at startup
// logging and exercised directly by tests.
func (h *HotPath) AuditReport() (corrected, rejected []string) {
	return h.corrected, h.rejected
}
