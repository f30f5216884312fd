// Package validator implements C7: the product-candidate gate chain
// that decides whether a supermarket search result is plausibly the
// ingredient it was queried for, before C8 ever considers its price.
package validator

import (
	"strings"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/normalize"
)

// bannedKeywords reject a candidate outright regardless of CID —
// products that are never food, or never the sellable unit the engine
// means (gift cards, toys, decorative items, accessories).
var bannedKeywords = []string{
	"gift_card", "gift card", "voucher", "toy", "figurine", "decoration",
	"costume", "candle", "air_freshener", "air freshener", "plush",
}

// expandedNegativeKeywords reject non-food household goods that
// otherwise share aisle/category metadata with legitimate groceries.
var expandedNegativeKeywords = []string{
	"shampoo", "conditioner", "detergent", "cleaner", "bleach",
	"fertilizer", "pesticide", "cat litter", "dog food", "motor oil",
}

const (
	normalSizeTolerance = 1.5
	pantrySizeTolerance = 3.0
	minSizeTolerance     = 0.5
	unitPriceCeiling    = 40.0 // dollars per 100g/100ml, generous upper bound
)

// Gate is one step of the validation chain; it returns a rejection
// reason and false when the candidate should be dropped. memo may be
// nil; gates that normalize strings use it to avoid re-normalizing
// the same spec words across every candidate checked for one CID.
type Gate func(sku domain.SKUCandidate, spec domain.IngredientSpec, memo *normalize.Memo) (string, bool)

var chain = []Gate{
	bannedKeywordGate,
	expandedNegativeKeywordGate,
	requiredWordGate,
	categoryGate,
	sizeSanityGate,
	unitPriceSanityGate,
}

// Outcome is the gate chain's verdict for one candidate: the
// validate(sku, spec) -> {pass, reason?, score} operation of §4.7.
// Score is only meaningful when Pass is true; it feeds both the
// market run's tight-rung skip heuristic and the chosen SKU's
// confidence.
type Outcome struct {
	Pass   bool
	Reason string
	Score  float64
}

// Validate runs sku through every gate in order, stopping at the
// first rejection (§4.7). A candidate that survives every gate is
// scored by how strongly it matches spec. memo, when non-nil, caches
// normalization across every candidate the caller validates against
// the same spec in one market run.
func Validate(sku domain.SKUCandidate, spec domain.IngredientSpec, memo *normalize.Memo) Outcome {
	for _, gate := range chain {
		if reason, ok := gate(sku, spec, memo); !ok {
			return Outcome{Pass: false, Reason: reason}
		}
	}
	return Outcome{Pass: true, Score: scoreFor(sku, spec)}
}

// normalizeWith runs raw through memo when one is provided, falling
// back to a fresh Normalize call otherwise.
func normalizeWith(memo *normalize.Memo, raw string) string {
	if memo != nil {
		return memo.Normalize(raw)
	}
	return normalize.Normalize(raw)
}

// scoreFor rates a surviving candidate against the soft signals the
// hard gates above don't themselves reject on: a category match
// against spec.AllowedStoreCategories (when spec declares any), and a
// pack size that falls inside the typical range rather than merely
// the widened tolerance sizeSanityGate accepts. A candidate with no
// soft signal to fail (spec declares no AllowedStoreCategories or no
// TypicalPackSizesG) isn't penalized for it. The three components sum
// to 1.0 for a fully-matching candidate, which is what the market
// run's skip-heuristic threshold (§4.8) expects.
func scoreFor(sku domain.SKUCandidate, spec domain.IngredientSpec) float64 {
	score := 0.5 // base: passed required-word/banned/price gates

	if len(spec.AllowedStoreCategories) == 0 {
		score += 0.3
	} else if _, found := containsAny(sku.Category, spec.AllowedStoreCategories); found {
		score += 0.3
	}

	if len(spec.TypicalPackSizesG) == 0 {
		score += 0.2
	} else {
		size := sku.SizeInBaseUnits()
		minTypical, maxTypical := spec.TypicalPackSizesG[0], spec.TypicalPackSizesG[0]
		for _, s := range spec.TypicalPackSizesG {
			if s < minTypical {
				minTypical = s
			}
			if s > maxTypical {
				maxTypical = s
			}
		}
		if size >= minTypical && size <= maxTypical {
			score += 0.2
		}
	}

	return score
}

func containsAny(haystack string, needles []string) (string, bool) {
	lower := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return n, true
		}
	}
	return "", false
}

func bannedKeywordGate(sku domain.SKUCandidate, _ domain.IngredientSpec, _ *normalize.Memo) (string, bool) {
	if word, found := containsAny(sku.Title, bannedKeywords); found {
		return "banned_keyword:" + word, false
	}
	return "", true
}

func expandedNegativeKeywordGate(sku domain.SKUCandidate, spec domain.IngredientSpec, _ *normalize.Memo) (string, bool) {
	if word, found := containsAny(sku.Title, expandedNegativeKeywords); found {
		return "negative_keyword:" + word, false
	}
	if word, found := containsAny(sku.Title, spec.MustExclude); found {
		return "excluded_term:" + word, false
	}
	return "", true
}

// requiredWordGate requires at least one MustInclude word (or its
// singular/plural lemma) to appear in the title, the "required-word
// ANY" rule (§4.7) — a spec with no MustInclude words always passes.
func requiredWordGate(sku domain.SKUCandidate, spec domain.IngredientSpec, memo *normalize.Memo) (string, bool) {
	if len(spec.MustInclude) == 0 {
		return "", true
	}
	title := normalizeWith(memo, sku.Title)
	for _, must := range spec.MustInclude {
		lemma := normalizeWith(memo, must)
		if lemma == "" {
			continue
		}
		if strings.Contains(title, lemma) {
			return "", true
		}
	}
	return "no_required_word_matched", false
}

// categoryGate is a hard gate for CIDs that require an explicit
// category match (oil sprays, soy sauce, pasta, bakery — generic
// titles that collide with unrelated product lines); for every other
// CID it never rejects, but scoreFor still consults
// spec.AllowedStoreCategories as a soft signal (§4.7).
func categoryGate(sku domain.SKUCandidate, spec domain.IngredientSpec, _ *normalize.Memo) (string, bool) {
	if !spec.RequiresCategoryGate {
		return "", true
	}
	if len(spec.AllowedStoreCategories) == 0 {
		return "", true
	}
	if _, found := containsAny(sku.Category, spec.AllowedStoreCategories); found {
		return "", true
	}
	return "category_gate_failed", false
}

// sizeSanityGate rejects pack sizes implausible for the ingredient,
// widened for pantry items which come in far more varied pack sizes.
// Produce is exempt: a bunch of bananas, a single sweet potato, and a
// 5lb bag all satisfy the same CID at wildly different pack weights,
// so the check would reject good candidates more often than bad ones.
func sizeSanityGate(sku domain.SKUCandidate, spec domain.IngredientSpec, _ *normalize.Memo) (string, bool) {
	if spec.Category == domain.CategoryProduce {
		return "", true
	}
	if len(spec.TypicalPackSizesG) == 0 {
		return "", true
	}
	size := sku.SizeInBaseUnits()
	if size <= 0 {
		return "size_non_positive", false
	}

	tolerance := normalSizeTolerance
	if spec.IsPantryItem {
		tolerance = pantrySizeTolerance
	}

	minTypical, maxTypical := spec.TypicalPackSizesG[0], spec.TypicalPackSizesG[0]
	for _, s := range spec.TypicalPackSizesG {
		if s < minTypical {
			minTypical = s
		}
		if s > maxTypical {
			maxTypical = s
		}
	}

	lowerBound := minTypical * minSizeTolerance
	upperBound := maxTypical * tolerance
	if size < lowerBound || size > upperBound {
		return "size_out_of_plausible_range", false
	}
	return "", true
}

func unitPriceSanityGate(sku domain.SKUCandidate, _ domain.IngredientSpec, _ *normalize.Memo) (string, bool) {
	up, _ := sku.UnitPricePer100.Float64()
	if up <= 0 {
		return "unit_price_non_positive", false
	}
	if up > unitPriceCeiling {
		return "unit_price_exceeds_ceiling", false
	}
	return "", true
}
