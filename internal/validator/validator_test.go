package validator

import (
	"testing"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/normalize"
	"github.com/shopspring/decimal"
)

func spec() domain.IngredientSpec {
	return domain.IngredientSpec{
		CID:                    "chicken_breast",
		DisplayName:            "chicken breast",
		Category:               domain.CategoryProtein,
		AllowedStoreCategories: []string{"meat", "poultry"},
		MustInclude:            []string{"chicken", "breast"},
		MustExclude:            []string{"nugget", "broth"},
		TypicalPackSizesG:      []float64{400, 700, 1000},
	}
}

func candidate(title string, sizeG float64, priceUSD float64) domain.SKUCandidate {
	price := decimal.NewFromFloat(priceUSD)
	unitPrice := decimal.Zero
	if sizeG > 0 {
		unitPrice = price.Div(decimal.NewFromFloat(sizeG)).Mul(decimal.NewFromInt(100))
	}
	return domain.SKUCandidate{
		Title:           title,
		Category:        "meat",
		Price:           price,
		Size:            domain.Size{Value: sizeG, Unit: domain.SizeGram},
		UnitPricePer100: unitPrice,
	}
}

func TestValidatePassesGoodCandidate(t *testing.T) {
	sku := candidate("Fresh Chicken Breast 700g", 700, 8.00)
	r := Validate(sku, spec(), nil)
	if !r.Pass {
		t.Fatalf("expected candidate to pass, got rejection: %v", r.Reason)
	}
	if r.Score != 1.0 {
		t.Fatalf("expected a full-match score of 1.0, got %v", r.Score)
	}
}

func TestValidateRejectsBannedKeyword(t *testing.T) {
	sku := candidate("Chicken Breast Gift Card", 700, 25.00)
	if r := Validate(sku, spec(), nil); r.Pass {
		t.Fatal("expected rejection for banned keyword")
	}
}

func TestValidateRejectsExcludedTerm(t *testing.T) {
	sku := candidate("Chicken Breast Nugget Pack", 700, 8.00)
	if r := Validate(sku, spec(), nil); r.Pass {
		t.Fatal("expected rejection for excluded term")
	}
}

func TestValidateRejectsMissingRequiredWord(t *testing.T) {
	sku := candidate("Ground Turkey", 500, 6.00)
	if r := Validate(sku, spec(), nil); r.Pass {
		t.Fatal("expected rejection for missing required word")
	}
}

func TestValidateRejectsImplausibleSize(t *testing.T) {
	sku := candidate("Chicken Breast Mega Case 50000g", 50000, 400.00)
	if r := Validate(sku, spec(), nil); r.Pass {
		t.Fatal("expected rejection for implausible size")
	}
}

func TestValidatePantryWidensSizeTolerance(t *testing.T) {
	pantrySpec := spec()
	pantrySpec.IsPantryItem = true
	pantrySpec.MustInclude = nil
	sku := candidate("Bulk product", 2800, 10.00) // 2.8x the max typical, fails normal tolerance
	if r := Validate(sku, pantrySpec, nil); !r.Pass {
		t.Fatalf("expected pantry tolerance to allow this size, got %v", r.Reason)
	}
}

func TestValidateRejectsUnitPriceCeiling(t *testing.T) {
	sku := candidate("Chicken Breast Premium 400g", 400, 200.00)
	if r := Validate(sku, spec(), nil); r.Pass {
		t.Fatal("expected rejection for unit price exceeding ceiling")
	}
}

func TestValidateProduceBypassesSizeSanity(t *testing.T) {
	produceSpec := domain.IngredientSpec{
		CID:               "banana",
		DisplayName:       "banana",
		Category:          domain.CategoryProduce,
		MustInclude:       []string{"banana"},
		TypicalPackSizesG: []float64{150, 700}, // a single banana vs. a bunch
	}
	sku := candidate("Organic Bananas 5lb Bag", 2268, 3.50) // far outside the typical range
	r := Validate(sku, produceSpec, nil)
	if !r.Pass {
		t.Fatalf("expected produce category to bypass size sanity, got rejection: %v", r.Reason)
	}
}

func TestValidateNonProduceStillEnforcesSizeSanity(t *testing.T) {
	sku := candidate("Chicken Breast Mega Case 50000g", 50000, 400.00)
	r := Validate(sku, spec(), nil)
	if r.Pass {
		t.Fatal("expected non-produce category to still enforce size sanity")
	}
	if r.Reason != "size_out_of_plausible_range" {
		t.Fatalf("expected size_out_of_plausible_range, got %v", r.Reason)
	}
}

func TestValidateScoreLowerWithoutCategoryMatch(t *testing.T) {
	sku := candidate("Fresh Chicken Breast 700g", 700, 8.00)
	sku.Category = "pantry" // not in AllowedStoreCategories

	matching := Validate(candidate("Fresh Chicken Breast 700g", 700, 8.00), spec(), nil)
	mismatched := Validate(sku, spec(), nil)
	if !mismatched.Pass {
		t.Fatalf("category mismatch should lower score, not reject: %v", mismatched.Reason)
	}
	if mismatched.Score >= matching.Score {
		t.Fatalf("expected mismatched category to score lower: matching=%v mismatched=%v", matching.Score, mismatched.Score)
	}
}

func TestValidateUsesMemoAcrossCandidates(t *testing.T) {
	memo := normalize.NewMemo()
	a := Validate(candidate("Fresh Chicken Breast 700g", 700, 8.00), spec(), memo)
	b := Validate(candidate("Fresh Chicken Breast 1000g", 1000, 11.00), spec(), memo)
	if !a.Pass || !b.Pass {
		t.Fatalf("expected both candidates to pass: a=%+v b=%+v", a, b)
	}
	// The required-word gate stops at the first MustInclude word found
	// in the title, so that word ("chicken") is now cached in the memo.
	if _, ok := memo.Peek("chicken"); !ok {
		t.Fatal("expected 'chicken' to have been memoized after validating against spec.MustInclude")
	}
}

func TestApplyPriceOutlierGuardDropsOutlier(t *testing.T) {
	candidates := []domain.SKUCandidate{
		candidate("A", 500, 5.00),
		candidate("B", 500, 5.20),
		candidate("C", 500, 4.80),
		candidate("E", 500, 5.10),
		candidate("F", 500, 4.90),
		candidate("D", 500, 50.00), // wild outlier, z ≈ 2.24
	}
	kept, rejected := ApplyPriceOutlierGuard(candidates)
	if len(rejected) != 1 {
		t.Fatalf("expected exactly 1 outlier rejected, got %d", len(rejected))
	}
	if len(kept) != 5 {
		t.Fatalf("expected 5 candidates kept, got %d", len(kept))
	}
}

func TestApplyPriceOutlierGuardNoOpBelowThreshold(t *testing.T) {
	candidates := []domain.SKUCandidate{
		candidate("A", 500, 5.00),
		candidate("B", 500, 50.00),
	}
	kept, rejected := ApplyPriceOutlierGuard(candidates)
	if len(rejected) != 0 || len(kept) != 2 {
		t.Fatalf("expected no-op for small sample, got kept=%d rejected=%d", len(kept), len(rejected))
	}
}
