package domain

import "github.com/shopspring/decimal"

// SizeUnit is the unit a SKU's pack size is expressed in.
type SizeUnit string

const (
	SizeGram SizeUnit = "g"
	SizeML   SizeUnit = "ml"
)

// Size is a SKU's declared pack size.
type Size struct {
	Value float64  `json:"value"`
	Unit  SizeUnit `json:"unit"`
}

// SKUCandidate is one supermarket search result before validation.
// Prices use decimal.Decimal (not float64) to avoid the cent-drift
// that repeated unit-price arithmetic would otherwise accumulate
// across the outlier guard and cheapest-pick comparisons in C7/C8.
type SKUCandidate struct {
	Title          string          `json:"title"`
	Brand          string          `json:"brand,omitempty"`
	Category       string          `json:"category"`
	Price          decimal.Decimal `json:"price"`
	Size           Size            `json:"size"`
	URL            string          `json:"url"`
	Barcode        string          `json:"barcode,omitempty"`
	UnitPricePer100 decimal.Decimal `json:"unit_price_per_100"`
}

// SizeInBaseUnits returns the SKU's size normalized to grams (for
// SizeGram) or milliliters (for SizeML) as a bare float, which is all
// the size-sanity gate (§4.7) needs.
func (s SKUCandidate) SizeInBaseUnits() float64 { return s.Size.Value }

// RejectionReason is attached to every candidate the Product
// Validator (C7) or Market Run (C8) drops, so the debug bundle can
// explain why.
type RejectionReason struct {
	Candidate SKUCandidate `json:"candidate"`
	Reason    string       `json:"reason"`
}

// QueryAttempt records one rung of the ladder executed for an
// ingredient (§4.8).
type QueryAttempt struct {
	Rung       string   `json:"rung"` // tight | normal | wide
	Query      string   `json:"query"`
	ResultCount int     `json:"result_count"`
	Error      string   `json:"error,omitempty"`
}

// ResolvedIngredient is C8+C5's joint output for one CID.
type ResolvedIngredient struct {
	CID              string            `json:"cid"`
	ChosenSKU        *SKUCandidate     `json:"chosen_sku,omitempty"`
	Confidence       float64           `json:"confidence"`
	NutritionPer100g *NutritionRow     `json:"nutrition_per_100g,omitempty"`
	Debug            ResolvedDebug     `json:"debug"`
}

// ResolvedDebug is the per-ingredient audit trail surfaced in the
// response's `results` map (§6).
type ResolvedDebug struct {
	Queries   []string           `json:"queries"`
	Attempts  []QueryAttempt     `json:"attempts"`
	Rejected  []RejectionReason  `json:"rejected"`
}

// OutcomeKind is the taxonomy from §4.8.
type OutcomeKind string

const (
	OutcomeDiscovery        OutcomeKind = "discovery"
	OutcomeFailed           OutcomeKind = "failed"
	OutcomeError            OutcomeKind = "error"
	OutcomeCanonicalFallback OutcomeKind = "canonical_fallback"
)

// MarketRunResult is the per-ingredient outcome produced by C8.
type MarketRunResult struct {
	CID        string             `json:"cid"`
	Kind       OutcomeKind        `json:"kind"`
	Resolved   ResolvedIngredient `json:"resolved"`
	ErrMessage string             `json:"error_message,omitempty"`
}

// LedgerRow is additive in grams: summed per-ingredient totals that
// roll up into a meal's/day's ledger (§3, P3).
type LedgerRow struct {
	CID         string  `json:"cid"`
	TotalGrams  float64 `json:"total_grams"`
	Kcal        float64 `json:"kcal"`
	Protein     float64 `json:"p"`
	Fat         float64 `json:"f"`
	Carb        float64 `json:"c"`
}
