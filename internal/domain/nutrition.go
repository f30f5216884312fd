package domain

// NutritionState describes the physical state a NutritionRow's
// per-100g figures were measured in (§3).
type NutritionState string

const (
	NutritionRaw    NutritionState = "raw"
	NutritionDry    NutritionState = "dry"
	NutritionCooked NutritionState = "cooked"
	NutritionAsSold NutritionState = "as_sold"
	NutritionLiquid NutritionState = "liquid"
	NutritionPowder NutritionState = "powder"
)

// NutritionSource records which tier of C5's lookup produced a row,
// used for confidence scoring and debug bundles.
type NutritionSource string

const (
	SourceHotPath  NutritionSource = "hotpath"
	SourceCanonical NutritionSource = "canonical"
	SourceExternalBarcode NutritionSource = "external_barcode"
	SourceExternalQuery   NutritionSource = "external_query"
)

// NutritionRow is the per-100g figure set for one ingredient/SKU,
// carrying the provenance the ledger needs to justify every number.
type NutritionRow struct {
	Macros         Macros          `json:"-"`
	KcalPer100g    float64         `json:"kcal_per_100g"`
	ProteinPer100g float64         `json:"protein_per_100g"`
	FatPer100g     float64         `json:"fat_per_100g"`
	CarbPer100g    float64         `json:"carb_per_100g"`
	FiberPer100g   float64         `json:"fiber_per_100g"`
	State          NutritionState  `json:"state"`
	YieldFactor    float64         `json:"yield_factor,omitempty"`
	DensityGPerML  float64         `json:"density_g_per_ml,omitempty"`
	Source         NutritionSource `json:"source"`
	Confidence     float64         `json:"confidence"`
}

// AsMacros projects the per-100g row onto the shared Macros shape so
// fingerprint-tolerance math can reuse one type everywhere.
func (r NutritionRow) AsMacros() Macros {
	return Macros{Kcal: r.KcalPer100g, Protein: r.ProteinPer100g, Fat: r.FatPer100g, Carb: r.CarbPer100g}
}

// KcalBalance returns the relative deviation between the row's stated
// kcal and the kcal implied by its macros (4p + 4c + 9f), the
// invariant every row must satisfy within 5% (P1/P2).
func (r NutritionRow) KcalBalance() float64 {
	implied := 4*r.ProteinPer100g + 4*r.CarbPer100g + 9*r.FatPer100g
	denom := r.KcalPer100g
	if denom <= 0 {
		denom = 1
	}
	d := implied - r.KcalPer100g
	if d < 0 {
		d = -d
	}
	return d / denom
}
