package domain

// Category loosely groups CIDs for §4.7's category hard-gate and
// §4.10's produce size-check bypass.
type Category string

const (
	CategoryProduce  Category = "produce"
	CategoryProtein  Category = "protein"
	CategoryGrain    Category = "grain"
	CategoryDairy    Category = "dairy"
	CategoryFat      Category = "fat"
	CategoryPantry   Category = "pantry"
	CategoryBakery   Category = "bakery"
	CategoryBeverage Category = "beverage"
)

// IngredientSpec is a CID entry in the canonical registry (C2), static
// for the lifetime of the process.
type IngredientSpec struct {
	CID                   string
	DisplayName           string
	Category              Category
	AllowedStoreCategories []string
	MustInclude           []string
	MustExclude           []string
	ExpectedMacrosPer100g Macros
	TypicalPackSizesG     []float64
	// IsPantryItem widens the size-sanity upper bound per §4.7.
	IsPantryItem bool
	// RequiresCategoryGate names CIDs (oil sprays, soy sauce, pasta,
	// bakery) where an explicit substring match on the product
	// category is required rather than a soft allowed-categories check.
	RequiresCategoryGate bool
}

// QtyUnit enumerates the units the LLM sketch may express a planned
// quantity in.
type QtyUnit string

const (
	UnitGram   QtyUnit = "g"
	UnitML     QtyUnit = "ml"
	UnitSlice  QtyUnit = "slice"
	UnitEgg    QtyUnit = "egg"
	UnitMedium QtyUnit = "medium"
	UnitLarge  QtyUnit = "large"
)

// StateHint and MethodHint describe how the LLM imagined the
// ingredient being prepared; they inform yield/density lookups in C5.
type StateHint string

const (
	StateDry    StateHint = "dry"
	StateRaw    StateHint = "raw"
	StateCooked StateHint = "cooked"
	StateAsPack StateHint = "as_pack"
)

type MethodHint string

const (
	MethodBoiled   MethodHint = "boiled"
	MethodPanFried MethodHint = "pan_fried"
	MethodGrilled  MethodHint = "grilled"
	MethodBaked    MethodHint = "baked"
	MethodSteamed  MethodHint = "steamed"
	MethodNone     MethodHint = ""
)

// PlannedIngredient is one line item of the LLM's meal sketch, later
// augmented by C1/C2 resolution.
type PlannedIngredient struct {
	DisplayName string     `json:"display_name"`
	QtyValue    float64    `json:"qty_value"`
	QtyUnit     QtyUnit    `json:"qty_unit"`
	StateHint   StateHint  `json:"state_hint,omitempty"`
	MethodHint  MethodHint `json:"method_hint,omitempty"`

	// Populated after resolution (C1/C2).
	CID            string  `json:"cid,omitempty"`
	NormalizedKey  string  `json:"normalized_key,omitempty"`
	RequiredGrams  float64 `json:"required_grams,omitempty"`
	MinG           float64 `json:"min_g,omitempty"`
	MaxG           float64 `json:"max_g,omitempty"`
}

// MealType enumerates the eating occasions spec.md §3 allows.
type MealType string

const (
	MealBreakfast MealType = "B"
	MealLunch     MealType = "L"
	MealDinner    MealType = "D"
	MealSnack1    MealType = "S1"
	MealSnack2    MealType = "S2"
)

// ItemSolution is one ingredient's final grams within a meal, as
// produced by the Portion Solver (C10).
type ItemSolution struct {
	CID   string  `json:"cid"`
	Grams float64 `json:"grams"`
}

// Meal is one eating occasion with its own macro sub-target.
type Meal struct {
	MealID     string              `json:"meal_id"`
	Type       MealType            `json:"type"`
	Title      string              `json:"title"`
	Targets    Macros              `json:"targets"`
	Tolerances Tolerances          `json:"tolerances"`
	Items      []PlannedIngredient `json:"items"`
	Solution   []ItemSolution      `json:"solution,omitempty"`
	FinalMacros Macros             `json:"final_macros,omitempty"`
}

// DayPlan is an ordered list of meals plus the day's macro aggregate.
type DayPlan struct {
	Day   int     `json:"day"`
	Meals []Meal  `json:"meals"`
	Totals Macros `json:"totals"`
}
