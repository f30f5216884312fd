package nutrition

import "github.com/mealpath/mealplan-engine/internal/domain"

// Offline chains the hot-path dictionary ahead of the canonical store,
// the order C5 checks before ever reaching the network (§4.3, §4.4).
type Offline struct {
	hotPath   *HotPath
	canonical *Canonical
}

func NewOffline() *Offline {
	return &Offline{hotPath: NewHotPath(), canonical: NewCanonical()}
}

// Lookup tries the hot path first, falling back to the canonical
// store, and reports which tier answered.
func (o *Offline) Lookup(normalizedKey string) (domain.NutritionRow, domain.NutritionSource, bool) {
	if r, ok := o.hotPath.Lookup(normalizedKey); ok {
		return r, domain.SourceHotPath, true
	}
	if r, ok := o.canonical.Lookup(normalizedKey); ok {
		return r, domain.SourceCanonical, true
	}
	return domain.NutritionRow{}, "", false
}
