package nutrition

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mealpath/mealplan-engine/internal/domain"
)

//go:embed canonical_data.json
var canonicalJSON []byte

type canonicalRecord struct {
	Key     string  `json:"key"`
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Carb    float64 `json:"carb"`
	State   string  `json:"state"`
}

// Canonical is the broader, embedded secondary tier (C4): ingested
// once at process start from a JSON snapshot, gated the same way any
// external row would be, so a bad row in the snapshot can't silently
// poison a ledger.
type Canonical struct {
	rows     map[string]domain.NutritionRow
	rejected []string
}

var defaultCanonical = mustBuildCanonical()

// NewCanonical returns the shared, pre-audited canonical store.
func NewCanonical() *Canonical { return defaultCanonical }

func mustBuildCanonical() *Canonical {
	c, err := buildCanonical(canonicalJSON)
	if err != nil {
		panic(fmt.Sprintf("nutrition: embedded canonical data is malformed: %v", err))
	}
	return c
}

func buildCanonical(raw []byte) (*Canonical, error) {
	var records []canonicalRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	c := &Canonical{rows: make(map[string]domain.NutritionRow, len(records))}
	for _, rec := range records {
		nr := domain.NutritionRow{
			KcalPer100g:    rec.Kcal,
			ProteinPer100g: rec.Protein,
			FatPer100g:     rec.Fat,
			CarbPer100g:    rec.Carb,
			State:          domain.NutritionState(rec.State),
			Source:         domain.SourceCanonical,
			Confidence:     0.85,
		}
		if reason, ok := passesIngestionGate(nr); !ok {
			c.rejected = append(c.rejected, rec.Key+": "+reason)
			continue
		}
		if _, exists := c.rows[rec.Key]; exists {
			c.rejected = append(c.rejected, rec.Key+": duplicate_key_first_writer_wins")
			continue
		}
		c.rows[rec.Key] = nr
	}
	return c, nil
}

func (c *Canonical) Lookup(normalizedKey string) (domain.NutritionRow, bool) {
	r, ok := c.rows[normalizedKey]
	return r, ok
}

func (c *Canonical) Size() int { return len(c.rows) }

func (c *Canonical) Rejected() []string { return c.rejected }
