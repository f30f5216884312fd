package validator

import (
	"math"

	"github.com/mealpath/mealplan-engine/internal/domain"
)

// outlierZCeiling is the z-score beyond which a candidate's unit
// price is dropped as an outlier within its own result set (§4.7).
const outlierZCeiling = 2.0

// ApplyPriceOutlierGuard drops candidates whose unit price deviates
// from the set's mean by more than outlierZCeiling standard
// deviations. Fewer than 3 candidates is too small a sample to judge,
// so the guard is a no-op in that case.
func ApplyPriceOutlierGuard(candidates []domain.SKUCandidate) ([]domain.SKUCandidate, []domain.RejectionReason) {
	if len(candidates) < 3 {
		return candidates, nil
	}

	prices := make([]float64, len(candidates))
	var sum float64
	for i, c := range candidates {
		p, _ := c.UnitPricePer100.Float64()
		prices[i] = p
		sum += p
	}
	mean := sum / float64(len(prices))

	var variance float64
	for _, p := range prices {
		d := p - mean
		variance += d * d
	}
	variance /= float64(len(prices))
	stddev := math.Sqrt(variance)

	if stddev == 0 {
		return candidates, nil
	}

	kept := make([]domain.SKUCandidate, 0, len(candidates))
	var rejected []domain.RejectionReason
	for i, c := range candidates {
		z := (prices[i] - mean) / stddev
		if math.Abs(z) > outlierZCeiling {
			rejected = append(rejected, domain.RejectionReason{Candidate: c, Reason: "price_outlier"})
			continue
		}
		kept = append(kept, c)
	}
	return kept, rejected
}
