// Package contract implements C9: deriving a MacroContract from a
// Profile via the Mifflin-St Jeor equation, activity-scaled TDEE, a
// goal-based percentage adjustment, and a protein/fat/carb split that
// respects hard caps while only logging — never silently discarding —
// a soft-floor violation (§4.9).
package contract

import (
	"github.com/mealpath/mealplan-engine/internal/domain"
	apperr "github.com/mealpath/mealplan-engine/pkg/errors"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
)

// activityFactors scales BMR into TDEE.
var activityFactors = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

// goalAdjustments is the fixed percentage TDEE is shifted by for each
// goal (negative values cut, positive values bulk).
var goalAdjustments = map[domain.Goal]float64{
	domain.GoalCutAggressive:  -0.25,
	domain.GoalCutModerate:    -0.15,
	domain.GoalMaintain:       0,
	domain.GoalBulkLean:       0.10,
	domain.GoalBulkAggressive: 0.20,
}

// proteinGPerKgByGoal is the soft protein target (§4.9's "higher
// protein on a cut to preserve lean mass"), checked against the hard
// cap afterward.
var proteinGPerKgByGoal = map[domain.Goal]float64{
	domain.GoalCutAggressive:  2.2,
	domain.GoalCutModerate:    2.0,
	domain.GoalMaintain:       1.8,
	domain.GoalBulkLean:       1.8,
	domain.GoalBulkAggressive: 1.6,
}

// fatPctOfKcal is the default share of total kcal allotted to fat
// before the hard cap is applied.
const fatPctOfKcal = 0.30

// Limits carries the hard-cap and tolerance configuration (mirrors
// pkg/config.HardCapsConfig/TolerancesConfig without importing the
// config package, keeping this package's dependency surface to just
// domain + errors + logger).
type Limits struct {
	ProteinMaxGPerKg float64
	FatMaxMultiple   float64
	CarbMinMultiple  float64
	MinKcal          float64

	KcalPct      float64
	MacroPct     float64
	CarbFloorPct float64
}

// Build computes a MacroContract for profile. It returns an AppError
// of kind solver_infeasible with code CARBS_TOO_LOW only when even the most conservative split
// cannot keep carbs at or above the hard floor — e.g. an aggressive
// cut paired with a very high protein requirement on a light frame
// (§8's "impossible aggressive cut" boundary scenario).
func Build(profile domain.Profile, limits Limits, log *applogger.Logger) (domain.MacroContract, error) {
	bmr := mifflinStJeor(profile)
	factor, ok := activityFactors[profile.Activity]
	if !ok {
		factor = activityFactors[domain.ActivitySedentary]
	}
	tdee := bmr * factor

	adjustment := goalAdjustments[profile.Goal]
	kcal := tdee * (1 + adjustment)
	if kcal < limits.MinKcal {
		log.Warn("computed kcal below floor, clamping", "computed", kcal, "floor", limits.MinKcal)
		kcal = limits.MinKcal
	}

	proteinPerKg := proteinGPerKgByGoal[profile.Goal]
	if proteinPerKg == 0 {
		proteinPerKg = proteinGPerKgByGoal[domain.GoalMaintain]
	}
	proteinMax := profile.WeightKG * limits.ProteinMaxGPerKg
	protein := profile.WeightKG * proteinPerKg
	if protein > proteinMax {
		protein = proteinMax
	}

	fatMax := profile.WeightKG * limits.FatMaxMultiple
	fat := kcal * fatPctOfKcal / 9
	if fat > fatMax {
		fat = fatMax
	}

	proteinKcal := protein * 4
	fatKcal := fat * 9
	carbKcal := kcal - proteinKcal - fatKcal
	carb := carbKcal / 4
	carbMin := profile.WeightKG * limits.CarbMinMultiple

	if carb < 0 {
		carb = 0
	}
	if carb < carbMin {
		log.Warn("carb allocation below hard floor after protein/fat split", "carb", carb, "carb_min", carbMin)
		// One remediation attempt: trim fat toward its own floor (but
		// never below zero) to free kcal for carbs before giving up.
		deficit := (carbMin - carb) * 4
		fatReduction := deficit / 9
		if fat-fatReduction >= 0 {
			fat -= fatReduction
			fatKcal = fat * 9
			carb = (kcal - proteinKcal - fatKcal) / 4
		}
	}

	if carb < carbMin {
		return domain.MacroContract{}, apperr.New(
			apperr.KindSolverInfeasible,
			apperr.CodeCarbsTooLow,
			"goal and profile combination cannot satisfy the carb hard floor",
		).WithContext("kcal", kcal).
			WithContext("protein_g", protein).
			WithContext("fat_g", fat).
			WithContext("carb_g", carb).
			WithContext("carb_min", carbMin)
	}

	// Soft floors (1.6 g/kg protein, 0.8 g/kg fat) are logged only,
	// never enforced.
	if protein < profile.WeightKG*1.6 {
		log.Warn("protein below soft floor", "protein_g", protein, "soft_floor", profile.WeightKG*1.6)
	}
	if fat < profile.WeightKG*0.8 {
		log.Warn("fat below soft floor", "fat_g", fat, "soft_floor", profile.WeightKG*0.8)
	}

	return domain.MacroContract{
		Kcal:    round1(kcal),
		Protein: round1(protein),
		Fat:     round1(fat),
		Carb:    round1(carb),
		Tolerances: domain.Tolerances{
			KcalPct:      limits.KcalPct,
			ProteinPct:   limits.MacroPct,
			FatPct:       limits.MacroPct,
			CarbPct:      limits.MacroPct,
			CarbFloorPct: limits.CarbFloorPct,
		},
		HardCaps: domain.HardCaps{
			ProteinMax: round1(proteinMax),
			FatMax:     round1(fatMax),
			CarbMin:    round1(carbMin),
		},
	}, nil
}

// mifflinStJeor computes basal metabolic rate.
func mifflinStJeor(p domain.Profile) float64 {
	base := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Sex == domain.SexMale {
		return base + 5
	}
	return base - 161
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
