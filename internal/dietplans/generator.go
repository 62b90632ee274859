package dietplans

import (
	"math"

	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
	"github.com/nkhandel/dietplanner-backend/pkg/types"
)

const goalCalorieDelta = 500

var activityMultipliers = map[enums.ActivityLevel]float64{
	enums.ActivityLevelSedentary:  1.2,
	enums.ActivityLevelLight:      1.375,
	enums.ActivityLevelModerate:   1.55,
	enums.ActivityLevelActive:     1.725,
	enums.ActivityLevelVeryActive: 1.9,
}

// mealShares is the fixed calorie split across the day. Each share is
// truncated independently, so the slots may sum to slightly less than the
// daily target. Clients show the per-slot numbers, not the sum.
var mealShares = map[enums.MealSlot]float64{
	enums.MealSlotBreakfast: 0.25,
	enums.MealSlotLunch:     0.35,
	enums.MealSlotDinner:    0.30,
	enums.MealSlotSnacks:    0.10,
}

// Computation carries the derived numbers for one generated plan.
type Computation struct {
	BMR            float64
	TDEE           float64
	TargetCalories int
	Meals          types.MealPlan
}

// Compute derives the full plan from body metrics using the revised
// Harris-Benedict equations.
func Compute(profile *models.Profile, goal enums.FitnessGoal) (*Computation, error) {
	if profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile required")
	}
	if profile.Age <= 0 || profile.HeightCM <= 0 || profile.WeightKG <= 0 || !profile.Gender.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile is incomplete")
	}
	if !goal.IsSet() || !goal.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fitness goal required")
	}

	bmr := computeBMR(profile)
	tdee := computeTDEE(bmr, profile.ActivityLevel)
	target := adjustForGoal(tdee, goal)

	return &Computation{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: target,
		Meals:          buildMealPlan(target, goal),
	}, nil
}

func computeBMR(profile *models.Profile) float64 {
	var bmr float64
	if profile.Gender == enums.GenderMale {
		bmr = 88.362 + (13.397 * profile.WeightKG) + (4.799 * profile.HeightCM) - (5.677 * float64(profile.Age))
	} else {
		bmr = 447.593 + (9.247 * profile.WeightKG) + (3.098 * profile.HeightCM) - (4.330 * float64(profile.Age))
	}
	return round2(bmr)
}

func computeTDEE(bmr float64, level enums.ActivityLevel) float64 {
	multiplier, ok := activityMultipliers[level]
	if !ok {
		multiplier = activityMultipliers[enums.ActivityLevelSedentary]
	}
	return round2(bmr * multiplier)
}

func adjustForGoal(tdee float64, goal enums.FitnessGoal) int {
	switch goal {
	case enums.FitnessGoalWeightLoss:
		return int(tdee - goalCalorieDelta)
	case enums.FitnessGoalWeightGain:
		return int(tdee + goalCalorieDelta)
	default:
		return int(tdee)
	}
}

func buildMealPlan(targetCalories int, goal enums.FitnessGoal) types.MealPlan {
	menu := menuFor(goal)
	plan := make(types.MealPlan, 0, len(enums.MealSlots))
	for _, slot := range enums.MealSlots {
		plan = append(plan, types.Meal{
			Slot:     slot,
			Calories: int(float64(targetCalories) * mealShares[slot]),
			Foods:    menu[slot],
		})
	}
	return plan
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
