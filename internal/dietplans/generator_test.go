package dietplans

import (
	"reflect"
	"testing"

	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
)

func maleProfile() *models.Profile {
	return &models.Profile{
		Age:            30,
		Gender:         enums.GenderMale,
		HeightCM:       180,
		WeightKG:       80,
		TargetWeightKG: 75,
		ActivityLevel:  enums.ActivityLevelLight,
		FitnessGoal:    enums.FitnessGoalWeightLoss,
	}
}

func TestComputeBMRFormulas(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.Profile
		want    float64
	}{
		{
			name:    "male",
			profile: &models.Profile{Age: 30, Gender: enums.GenderMale, HeightCM: 180, WeightKG: 80},
			want:    1853.63,
		},
		{
			name:    "female",
			profile: &models.Profile{Age: 28, Gender: enums.GenderFemale, HeightCM: 165, WeightKG: 65},
			want:    1438.58,
		},
		{
			// other uses the non-male coefficients
			name:    "other",
			profile: &models.Profile{Age: 28, Gender: enums.GenderOther, HeightCM: 165, WeightKG: 65},
			want:    1438.58,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := computeBMR(tc.profile); got != tc.want {
				t.Fatalf("computeBMR() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestComputeTDEERoundsHalfUp(t *testing.T) {
	// 1780.50 * 1.55 = 2759.775, which must round up to 2759.78.
	if got := computeTDEE(1780.50, enums.ActivityLevelModerate); got != 2759.78 {
		t.Fatalf("computeTDEE() = %v, want 2759.78", got)
	}
}

func TestComputeTDEEUnknownLevelDefaultsToSedentary(t *testing.T) {
	if got := computeTDEE(2000, enums.ActivityLevel("couch")); got != 2400 {
		t.Fatalf("computeTDEE() = %v, want 2400", got)
	}
}

func TestAdjustForGoalTruncatesTowardZero(t *testing.T) {
	if got := adjustForGoal(2759.78, enums.FitnessGoalWeightLoss); got != 2259 {
		t.Fatalf("weight loss target = %d, want 2259", got)
	}
	if got := adjustForGoal(1726.30, enums.FitnessGoalWeightGain); got != 2226 {
		t.Fatalf("weight gain target = %d, want 2226", got)
	}
}

func TestMealSplitTruncatesEachSlotIndependently(t *testing.T) {
	plan := buildMealPlan(2259, enums.FitnessGoalWeightLoss)

	want := map[enums.MealSlot]int{
		enums.MealSlotBreakfast: 564,
		enums.MealSlotLunch:     790,
		enums.MealSlotDinner:    677,
		enums.MealSlotSnacks:    225,
	}
	sum := 0
	for _, meal := range plan {
		if meal.Calories != want[meal.Slot] {
			t.Fatalf("%s = %d, want %d", meal.Slot, meal.Calories, want[meal.Slot])
		}
		sum += meal.Calories
	}
	// Independent truncation loses calories against the daily target. That
	// drift is part of the contract and must not be corrected.
	if sum != 2256 {
		t.Fatalf("slot sum = %d, want 2256", sum)
	}
}

func TestMenuSelectionFollowsGoal(t *testing.T) {
	loss := buildMealPlan(2000, enums.FitnessGoalWeightLoss)
	if !reflect.DeepEqual(loss[0].Foods, weightLossMenu[enums.MealSlotBreakfast]) {
		t.Fatalf("weight loss breakfast menu mismatch: %v", loss[0].Foods)
	}

	gain := buildMealPlan(2000, enums.FitnessGoalWeightGain)
	if !reflect.DeepEqual(gain[0].Foods, weightGainMenu[enums.MealSlotBreakfast]) {
		t.Fatalf("weight gain breakfast menu mismatch: %v", gain[0].Foods)
	}
	if gain[0].Foods[0] != "Protein smoothie with banana (400 cal)" {
		t.Fatalf("unexpected first gain item %q", gain[0].Foods[0])
	}
}

func TestComputeFullPlan(t *testing.T) {
	computed, err := Compute(maleProfile(), enums.FitnessGoalWeightLoss)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if computed.BMR != 1853.63 {
		t.Fatalf("BMR = %v, want 1853.63", computed.BMR)
	}
	if computed.TDEE != 2548.74 {
		t.Fatalf("TDEE = %v, want 2548.74", computed.TDEE)
	}
	if computed.TargetCalories != 2048 {
		t.Fatalf("target = %d, want 2048", computed.TargetCalories)
	}
	if len(computed.Meals) != 4 {
		t.Fatalf("expected 4 meal slots, got %d", len(computed.Meals))
	}
	if computed.Meals[0].Slot != enums.MealSlotBreakfast || computed.Meals[0].Calories != 512 {
		t.Fatalf("unexpected breakfast slot %+v", computed.Meals[0])
	}

	// Deterministic for unchanged inputs.
	again, err := Compute(maleProfile(), enums.FitnessGoalWeightLoss)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !reflect.DeepEqual(computed, again) {
		t.Fatalf("recomputation diverged")
	}
}

func TestComputeRejectsIncompleteInput(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.Profile
		goal    enums.FitnessGoal
	}{
		{name: "nil profile", profile: nil, goal: enums.FitnessGoalWeightLoss},
		{name: "unset goal", profile: maleProfile(), goal: enums.FitnessGoalUnset},
		{name: "missing age", profile: &models.Profile{Gender: enums.GenderMale, HeightCM: 180, WeightKG: 80}, goal: enums.FitnessGoalWeightLoss},
		{name: "missing weight", profile: &models.Profile{Age: 30, Gender: enums.GenderMale, HeightCM: 180}, goal: enums.FitnessGoalWeightLoss},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(tc.profile, tc.goal)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
