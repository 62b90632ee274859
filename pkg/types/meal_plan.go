package types

import "github.com/nkhandel/dietplanner-backend/pkg/enums"

// Meal is one slot of a generated plan with its calorie share and suggested
// menu.
type Meal struct {
	Slot     enums.MealSlot `json:"slot"`
	Calories int            `json:"calories"`
	Foods    []string       `json:"foods"`
}

// MealPlan is the full day of meals, stored as a jsonb column on the plan.
type MealPlan []Meal

// CaloriesFor returns the calorie share for a slot, zero when absent.
func (p MealPlan) CaloriesFor(slot enums.MealSlot) int {
	for _, meal := range p {
		if meal.Slot == slot {
			return meal.Calories
		}
	}
	return 0
}
