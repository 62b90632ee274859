package dietplans

import "github.com/nkhandel/dietplanner-backend/pkg/enums"

// The suggestion menus are static. Weight loss gets the lighter menu,
// everything else gets the gain menu.
var weightLossMenu = map[enums.MealSlot][]string{
	enums.MealSlotBreakfast: {
		"Oatmeal with berries (200 cal)",
		"Greek yogurt with honey (150 cal)",
		"Whole grain toast with avocado (180 cal)",
	},
	enums.MealSlotLunch: {
		"Grilled chicken salad (350 cal)",
		"Quinoa bowl with vegetables (320 cal)",
		"Lentil soup with whole grain bread (380 cal)",
	},
	enums.MealSlotDinner: {
		"Baked salmon with vegetables (400 cal)",
		"Turkey stir-fry with brown rice (420 cal)",
		"Vegetable curry with quinoa (380 cal)",
	},
	enums.MealSlotSnacks: {
		"Apple with almond butter (120 cal)",
		"Protein bar (150 cal)",
		"Mixed nuts (100 cal)",
	},
}

var weightGainMenu = map[enums.MealSlot][]string{
	enums.MealSlotBreakfast: {
		"Protein smoothie with banana (400 cal)",
		"Eggs with whole grain toast (350 cal)",
		"Greek yogurt parfait with granola (380 cal)",
	},
	enums.MealSlotLunch: {
		"Chicken and rice bowl (550 cal)",
		"Pasta with meat sauce (600 cal)",
		"Burrito bowl with extra protein (580 cal)",
	},
	enums.MealSlotDinner: {
		"Steak with sweet potato (650 cal)",
		"Salmon with rice and vegetables (620 cal)",
		"Chicken curry with naan (600 cal)",
	},
	enums.MealSlotSnacks: {
		"Protein shake (250 cal)",
		"Trail mix (200 cal)",
		"Peanut butter sandwich (280 cal)",
	},
}

func menuFor(goal enums.FitnessGoal) map[enums.MealSlot][]string {
	if goal == enums.FitnessGoalWeightLoss {
		return weightLossMenu
	}
	return weightGainMenu
}
