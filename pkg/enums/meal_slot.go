package enums

import "fmt"

// MealSlot identifies one of the four fixed slots a diet plan is split into.
type MealSlot string

const (
	MealSlotBreakfast MealSlot = "breakfast"
	MealSlotLunch     MealSlot = "lunch"
	MealSlotDinner    MealSlot = "dinner"
	MealSlotSnacks    MealSlot = "snacks"
)

// MealSlots lists the slots in serving order.
var MealSlots = []MealSlot{
	MealSlotBreakfast,
	MealSlotLunch,
	MealSlotDinner,
	MealSlotSnacks,
}

// String implements fmt.Stringer.
func (m MealSlot) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MealSlot.
func (m MealSlot) IsValid() bool {
	for _, candidate := range MealSlots {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMealSlot converts raw input into a MealSlot.
func ParseMealSlot(value string) (MealSlot, error) {
	for _, candidate := range MealSlots {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid meal slot %q", value)
}
