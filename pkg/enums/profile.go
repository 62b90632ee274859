package enums

import "fmt"

// Gender represents the gender choices captured on a fitness profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var validGenders = []Gender{
	GenderMale,
	GenderFemale,
	GenderOther,
}

// String implements fmt.Stringer.
func (g Gender) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Gender.
func (g Gender) IsValid() bool {
	for _, candidate := range validGenders {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGender converts raw input into a Gender.
func ParseGender(value string) (Gender, error) {
	for _, candidate := range validGenders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gender %q", value)
}

// ActivityLevel captures how active a user reports being day to day.
type ActivityLevel string

const (
	ActivityLevelSedentary  ActivityLevel = "sedentary"
	ActivityLevelLight      ActivityLevel = "light"
	ActivityLevelModerate   ActivityLevel = "moderate"
	ActivityLevelActive     ActivityLevel = "active"
	ActivityLevelVeryActive ActivityLevel = "very_active"
)

var validActivityLevels = []ActivityLevel{
	ActivityLevelSedentary,
	ActivityLevelLight,
	ActivityLevelModerate,
	ActivityLevelActive,
	ActivityLevelVeryActive,
}

// String implements fmt.Stringer.
func (a ActivityLevel) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ActivityLevel.
func (a ActivityLevel) IsValid() bool {
	for _, candidate := range validActivityLevels {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActivityLevel converts raw input into an ActivityLevel.
func ParseActivityLevel(value string) (ActivityLevel, error) {
	for _, candidate := range validActivityLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid activity level %q", value)
}

// FitnessGoal is the target the diet plan is generated for. The empty value
// means the user has not picked a goal yet.
type FitnessGoal string

const (
	FitnessGoalUnset      FitnessGoal = ""
	FitnessGoalWeightLoss FitnessGoal = "weight_loss"
	FitnessGoalWeightGain FitnessGoal = "weight_gain"
)

var validFitnessGoals = []FitnessGoal{
	FitnessGoalWeightLoss,
	FitnessGoalWeightGain,
}

// String implements fmt.Stringer.
func (f FitnessGoal) String() string {
	return string(f)
}

// IsSet reports whether the user has selected a goal.
func (f FitnessGoal) IsSet() bool {
	return f != FitnessGoalUnset
}

// IsValid reports whether the value is a known, selected FitnessGoal.
func (f FitnessGoal) IsValid() bool {
	for _, candidate := range validFitnessGoals {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFitnessGoal converts raw input into a FitnessGoal.
func ParseFitnessGoal(value string) (FitnessGoal, error) {
	for _, candidate := range validFitnessGoals {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fitness goal %q", value)
}
