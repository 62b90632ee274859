package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// ProfileDTO is the transport shape of a user profile.
type ProfileDTO struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"user_id"`
	Age            int                 `json:"age"`
	Gender         enums.Gender        `json:"gender"`
	HeightCM       float64             `json:"height_cm"`
	WeightKG       float64             `json:"weight_kg"`
	TargetWeightKG float64             `json:"target_weight_kg"`
	ActivityLevel  enums.ActivityLevel `json:"activity_level"`
	FitnessGoal    enums.FitnessGoal   `json:"fitness_goal"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// UpsertProfileRequest is the payload accepted when creating or editing a
// profile. FitnessGoal is optional; an empty string leaves the goal unset.
type UpsertProfileRequest struct {
	Age            int     `json:"age" validate:"required,gt=0,lte=120"`
	Gender         string  `json:"gender" validate:"required"`
	HeightCM       float64 `json:"height_cm" validate:"required,gt=0"`
	WeightKG       float64 `json:"weight_kg" validate:"required,gt=0"`
	TargetWeightKG float64 `json:"target_weight_kg" validate:"required,gt=0"`
	ActivityLevel  string  `json:"activity_level" validate:"required"`
	FitnessGoal    string  `json:"fitness_goal" validate:"omitempty,oneof=weight_loss weight_gain"`
}

// SetGoalRequest switches the fitness goal without resending the full profile.
type SetGoalRequest struct {
	FitnessGoal string `json:"fitness_goal" validate:"required,oneof=weight_loss weight_gain"`
}

func FromModel(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		ID:             p.ID,
		UserID:         p.UserID,
		Age:            p.Age,
		Gender:         p.Gender,
		HeightCM:       p.HeightCM,
		WeightKG:       p.WeightKG,
		TargetWeightKG: p.TargetWeightKG,
		ActivityLevel:  p.ActivityLevel,
		FitnessGoal:    p.FitnessGoal,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
