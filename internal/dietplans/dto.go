package dietplans

import (
	"time"

	"github.com/google/uuid"

	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	"github.com/nkhandel/dietplanner-backend/pkg/types"
)

// DietPlanDTO is the transport shape of a generated plan.
type DietPlanDTO struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"user_id"`
	GoalType       enums.FitnessGoal `json:"goal_type"`
	BMR            float64           `json:"bmr"`
	TDEE           float64           `json:"tdee"`
	TargetCalories int               `json:"target_calories"`
	Meals          types.MealPlan    `json:"meals"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func FromModel(p *models.DietPlan) *DietPlanDTO {
	if p == nil {
		return nil
	}
	return &DietPlanDTO{
		ID:             p.ID,
		UserID:         p.UserID,
		GoalType:       p.GoalType,
		BMR:            p.BMR,
		TDEE:           p.TDEE,
		TargetCalories: p.TargetCalories,
		Meals:          p.Meals,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromModels(plans []models.DietPlan) []DietPlanDTO {
	out := make([]DietPlanDTO, 0, len(plans))
	for i := range plans {
		out = append(out, *FromModel(&plans[i]))
	}
	return out
}
