package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	"github.com/nkhandel/dietplanner-backend/pkg/types"
)

// DietPlan stores one generated plan per (user, goal) pair. Regenerating a
// plan for the same goal overwrites the previous numbers in place.
type DietPlan struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID         `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_diet_plans_user_goal"`
	GoalType       enums.FitnessGoal `gorm:"column:goal_type;type:text;not null;uniqueIndex:idx_diet_plans_user_goal"`
	BMR            float64           `gorm:"column:bmr;not null"`
	TDEE           float64           `gorm:"column:tdee;not null"`
	TargetCalories int               `gorm:"column:target_calories;not null"`
	Meals          types.MealPlan    `gorm:"column:meals;type:jsonb;serializer:json"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
