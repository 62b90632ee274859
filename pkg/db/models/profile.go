package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// Profile holds the body metrics a diet plan is computed from. One per user.
// FitnessGoal stays empty until the user picks one; plan generation requires
// it to be set.
type Profile struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID           `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Age            int                 `gorm:"column:age;not null"`
	Gender         enums.Gender        `gorm:"column:gender;type:text;not null"`
	HeightCM       float64             `gorm:"column:height_cm;not null"`
	WeightKG       float64             `gorm:"column:weight_kg;not null"`
	TargetWeightKG float64             `gorm:"column:target_weight_kg;not null"`
	ActivityLevel  enums.ActivityLevel `gorm:"column:activity_level;type:text;not null;default:'sedentary'"`
	FitnessGoal    enums.FitnessGoal   `gorm:"column:fitness_goal;type:text;not null;default:''"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
