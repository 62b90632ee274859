package dietplans

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// Repository exposes diet plan persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a diet plan repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUserAndGoal loads the plan stored for one (user, goal) pair.
func (r *Repository) FindByUserAndGoal(ctx context.Context, userID uuid.UUID, goal enums.FitnessGoal) (*models.DietPlan, error) {
	var plan models.DietPlan
	if err := r.db.WithContext(ctx).
		First(&plan, "user_id = ? AND goal_type = ?", userID, goal).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListByUser returns every plan the user has generated, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DietPlan, error) {
	var plans []models.DietPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Upsert writes the plan keyed by (user, goal). An existing row is
// overwritten in place so regeneration never duplicates plans.
func (r *Repository) Upsert(ctx context.Context, plan *models.DietPlan) (*models.DietPlan, error) {
	existing, err := r.FindByUserAndGoal(ctx, plan.UserID, plan.GoalType)
	switch {
	case err == nil:
		updates := map[string]any{
			"bmr":             plan.BMR,
			"tdee":            plan.TDEE,
			"target_calories": plan.TargetCalories,
			"meals":           plan.Meals,
		}
		if err := r.db.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return r.FindByUserAndGoal(ctx, plan.UserID, plan.GoalType)
	case errors.Is(err, gorm.ErrRecordNotFound):
		if plan.ID == uuid.Nil {
			plan.ID = uuid.New()
		}
		if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
			return nil, err
		}
		return plan, nil
	default:
		return nil, err
	}
}
