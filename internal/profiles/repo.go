package profiles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes profile persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUserID loads the profile for the given user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save creates the profile when absent and updates it in place otherwise.
func (r *Repository) Save(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	var existing models.Profile
	err := r.db.WithContext(ctx).First(&existing, "user_id = ?", profile.UserID).Error
	switch {
	case err == nil:
		updates := map[string]any{
			"age":              profile.Age,
			"gender":           profile.Gender,
			"height_cm":        profile.HeightCM,
			"weight_kg":        profile.WeightKG,
			"target_weight_kg": profile.TargetWeightKG,
			"activity_level":   profile.ActivityLevel,
			"fitness_goal":     profile.FitnessGoal,
		}
		if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return r.FindByUserID(ctx, profile.UserID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		if profile.ID == uuid.Nil {
			profile.ID = uuid.New()
		}
		if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
			return nil, err
		}
		return profile, nil
	default:
		return nil, err
	}
}
