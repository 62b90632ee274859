package dietplans

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
)

// Service defines diet plan operations. Generation always reads the goal
// from the user's profile, so changing the goal and regenerating produces a
// separate plan row while the old goal's plan stays untouched.
type Service interface {
	Generate(ctx context.Context, userID uuid.UUID) (*DietPlanDTO, error)
	Current(ctx context.Context, userID uuid.UUID) (*DietPlanDTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]DietPlanDTO, error)
}

type repository interface {
	FindByUserAndGoal(ctx context.Context, userID uuid.UUID, goal enums.FitnessGoal) (*models.DietPlan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DietPlan, error)
	Upsert(ctx context.Context, plan *models.DietPlan) (*models.DietPlan, error)
}

type profileLoader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

type service struct {
	repo     repository
	profiles profileLoader
}

// NewService wires diet plan dependencies.
func NewService(repo repository, profiles profileLoader) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "diet plans repository required")
	}
	if profiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile loader required")
	}
	return &service{repo: repo, profiles: profiles}, nil
}

func (s *service) Generate(ctx context.Context, userID uuid.UUID) (*DietPlanDTO, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.FitnessGoal.IsSet() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fitness goal not set")
	}

	computed, err := Compute(profile, profile.FitnessGoal)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, &models.DietPlan{
		UserID:         userID,
		GoalType:       profile.FitnessGoal,
		BMR:            computed.BMR,
		TDEE:           computed.TDEE,
		TargetCalories: computed.TargetCalories,
		Meals:          computed.Meals,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save diet plan")
	}
	return FromModel(saved), nil
}

// Current returns the stored plan matching the profile's present goal.
func (s *service) Current(ctx context.Context, userID uuid.UUID) (*DietPlanDTO, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.FitnessGoal.IsSet() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no diet plan for current goal")
	}

	plan, err := s.repo.FindByUserAndGoal(ctx, userID, profile.FitnessGoal)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no diet plan for current goal")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load diet plan")
	}
	return FromModel(plan), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]DietPlanDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	plans, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list diet plans")
	}
	return fromModels(plans), nil
}

func (s *service) loadProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return profile, nil
}
