package profiles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nkhandel/dietplanner-backend/internal/dietplans"
	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
	"github.com/nkhandel/dietplanner-backend/pkg/logger"
)

// Service defines profile read/write operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	Upsert(ctx context.Context, userID uuid.UUID, req UpsertProfileRequest) (*ProfileDTO, error)
	SetGoal(ctx context.Context, userID uuid.UUID, req SetGoalRequest) (*ProfileDTO, error)
}

type repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}

// PlanRegenerator is notified after profile writes that leave a goal set, so
// the stored diet plan tracks the profile without an extra client call.
type PlanRegenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (*dietplans.DietPlanDTO, error)
}

type service struct {
	repo  repository
	plans PlanRegenerator
	logg  *logger.Logger
}

// NewService wires profile dependencies. The regenerator may be nil.
func NewService(repo repository, plans PlanRegenerator, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profiles repository required")
	}
	return &service{repo: repo, plans: plans, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return FromModel(profile), nil
}

func (s *service) Upsert(ctx context.Context, userID uuid.UUID, req UpsertProfileRequest) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	gender, err := enums.ParseGender(req.Gender)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid gender")
	}
	activity, err := enums.ParseActivityLevel(req.ActivityLevel)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid activity level")
	}
	goal := enums.FitnessGoalUnset
	if req.FitnessGoal != "" {
		goal, err = enums.ParseFitnessGoal(req.FitnessGoal)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid fitness goal")
		}
	}
	if req.Age <= 0 || req.HeightCM <= 0 || req.WeightKG <= 0 || req.TargetWeightKG <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "age, height and weights must be positive")
	}

	saved, err := s.repo.Save(ctx, &models.Profile{
		UserID:         userID,
		Age:            req.Age,
		Gender:         gender,
		HeightCM:       req.HeightCM,
		WeightKG:       req.WeightKG,
		TargetWeightKG: req.TargetWeightKG,
		ActivityLevel:  activity,
		FitnessGoal:    goal,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save profile")
	}

	s.regenerate(ctx, userID, saved.FitnessGoal)
	return FromModel(saved), nil
}

// SetGoal overwrites only the fitness goal and regenerates the matching plan.
func (s *service) SetGoal(ctx context.Context, userID uuid.UUID, req SetGoalRequest) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	goal, err := enums.ParseFitnessGoal(req.FitnessGoal)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid fitness goal")
	}

	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	profile.FitnessGoal = goal
	saved, err := s.repo.Save(ctx, profile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save profile")
	}

	s.regenerate(ctx, userID, saved.FitnessGoal)
	return FromModel(saved), nil
}

// regenerate is best effort: a failed plan refresh never fails the profile
// write, the client can still generate explicitly.
func (s *service) regenerate(ctx context.Context, userID uuid.UUID, goal enums.FitnessGoal) {
	if s.plans == nil || !goal.IsSet() {
		return
	}
	if _, err := s.plans.Generate(ctx, userID); err != nil && s.logg != nil {
		s.logg.Error(ctx, "diet plan regeneration failed", err)
	}
}
