package dietplans

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
)

type testProfileLoader struct {
	conn *gorm.DB
}

func (l testProfileLoader) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := l.conn.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Profile{}, &models.DietPlan{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc, err := NewService(NewRepository(conn), testProfileLoader{conn: conn})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func seedProfile(t *testing.T, conn *gorm.DB, goal enums.FitnessGoal) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	profile := &models.Profile{
		ID:             uuid.New(),
		UserID:         userID,
		Age:            30,
		Gender:         enums.GenderMale,
		HeightCM:       180,
		WeightKG:       80,
		TargetWeightKG: 75,
		ActivityLevel:  enums.ActivityLevelLight,
		FitnessGoal:    goal,
	}
	if err := conn.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return userID
}

func TestGenerateOverwritesPlanForSameGoal(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	userID := seedProfile(t, conn, enums.FitnessGoalWeightLoss)

	first, err := svc.Generate(ctx, userID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first.TargetCalories != 2048 {
		t.Fatalf("target = %d, want 2048", first.TargetCalories)
	}
	if first.GoalType != enums.FitnessGoalWeightLoss {
		t.Fatalf("unexpected goal %q", first.GoalType)
	}

	if err := conn.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("weight_kg", 90).Error; err != nil {
		t.Fatalf("update weight: %v", err)
	}

	second, err := svc.Generate(ctx, userID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("regeneration must overwrite, not create a second plan")
	}
	if second.TargetCalories != 2232 {
		t.Fatalf("target after weight change = %d, want 2232", second.TargetCalories)
	}

	var count int64
	if err := conn.Model(&models.DietPlan{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count plans: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 plan row, got %d", count)
	}
}

func TestGenerateKeepsOnePlanPerGoal(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	userID := seedProfile(t, conn, enums.FitnessGoalWeightLoss)

	if _, err := svc.Generate(ctx, userID); err != nil {
		t.Fatalf("generate loss plan: %v", err)
	}

	if err := conn.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("fitness_goal", enums.FitnessGoalWeightGain).Error; err != nil {
		t.Fatalf("switch goal: %v", err)
	}
	gain, err := svc.Generate(ctx, userID)
	if err != nil {
		t.Fatalf("generate gain plan: %v", err)
	}
	if gain.GoalType != enums.FitnessGoalWeightGain {
		t.Fatalf("unexpected goal %q", gain.GoalType)
	}

	plans, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("list plans: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}

	current, err := svc.Current(ctx, userID)
	if err != nil {
		t.Fatalf("current plan: %v", err)
	}
	if current.GoalType != enums.FitnessGoalWeightGain {
		t.Fatalf("current plan should follow the profile goal, got %q", current.GoalType)
	}
}

func TestGenerateRequiresGoal(t *testing.T) {
	svc, conn := newTestService(t)
	userID := seedProfile(t, conn, enums.FitnessGoalUnset)

	_, err := svc.Generate(context.Background(), userID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGenerateWithoutProfileReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Generate(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
