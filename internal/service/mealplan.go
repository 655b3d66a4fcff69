package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/greenmeal/backend/internal/aiparse"
	"github.com/pageza/greenmeal/backend/internal/models"
	"github.com/pageza/greenmeal/backend/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mealPlanDays is the number of days a generated plan must cover.
const mealPlanDays = 7

var (
	// ErrMealPlanParse is returned when the model's plan cannot be used.
	ErrMealPlanParse = errors.New("failed to parse meal plan")
	// ErrMealPlanNotFound is returned when the user has no saved plan.
	ErrMealPlanNotFound = errors.New("meal plan not found")
)

// ParseMealPlan decodes a model response into a plan. The response must
// cover exactly seven days and include a shopping list.
func ParseMealPlan(raw string) (types.MealPlan, error) {
	var plan types.MealPlan
	if err := aiparse.DecodeJSON(raw, &plan); err != nil {
		return types.MealPlan{}, fmt.Errorf("%w: %w", ErrMealPlanParse, err)
	}
	if len(plan.Days) != mealPlanDays {
		return types.MealPlan{}, fmt.Errorf("%w: expected %d days, got %d", ErrMealPlanParse, mealPlanDays, len(plan.Days))
	}
	if plan.ShoppingList == nil {
		return types.MealPlan{}, fmt.Errorf("%w: missing shopping list", ErrMealPlanParse)
	}
	return plan, nil
}

// SavedMealPlan is a stored plan with its total footprint.
type SavedMealPlan struct {
	types.MealPlan
	TotalCarbonFootprint float64 `json:"total_carbon_footprint"`
}

// MealPlanService generates and stores weekly meal plans.
type MealPlanService struct {
	llm TextGenerator
	db  *gorm.DB
	log *zap.Logger
}

// NewMealPlanService creates a MealPlanService.
func NewMealPlanService(llm TextGenerator, db *gorm.DB, log *zap.Logger) *MealPlanService {
	return &MealPlanService{llm: llm, db: db, log: log}
}

// Generate asks the model for a plan built from ingredients and stores it as
// the user's current plan. Nothing is stored when the response is rejected.
func (s *MealPlanService) Generate(ctx context.Context, userID uuid.UUID, dietPreferences, ingredients []string) (*SavedMealPlan, error) {
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}

	raw, err := s.llm.Generate(ctx, mealPlanPrompt(dietPreferences, ingredients))
	if err != nil {
		return nil, fmt.Errorf("failed to generate meal plan: %w", err)
	}

	plan, err := ParseMealPlan(raw)
	if err != nil {
		s.log.Error("error parsing meal plan", zap.String("user_id", userID.String()), zap.String("response", raw), zap.Error(err))
		return nil, err
	}

	row := models.SavedMealPlan{
		UserID:       userID,
		Days:         models.JSON[[]types.MealPlanDay]{Data: plan.Days},
		ShoppingList: models.JSON[types.ShoppingList]{Data: *plan.ShoppingList},
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"days", "shopping_list", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}

	return &SavedMealPlan{MealPlan: plan, TotalCarbonFootprint: plan.TotalCarbonFootprint()}, nil
}

// Get returns the user's current plan.
func (s *MealPlanService) Get(ctx context.Context, userID uuid.UUID) (*SavedMealPlan, error) {
	var row models.SavedMealPlan
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, fmt.Errorf("failed to load meal plan: %w", err)
	}
	plan := row.MealPlan()
	return &SavedMealPlan{MealPlan: plan, TotalCarbonFootprint: plan.TotalCarbonFootprint()}, nil
}
