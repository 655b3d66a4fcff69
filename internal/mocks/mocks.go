package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockMealPlanService is a mock implementation of the MealPlanService interface
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) Generate(ctx context.Context, userID uuid.UUID, dietPreferences, ingredients []string) (*service.SavedMealPlan, error) {
	args := m.Called(ctx, userID, dietPreferences, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SavedMealPlan), args.Error(1)
}

func (m *MockMealPlanService) Get(ctx context.Context, userID uuid.UUID) (*service.SavedMealPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SavedMealPlan), args.Error(1)
}

// MockTipService is a mock implementation of the TipService interface
type MockTipService struct {
	mock.Mock
}

func (m *MockTipService) Tip(ctx context.Context, diet types.DietType, ingredients []string) (string, error) {
	args := m.Called(ctx, diet, ingredients)
	return args.String(0), args.Error(1)
}

// MockExportService is a mock implementation of the ExportService interface
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportMealPlan(ctx context.Context, userID uuid.UUID) (*types.ExportResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ExportResponse), args.Error(1)
}

var (
	_ service.IAuthService        = (*MockAuthService)(nil)
	_ service.IPantryService      = (*MockPantryService)(nil)
	_ service.IRecipeFinder       = (*MockRecipeFinder)(nil)
	_ service.IRecipeDetails      = (*MockRecipeDetails)(nil)
	_ service.IMealPlanService    = (*MockMealPlanService)(nil)
	_ service.ITipService         = (*MockTipService)(nil)
	_ service.ISavedRecipeService = (*MockSavedRecipeService)(nil)
	_ service.IExportService      = (*MockExportService)(nil)
)
