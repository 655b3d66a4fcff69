package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/greenmeal/backend/internal/models"
	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockRecipeFinder is a mock implementation of the recipe search pipeline
type MockRecipeFinder struct {
	mock.Mock
}

func (m *MockRecipeFinder) Find(ctx context.Context, ingredients []string, req service.FindRequest) (*service.FindResult, error) {
	args := m.Called(ctx, ingredients, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FindResult), args.Error(1)
}

// MockRecipeDetails is a mock implementation of the recipe detail lookup
type MockRecipeDetails struct {
	mock.Mock
}

func (m *MockRecipeDetails) GetRecipe(ctx context.Context, id string) (*types.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// MockSavedRecipeService is a mock implementation of the SavedRecipeService interface
type MockSavedRecipeService struct {
	mock.Mock
}

func (m *MockSavedRecipeService) Save(ctx context.Context, userID uuid.UUID, recipe types.Recipe) (*models.SavedRecipe, error) {
	args := m.Called(ctx, userID, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedRecipe), args.Error(1)
}

func (m *MockSavedRecipeService) List(ctx context.Context, userID uuid.UUID, query string) ([]models.SavedRecipe, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedRecipe), args.Error(1)
}

func (m *MockSavedRecipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
