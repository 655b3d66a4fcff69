package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/greenmeal/backend/internal/models"
	"github.com/pageza/greenmeal/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IPantryService defines the interface for pantry operations
type IPantryService interface {
	List(ctx context.Context, userID string) ([]types.Ingredient, error)
	Names(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, raw string) (*PantryChange, error)
	Remove(ctx context.Context, userID, id string) (*PantryChange, error)
	Clear(ctx context.Context, userID string) (*PantryChange, error)
	Suggestions(q string) []string
}

// IRecipeFinder defines the recipe search pipeline
type IRecipeFinder interface {
	Find(ctx context.Context, ingredients []string, req FindRequest) (*FindResult, error)
}

// IRecipeDetails fetches a single recipe
type IRecipeDetails interface {
	GetRecipe(ctx context.Context, id string) (*types.Recipe, error)
}

// IMealPlanService defines the interface for meal plan operations
type IMealPlanService interface {
	Generate(ctx context.Context, userID uuid.UUID, dietPreferences, ingredients []string) (*SavedMealPlan, error)
	Get(ctx context.Context, userID uuid.UUID) (*SavedMealPlan, error)
}

// ITipService defines the interface for sustainability tips
type ITipService interface {
	Tip(ctx context.Context, diet types.DietType, ingredients []string) (string, error)
}

// ISavedRecipeService defines the interface for saved recipe operations
type ISavedRecipeService interface {
	Save(ctx context.Context, userID uuid.UUID, recipe types.Recipe) (*models.SavedRecipe, error)
	List(ctx context.Context, userID uuid.UUID, query string) ([]models.SavedRecipe, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// IExportService defines the interface for meal plan export
type IExportService interface {
	ExportMealPlan(ctx context.Context, userID uuid.UUID) (*types.ExportResponse, error)
}

var (
	_ IAuthService        = (*AuthService)(nil)
	_ IPantryService      = (*PantryService)(nil)
	_ IRecipeFinder       = (*RecipeFinder)(nil)
	_ IRecipeDetails      = (*SpoonacularClient)(nil)
	_ IMealPlanService    = (*MealPlanService)(nil)
	_ ITipService         = (*TipService)(nil)
	_ ISavedRecipeService = (*SavedRecipeService)(nil)
	_ IExportService      = (*ExportService)(nil)
	_ TextGenerator       = (*LLMService)(nil)
	_ WordLookup          = (*DictionaryClient)(nil)
	_ RecipeSearcher      = (*SpoonacularClient)(nil)
	_ RecipeEnricher      = (*CarbonEstimator)(nil)
	_ MealPlanReader      = (*MealPlanService)(nil)
)
