package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/greenmeal/backend/internal/models"
	"github.com/pageza/greenmeal/backend/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecipeAlreadySaved    = errors.New("recipe already saved")
	ErrSavedRecipeNotFound   = errors.New("saved recipe not found")
	ErrSavedRecipeIncomplete = errors.New("recipe id and name are required")
)

// savedSearchLimit caps similarity search results.
const savedSearchLimit = 10

// SavedRecipeService keeps the recipes each user chose to save.
type SavedRecipeService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewSavedRecipeService creates a SavedRecipeService.
func NewSavedRecipeService(db *gorm.DB, log *zap.Logger) *SavedRecipeService {
	return &SavedRecipeService{db: db, log: log}
}

// Save stores recipe for the user. Saving the same recipe twice fails.
func (s *SavedRecipeService) Save(ctx context.Context, userID uuid.UUID, recipe types.Recipe) (*models.SavedRecipe, error) {
	if recipe.ID == "" || strings.TrimSpace(recipe.Name) == "" {
		return nil, ErrSavedRecipeIncomplete
	}

	saved := models.SavedRecipe{
		UserID:               userID,
		RecipeID:             recipe.ID,
		Name:                 recipe.Name,
		ImageURL:             recipe.ImageURL,
		PrepTime:             recipe.PrepTime,
		TotalCarbonFootprint: recipe.TotalCarbonFootprint,
		DietaryTags:          models.StringArray(recipe.DietaryTags),
		Ingredients:          models.StringArray(recipe.IngredientNames()),
		Recipe:               models.JSON[types.Recipe]{Data: recipe},
		Embedding:            GenerateEmbedding(recipe.Name),
	}
	if saved.DietaryTags == nil {
		saved.DietaryTags = models.StringArray{}
	}

	if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRecipeAlreadySaved
		}
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return &saved, nil
}

// List returns the user's saved recipes, newest first. A non-empty query
// ranks by name similarity on postgres and filters by name elsewhere.
func (s *SavedRecipeService) List(ctx context.Context, userID uuid.UUID, query string) ([]models.SavedRecipe, error) {
	db := s.db.WithContext(ctx).Where("user_id = ?", userID)
	query = strings.TrimSpace(query)

	switch {
	case query == "":
		db = db.Order("created_at DESC")
	case s.db.Dialector.Name() == "postgres":
		db = db.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{GenerateEmbedding(query)}},
		}).Limit(savedSearchLimit)
	default:
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").Order("created_at DESC")
	}

	var recipes []models.SavedRecipe
	if err := db.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return recipes, nil
}

// Delete removes one of the user's saved recipes by its row ID.
func (s *SavedRecipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.SavedRecipe{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSavedRecipeNotFound
	}
	return nil
}
