package service

import (
	"context"

	"github.com/pageza/greenmeal/backend/internal/metrics"
	"github.com/pageza/greenmeal/backend/internal/types"
	"go.uber.org/zap"
)

// RecipeSearcher finds candidate recipes for a set of ingredients.
type RecipeSearcher interface {
	FindByIngredients(ctx context.Context, ingredients []string, diets []types.DietType) ([]types.Recipe, error)
}

// RecipeEnricher fills in carbon footprints.
type RecipeEnricher interface {
	Enrich(ctx context.Context, recipes []types.Recipe) []types.Recipe
}

// FindRequest holds the caller's search filters.
type FindRequest struct {
	DietTypes  []types.DietType
	Thresholds Thresholds
}

// FindResult is the output of one recipe search.
type FindResult struct {
	Recipes       []types.Recipe       `json:"recipes"`
	Filtered      []types.Recipe       `json:"filtered_recipes"`
	Notifications []types.Notification `json:"notifications"`
}

// RecipeFinder runs search, enrichment and filtering in sequence.
type RecipeFinder struct {
	search  RecipeSearcher
	enrich  RecipeEnricher
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewRecipeFinder wires the pipeline stages.
func NewRecipeFinder(search RecipeSearcher, enrich RecipeEnricher, log *zap.Logger, m *metrics.Metrics) *RecipeFinder {
	return &RecipeFinder{search: search, enrich: enrich, log: log, metrics: m}
}

// Find returns the enriched candidates and the subset passing the thresholds.
// A search failure aborts the pipeline; enrichment failures never do.
func (f *RecipeFinder) Find(ctx context.Context, ingredients []string, req FindRequest) (*FindResult, error) {
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}

	candidates, err := f.search.FindByIngredients(ctx, ingredients, req.DietTypes)
	if err != nil {
		return nil, err
	}

	enriched := f.enrich.Enrich(ctx, candidates)
	filtered := FilterRecipes(enriched, req.Thresholds)
	f.metrics.RecipesReturned(len(filtered))

	f.log.Info("recipe search completed",
		zap.Int("ingredients", len(ingredients)),
		zap.Int("candidates", len(enriched)),
		zap.Int("matching", len(filtered)))

	return &FindResult{
		Recipes:       enriched,
		Filtered:      filtered,
		Notifications: []types.Notification{FilterNotification(filtered)},
	}, nil
}
