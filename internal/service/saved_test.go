package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/greenmeal/backend/internal/models"
	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/testhelpers"
	"github.com/pageza/greenmeal/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedRecipes(t *testing.T) {
	ctx := context.Background()
	svc := service.NewSavedRecipeService(testhelpers.SetupSQLite(t), testLogger)
	alice, bob := uuid.New(), uuid.New()

	soup := types.Recipe{
		ID: "101", Name: "Tomato Soup", PrepTime: 45, TotalCarbonFootprint: 3.2,
		Ingredients: []types.Ingredient{{Name: "tomato"}, {Name: "onion"}},
		DietaryTags: []string{"vegan"},
	}
	saved, err := svc.Save(ctx, alice, soup)
	require.NoError(t, err)
	assert.Equal(t, []string{"tomato", "onion"}, []string(saved.Ingredients))

	_, err = svc.Save(ctx, alice, soup)
	assert.ErrorIs(t, err, service.ErrRecipeAlreadySaved)

	_, err = svc.Save(ctx, bob, soup)
	require.NoError(t, err, "another user may save the same recipe")

	_, err = svc.Save(ctx, alice, types.Recipe{ID: "102", Name: "Onion Tart"})
	require.NoError(t, err)

	_, err = svc.Save(ctx, alice, types.Recipe{ID: "", Name: "Nameless"})
	assert.ErrorIs(t, err, service.ErrSavedRecipeIncomplete)

	all, err := svc.List(ctx, alice, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matches, err := svc.List(ctx, alice, "SOUP")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "101", matches[0].RecipeID)
	assert.Equal(t, soup.Ingredients, matches[0].Recipe.Data.Ingredients)
	assert.Equal(t, []string{"vegan"}, []string(matches[0].DietaryTags))

	err = svc.Delete(ctx, bob, saved.ID)
	assert.ErrorIs(t, err, service.ErrSavedRecipeNotFound)

	require.NoError(t, svc.Delete(ctx, alice, saved.ID))
	all, err = svc.List(ctx, alice, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGenerateEmbedding(t *testing.T) {
	a := service.GenerateEmbedding("Tomato Soup")
	b := service.GenerateEmbedding("Tomato Soup")
	assert.Equal(t, a.Slice(), b.Slice())
	assert.Len(t, a.Slice(), models.EmbeddingDimensions)
	assert.NotEqual(t, a.Slice(), service.GenerateEmbedding("Bread").Slice())

	var norm float64
	for _, x := range a.Slice() {
		norm += float64(x * x)
	}
	assert.InDelta(t, 1.0, norm, 1e-5)

	assert.Equal(t, service.GenerateEmbedding("tomato soup").Slice(), a.Slice())
	assert.Equal(t, make([]float32, models.EmbeddingDimensions), service.GenerateEmbedding("  ").Slice())
}
