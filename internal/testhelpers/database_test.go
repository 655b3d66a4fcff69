package testhelpers

import (
	"testing"

	"github.com/pageza/greenmeal/backend/internal/models"
	"github.com/pageza/greenmeal/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupSQLite(t *testing.T) {
	db := SetupSQLite(t)
	user := models.User{Email: "sqlite@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetupTestDatabase(t *testing.T) {
	db := SetupTestDatabase(t)
	assert.NotNil(t, db)

	user := models.User{Email: "pg@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	saved := models.SavedRecipe{
		UserID:      user.ID,
		RecipeID:    "7",
		Name:        "Lentil Stew",
		DietaryTags: models.StringArray{"vegan"},
		Ingredients: models.StringArray{"lentils", "carrot"},
		Recipe:      models.JSON[types.Recipe]{Data: types.Recipe{ID: "7", Name: "Lentil Stew"}},
		Embedding:   models.NewEmbedding([]float32{11, 4, 7}),
	}
	require.NoError(t, db.Create(&saved).Error)

	var loaded models.SavedRecipe
	require.NoError(t, db.First(&loaded, "recipe_id = ?", "7").Error)
	assert.Equal(t, models.StringArray{"lentils", "carrot"}, loaded.Ingredients)
	assert.Equal(t, []float32{11, 4, 7}, loaded.Embedding.Slice())
}
