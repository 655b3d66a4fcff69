package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pageza/greenmeal/backend/config"
	"github.com/pageza/greenmeal/backend/internal/models"
	"github.com/pageza/greenmeal/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}
}

func TestNewAndMigrate(t *testing.T) {
	db, err := New(sqliteConfig(t), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db, zap.NewNop()))

	user := models.User{Email: "test@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEqual(t, "", user.ID.String())

	saved := models.SavedRecipe{
		UserID:      user.ID,
		RecipeID:    "42",
		Name:        "Tomato Soup",
		DietaryTags: models.StringArray{"vegan", "gluten free"},
		Ingredients: models.StringArray{"tomato", "onion"},
		Recipe:      models.JSON[types.Recipe]{Data: types.Recipe{ID: "42", Name: "Tomato Soup"}},
		Embedding:   models.NewEmbedding([]float32{11, 4, 6}),
	}
	require.NoError(t, db.Create(&saved).Error)

	var loaded models.SavedRecipe
	require.NoError(t, db.First(&loaded, "recipe_id = ?", "42").Error)
	assert.Equal(t, models.StringArray{"vegan", "gluten free"}, loaded.DietaryTags)
	assert.Equal(t, "Tomato Soup", loaded.Recipe.Data.Name)
	assert.Equal(t, []float32{11, 4, 6}, loaded.Embedding.Slice())
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}

func TestApplySQLDir(t *testing.T) {
	db, err := New(sqliteConfig(t), zap.NewNop())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_notes.sql"),
		[]byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	require.NoError(t, ApplySQLDir(db, dir, zap.NewNop()))
	// second run skips the recorded file
	require.NoError(t, ApplySQLDir(db, dir, zap.NewNop()))

	var count int64
	require.NoError(t, db.Table("migrations").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRedisOptions(t *testing.T) {
	opts, err := RedisOptions(&config.Config{RedisHost: "cache", RedisPort: "6380", RedisPassword: "pw", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)

	opts, err = RedisOptions(&config.Config{RedisHost: "ignored", RedisPort: "1", RedisURL: "redis://:secret@redis.internal:6379/3"})
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)

	_, err = RedisOptions(&config.Config{RedisURL: "http://not-redis"})
	assert.Error(t, err)
}
