package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "greenmeal")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "greenmeal")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("CARBON_MAX_ESTIMATE", "12.5")
	t.Setenv("HTTP_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 12.5, cfg.CarbonMaxEstimate)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 5, cfg.SearchResultCount)
	assert.Equal(t, 0.1, cfg.CarbonMinEstimate)
	assert.Equal(t, 10.0, cfg.CarbonMaxEstimate)
	assert.Equal(t, 5.0, cfg.CarbonPlaceholder)
	assert.Equal(t, 120, cfg.DefaultMaxPrepTime)
	assert.Equal(t, 20.0, cfg.DefaultMaxCarbonFootprint)
	assert.Equal(t, DefaultFoodKeywords, cfg.FoodKeywords)
	assert.True(t, cfg.CarbonProbe)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-file\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spoonacular_api_key"), []byte("spoon"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "spoon", cfg.SpoonacularAPIKey)
}

func TestValidateConfigProduction(t *testing.T) {
	cfg := &Config{
		Environment:               Production,
		ServerPort:                "5000",
		DBDriver:                  "postgres",
		DBHost:                    "db",
		DBName:                    "greenmeal",
		DBUser:                    "greenmeal",
		JWTSecret:                 DefaultJWTSecret,
		SearchResultCount:         5,
		CarbonMinEstimate:         0.1,
		CarbonMaxEstimate:         10,
		DefaultMaxPrepTime:        120,
		DefaultMaxCarbonFootprint: 20,
		FoodKeywords:              DefaultFoodKeywords,
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"JWT_SECRET", "SPOONACULAR_API_KEY", "LLM_API_KEY", "DB_PASSWORD"}, fields)
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("prod"))
	assert.Equal(t, Test, ParseEnvironment(" TEST "))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}
