package main

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/config"
	"github.com/pageza/greenmeal/backend/internal/database"
	"github.com/pageza/greenmeal/backend/internal/logger"
	"github.com/pageza/greenmeal/backend/internal/models"
	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
)

func ingredients(names ...string) []types.Ingredient {
	out := make([]types.Ingredient, len(names))
	for i, n := range names {
		out[i] = types.Ingredient{ID: n, Name: n}
	}
	return out
}

// Low-footprint recipes saved for the demo account.
var sampleRecipes = []types.Recipe{
	{
		ID: "seed-1", Name: "Chickpea and Spinach Curry", PrepTime: 35, Servings: 4,
		Ingredients:          ingredients("chickpeas", "spinach", "tomato", "onion", "garlic"),
		DietaryTags:          []string{"vegan", "gluten free"},
		TotalCarbonFootprint: 1.4,
	},
	{
		ID: "seed-2", Name: "Lentil Soup", PrepTime: 45, Servings: 6,
		Ingredients:          ingredients("lentils", "carrot", "onion", "celery"),
		DietaryTags:          []string{"vegan"},
		TotalCarbonFootprint: 0.9,
	},
	{
		ID: "seed-3", Name: "Mushroom Risotto", PrepTime: 50, Servings: 4,
		Ingredients:          ingredients("rice", "mushroom", "onion", "parmesan"),
		DietaryTags:          []string{"vegetarian"},
		TotalCarbonFootprint: 2.8,
	},
	{
		ID: "seed-4", Name: "Black Bean Tacos", PrepTime: 20, Servings: 3,
		Ingredients:          ingredients("beans", "corn", "tomato", "lime"),
		DietaryTags:          []string{"vegan"},
		TotalCarbonFootprint: 1.1,
	},
	{
		ID: "seed-5", Name: "Baked Salmon with Greens", PrepTime: 30, Servings: 2,
		Ingredients:          ingredients("salmon", "broccoli", "lemon"),
		DietaryTags:          []string{"pescatarian", "gluten free"},
		TotalCarbonFootprint: 4.6,
	},
}

func main() {
	email := pflag.StringP("email", "e", "john.doe@example.com", "account that receives the saved recipes")
	pflag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logr, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Environment: cfg.Environment.String()})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	db, err := database.New(cfg, logr)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, logr); err != nil {
		logr.Fatal("failed to migrate database", zap.Error(err))
	}

	var user models.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		logr.Fatal("seed user not found, run seed_test_users first", zap.String("email", *email), zap.Error(err))
	}

	saved := service.NewSavedRecipeService(db, logr)
	ctx := context.Background()

	created := 0
	for _, r := range sampleRecipes {
		r.CarbonImpact = types.CarbonImpact(r.TotalCarbonFootprint)
		_, err := saved.Save(ctx, user.ID, r)
		switch {
		case errors.Is(err, service.ErrRecipeAlreadySaved):
			logr.Info("recipe already saved", zap.String("recipe", r.Name))
		case err != nil:
			logr.Fatal("failed to save recipe", zap.String("recipe", r.Name), zap.Error(err))
		default:
			created++
		}
	}
	logr.Info("seeded saved recipes", zap.String("email", *email), zap.Int("created", created))
}
