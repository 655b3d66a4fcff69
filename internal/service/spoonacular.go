package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/greenmeal/backend/internal/metrics"
	"github.com/pageza/greenmeal/backend/internal/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrSearchFailed is returned for any non-2xx answer from the recipe API.
	ErrSearchFailed = errors.New("search failed")
	// ErrRecipeNotFound is returned when a recipe ID is unknown upstream.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrNoIngredients guards the search against an empty ingredient list.
	ErrNoIngredients = errors.New("please add at least one ingredient")
)

// SpoonacularSource tags recipes that came from the search API.
const SpoonacularSource = "Spoonacular API"

var htmlTag = regexp.MustCompile(`<[^>]+>`)

// SpoonacularConfig configures the recipe API client.
type SpoonacularConfig struct {
	APIKey            string
	BaseURL           string
	ResultCount       int
	Placeholder       float64
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// SpoonacularClient searches and fetches recipes from the Spoonacular API.
type SpoonacularClient struct {
	cfg     SpoonacularConfig
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewSpoonacularClient creates a client.
func NewSpoonacularClient(cfg SpoonacularConfig, log *zap.Logger, m *metrics.Metrics) *SpoonacularClient {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.ResultCount <= 0 {
		cfg.ResultCount = 5
	}
	return &SpoonacularClient{
		cfg:     cfg,
		client:  client,
		limiter: newLimiter(cfg.RequestsPerSecond),
		log:     log,
		metrics: m,
	}
}

type spoonacularIngredient struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Original string  `json:"original"`
}

type spoonacularMatch struct {
	ID                int                     `json:"id"`
	Title             string                  `json:"title"`
	Image             string                  `json:"image"`
	ReadyInMinutes    int                     `json:"readyInMinutes"`
	Servings          int                     `json:"servings"`
	Instructions      string                  `json:"instructions"`
	Diets             []string                `json:"diets"`
	UsedIngredients   []spoonacularIngredient `json:"usedIngredients"`
	MissedIngredients []spoonacularIngredient `json:"missedIngredients"`
}

type spoonacularDetail struct {
	ID                   int                     `json:"id"`
	Title                string                  `json:"title"`
	Image                string                  `json:"image"`
	Summary              string                  `json:"summary"`
	Diets                []string                `json:"diets"`
	ReadyInMinutes       int                     `json:"readyInMinutes"`
	CookingMinutes       int                     `json:"cookingMinutes"`
	Servings             int                     `json:"servings"`
	Instructions         string                  `json:"instructions"`
	ExtendedIngredients  []spoonacularIngredient `json:"extendedIngredients"`
	AnalyzedInstructions []struct {
		Steps []struct {
			Step string `json:"step"`
		} `json:"steps"`
	} `json:"analyzedInstructions"`
	Nutrition struct {
		Nutrients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
		} `json:"nutrients"`
	} `json:"nutrition"`
}

// FindByIngredients asks the API for recipes that use as many of ingredients
// as possible. Results keep the API's ranking order.
func (c *SpoonacularClient) FindByIngredients(ctx context.Context, ingredients []string, diets []types.DietType) ([]types.Recipe, error) {
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}

	params := url.Values{}
	params.Set("apiKey", c.cfg.APIKey)
	params.Set("ingredients", strings.Join(ingredients, ","))
	params.Set("number", strconv.Itoa(c.cfg.ResultCount))
	params.Set("ranking", "1")
	params.Set("ignorePantry", "true")
	if len(diets) > 0 {
		values := make([]string, len(diets))
		for i, d := range diets {
			values[i] = d.SearchValue()
		}
		params.Set("diet", strings.Join(values, ","))
	}

	start := time.Now()
	var matches []spoonacularMatch
	status, err := getJSON(ctx, c.client, c.limiter, c.cfg.BaseURL+"/recipes/findByIngredients?"+params.Encode(), &matches)
	if err == nil && (status < 200 || status > 299) {
		err = fmt.Errorf("%w: %s", ErrSearchFailed, http.StatusText(status))
	}
	c.metrics.ObserveExternal("spoonacular", start, err)
	if err != nil {
		c.log.Error("recipe search failed", zap.Int("status", status), zap.Error(err))
		if errors.Is(err, ErrSearchFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	recipes := make([]types.Recipe, 0, len(matches))
	for _, m := range matches {
		recipes = append(recipes, c.mapMatch(m))
	}
	return recipes, nil
}

func (c *SpoonacularClient) mapMatch(m spoonacularMatch) types.Recipe {
	r := types.Recipe{
		ID:                   strconv.Itoa(m.ID),
		Name:                 m.Title,
		ImageURL:             m.Image,
		PrepTime:             m.ReadyInMinutes,
		Servings:             m.Servings,
		Instructions:         []string{m.Instructions},
		DietaryTags:          m.Diets,
		TotalCarbonFootprint: c.cfg.Placeholder,
		Source:               SpoonacularSource,
	}
	if r.PrepTime == 0 {
		r.PrepTime = 30
	}
	if r.Servings == 0 {
		r.Servings = 4
	}
	if m.Instructions == "" {
		r.Instructions = []string{types.NoInstructions}
	}
	if r.DietaryTags == nil {
		r.DietaryTags = []string{}
	}

	r.Ingredients = make([]types.Ingredient, 0, len(m.UsedIngredients)+len(m.MissedIngredients))
	for _, list := range [][]spoonacularIngredient{m.UsedIngredients, m.MissedIngredients} {
		for _, ing := range list {
			amount := ing.Amount
			r.Ingredients = append(r.Ingredients, types.Ingredient{
				Name:     ing.Name,
				Quantity: &amount,
				Unit:     ing.Unit,
			})
		}
	}
	return r
}

// GetRecipe fetches the full recipe including nutrition.
func (c *SpoonacularClient) GetRecipe(ctx context.Context, id string) (*types.Recipe, error) {
	if _, err := strconv.Atoi(id); err != nil {
		return nil, ErrRecipeNotFound
	}

	params := url.Values{}
	params.Set("apiKey", c.cfg.APIKey)
	params.Set("includeNutrition", "true")

	start := time.Now()
	var detail spoonacularDetail
	status, err := getJSON(ctx, c.client, c.limiter, c.cfg.BaseURL+"/recipes/"+id+"/information?"+params.Encode(), &detail)
	switch {
	case err != nil:
		err = fmt.Errorf("%w: %v", ErrSearchFailed, err)
	case status == http.StatusNotFound:
		err = ErrRecipeNotFound
	case status < 200 || status > 299:
		err = fmt.Errorf("%w: %s", ErrSearchFailed, http.StatusText(status))
	}
	c.metrics.ObserveExternal("spoonacular", start, err)
	if err != nil {
		return nil, err
	}

	r := c.mapDetail(detail)
	return &r, nil
}

func (c *SpoonacularClient) mapDetail(d spoonacularDetail) types.Recipe {
	r := types.Recipe{
		ID:                   strconv.Itoa(d.ID),
		Name:                 d.Title,
		ImageURL:             d.Image,
		Description:          htmlTag.ReplaceAllString(d.Summary, ""),
		DietaryTags:          d.Diets,
		PrepTime:             d.ReadyInMinutes,
		CookTime:             d.CookingMinutes,
		Servings:             d.Servings,
		TotalCarbonFootprint: c.cfg.Placeholder,
		CarbonImpact:         types.CarbonImpact(c.cfg.Placeholder),
		Source:               SpoonacularSource,
	}
	if r.Name == "" {
		r.Name = "No name"
	}
	if r.Servings == 0 {
		r.Servings = 1
	}
	if r.DietaryTags == nil {
		r.DietaryTags = []string{}
	}

	r.Ingredients = make([]types.Ingredient, 0, len(d.ExtendedIngredients))
	for _, ing := range d.ExtendedIngredients {
		amount := ing.Amount
		r.Ingredients = append(r.Ingredients, types.Ingredient{
			Name:        ing.Name,
			Quantity:    &amount,
			Unit:        ing.Unit,
			Preparation: ing.Original,
		})
	}

	r.Instructions = []string{}
	if len(d.AnalyzedInstructions) > 0 && len(d.AnalyzedInstructions[0].Steps) > 0 {
		for _, s := range d.AnalyzedInstructions[0].Steps {
			r.Instructions = append(r.Instructions, s.Step)
		}
	} else if d.Instructions != "" {
		r.Instructions = []string{d.Instructions}
	}

	facts := &types.NutritionFacts{}
	for _, n := range d.Nutrition.Nutrients {
		switch n.Name {
		case "Calories":
			facts.Calories = n.Amount
		case "Protein":
			facts.Protein = n.Amount
		case "Carbohydrates":
			facts.Carbs = n.Amount
		case "Fat":
			facts.Fat = n.Amount
		case "Fiber":
			facts.Fiber = n.Amount
		}
	}
	r.NutritionFacts = facts
	return r
}
