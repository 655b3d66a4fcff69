package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSearch struct{ err error }

func (f failingSearch) FindByIngredients(context.Context, []string, []types.DietType) ([]types.Recipe, error) {
	return nil, f.err
}

type noopEnricher struct{ called bool }

func (n *noopEnricher) Enrich(_ context.Context, r []types.Recipe) []types.Recipe {
	n.called = true
	return r
}

func TestFindPipeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tomato,onion", r.URL.Query().Get("ingredients"))
		w.Write([]byte(`[
			{"id": 1, "title": "Quick Salsa", "readyInMinutes": 45,
			 "usedIngredients": [{"name": "tomato"}, {"name": "onion"}]},
			{"id": 2, "title": "Slow Braise", "readyInMinutes": 90,
			 "usedIngredients": [{"name": "onion"}]},
			{"id": 3, "title": "Mystery Bake", "readyInMinutes": 20,
			 "usedIngredients": [{"name": "tomato"}]}
		]`))
	}))
	defer srv.Close()

	llm := &fakeLLM{respond: func(prompt string) (string, error) {
		switch recipeFromPrompt(prompt) {
		case "Quick Salsa":
			return "3.2", nil
		case "Slow Braise":
			return "1.1", nil
		default:
			return "not sure", nil
		}
	}}
	finder := service.NewRecipeFinder(
		newSpoonacular(srv.URL),
		newEstimator(llm, service.CarbonConfig{}),
		testLogger, nil)

	res, err := finder.Find(context.Background(), []string{"tomato", "onion"}, service.FindRequest{
		Thresholds: service.Thresholds{MaxPrepTime: 60, MaxCarbonFootprint: 10},
	})
	require.NoError(t, err)

	require.Len(t, res.Recipes, 3)
	assert.Equal(t, 3.2, res.Recipes[0].TotalCarbonFootprint)
	assert.Equal(t, 1.1, res.Recipes[1].TotalCarbonFootprint)
	assert.Equal(t, 5.0, res.Recipes[2].TotalCarbonFootprint)

	assert.Equal(t, []string{"1", "3"}, ids(res.Filtered))
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, "Found 2 recipes that match your criteria.", res.Notifications[0].Description)
}

func TestFindNoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 7, "title": "Feast", "readyInMinutes": 240}]`))
	}))
	defer srv.Close()

	finder := service.NewRecipeFinder(newSpoonacular(srv.URL), &noopEnricher{}, testLogger, nil)
	res, err := finder.Find(context.Background(), []string{"beef"}, service.FindRequest{Thresholds: service.DefaultThresholds()})
	require.NoError(t, err)
	assert.Len(t, res.Recipes, 1)
	assert.Empty(t, res.Filtered)
	assert.Equal(t, "No Matching Recipes Found", res.Notifications[0].Title)
}

func TestFindEmptySearchResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	finder := service.NewRecipeFinder(newSpoonacular(srv.URL), &noopEnricher{}, testLogger, nil)
	res, err := finder.Find(context.Background(), []string{"saffron"}, service.FindRequest{Thresholds: service.DefaultThresholds()})
	require.NoError(t, err)
	assert.Empty(t, res.Recipes)
	assert.Empty(t, res.Filtered)
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, "No Matching Recipes Found", res.Notifications[0].Title)
	assert.Equal(t, "Try adjusting your filters or adding more ingredients.", res.Notifications[0].Description)
}

func TestFindAbortsOnSearchFailure(t *testing.T) {
	enricher := &noopEnricher{}
	searchErr := errors.New("search failed: Unauthorized")
	finder := service.NewRecipeFinder(failingSearch{err: searchErr}, enricher, testLogger, nil)

	res, err := finder.Find(context.Background(), []string{"tomato"}, service.FindRequest{})
	assert.ErrorIs(t, err, searchErr)
	assert.Nil(t, res)
	assert.False(t, enricher.called)

	_, err = finder.Find(context.Background(), nil, service.FindRequest{})
	assert.ErrorIs(t, err, service.ErrNoIngredients)
}
