package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/greenmeal/backend/internal/aiparse"
	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/testhelpers"
	"github.com/pageza/greenmeal/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// planJSON builds a model response covering the given number of days.
func planJSON(t *testing.T, days int, withList bool) string {
	t.Helper()
	meal := func(name string) types.Meal {
		return types.Meal{Name: name, CarbonFootprint: 1, Ingredients: []string{"tomato"}, RecipeID: strings.ToLower(name)}
	}
	plan := map[string]interface{}{}
	var out []types.MealPlanDay
	for i := 0; i < days; i++ {
		out = append(out, types.MealPlanDay{
			Day:       weekdays[i%7],
			Breakfast: meal(fmt.Sprintf("Oats %d", i)),
			Lunch:     meal(fmt.Sprintf("Salad %d", i)),
			Dinner:    meal(fmt.Sprintf("Stew %d", i)),
		})
	}
	plan["mealPlan"] = out
	if withList {
		plan["shoppingList"] = types.ShoppingList{Produce: []string{"tomato"}, Pantry: []string{"oats"}}
	}
	raw, err := json.Marshal(plan)
	require.NoError(t, err)
	return string(raw)
}

func TestParseMealPlan(t *testing.T) {
	plan, err := service.ParseMealPlan("```json\n" + planJSON(t, 7, true) + "\n```")
	require.NoError(t, err)
	assert.Len(t, plan.Days, 7)
	assert.Equal(t, "Sunday", plan.Days[6].Day)
	assert.Equal(t, []string{"tomato"}, plan.ShoppingList.Produce)
	assert.Equal(t, 21.0, plan.TotalCarbonFootprint())
}

func TestParseMealPlanRejects(t *testing.T) {
	tests := map[string]string{
		"six days":         planJSON(t, 6, true),
		"eight days":       planJSON(t, 8, true),
		"no shopping list": planJSON(t, 7, false),
		"prose":            "Here is your plan: eat vegetables.",
		"empty":            "```json\n```",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := service.ParseMealPlan(raw)
			assert.ErrorIs(t, err, service.ErrMealPlanParse)
		})
	}

	_, err := service.ParseMealPlan("{not json")
	raw, ok := aiparse.Raw(err)
	assert.True(t, ok)
	assert.Equal(t, "{not json", raw)
}

func TestMealPlanGenerateAndGet(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.SetupSQLite(t)
	llm := staticLLM(planJSON(t, 7, true))
	svc := service.NewMealPlanService(llm, db, testLogger)
	userID := uuid.New()

	_, err := svc.Get(ctx, userID)
	assert.ErrorIs(t, err, service.ErrMealPlanNotFound)

	saved, err := svc.Generate(ctx, userID, []string{"vegan"}, []string{"tomato", "oats"})
	require.NoError(t, err)
	assert.Equal(t, 21.0, saved.TotalCarbonFootprint)
	assert.Contains(t, llm.prompts[0], "Diet preferences: vegan")
	assert.Contains(t, llm.prompts[0], "Available ingredients: tomato, oats")

	got, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, saved.Days, got.Days)
	assert.Equal(t, saved.ShoppingList, got.ShoppingList)

	// a second plan replaces the first
	next := planJSON(t, 7, true)
	next = strings.Replace(next, "Oats 0", "Pancakes", 1)
	llm.respond = func(string) (string, error) { return next, nil }
	_, err = svc.Generate(ctx, userID, nil, []string{"flour"})
	require.NoError(t, err)
	assert.Contains(t, llm.prompts[1], "Diet preferences: No specific preferences")

	got, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Days[0].Breakfast.Name)
}

func TestMealPlanGenerateFailuresStoreNothing(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.SetupSQLite(t)
	userID := uuid.New()

	svc := service.NewMealPlanService(staticLLM(planJSON(t, 5, true)), db, testLogger)
	_, err := svc.Generate(ctx, userID, nil, []string{"tomato"})
	assert.ErrorIs(t, err, service.ErrMealPlanParse)

	modelErr := errors.New("quota exceeded")
	svc = service.NewMealPlanService(&fakeLLM{respond: func(string) (string, error) { return "", modelErr }}, db, testLogger)
	_, err = svc.Generate(ctx, userID, nil, []string{"tomato"})
	assert.ErrorIs(t, err, modelErr)

	_, err = svc.Generate(ctx, userID, nil, nil)
	assert.ErrorIs(t, err, service.ErrNoIngredients)

	_, err = svc.Get(ctx, userID)
	assert.ErrorIs(t, err, service.ErrMealPlanNotFound)
}
