package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pageza/greenmeal/backend/internal/metrics"
	"github.com/pageza/greenmeal/backend/internal/pantry"
	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPantryService() *service.PantryService {
	dict := &countingLookup{entries: []service.DictionaryEntry{{
		Word:     "saffron",
		Meanings: []service.DictionaryMeaning{{Definitions: []service.DictionaryDefinition{{Definition: "a spice used in cooking"}}}},
	}}}
	return service.NewPantryService(pantry.NewMemoryStore(), newValidator(dict), testLogger)
}

func TestPantryServiceAdd(t *testing.T) {
	ctx := context.Background()
	svc := newPantryService()

	change, err := svc.Add(ctx, "u1", " Tomato ")
	require.NoError(t, err)
	assert.Equal(t, "tomato", change.Ingredient.Name)
	assert.NotEmpty(t, change.Ingredient.ID)
	require.NotNil(t, change.Notification)
	assert.Equal(t, "Ingredient Added", change.Notification.Title)

	_, err = svc.Add(ctx, "u1", "saffron")
	require.NoError(t, err)

	_, err = svc.Add(ctx, "u1", "TOMATO")
	assert.ErrorIs(t, err, service.ErrIngredientDuplicate)

	_, err = svc.Add(ctx, "u1", "salt1")
	assert.ErrorIs(t, err, service.ErrIngredientInvalidChars)

	names, err := svc.Names(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tomato", "saffron"}, names)

	other, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.NotNil(t, other)
	assert.Empty(t, other)
}

func TestPantryServiceRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	svc := newPantryService()

	tomato, err := svc.Add(ctx, "u1", "tomato")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u1", "onion")
	require.NoError(t, err)

	change, err := svc.Remove(ctx, "u1", "ingredient-unknown")
	require.NoError(t, err)
	assert.Nil(t, change.Notification)
	assert.Len(t, change.Ingredients, 2)

	change, err = svc.Remove(ctx, "u1", tomato.Ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ingredient Removed", change.Notification.Title)
	require.Len(t, change.Ingredients, 1)
	assert.Equal(t, "onion", change.Ingredients[0].Name)

	change, err = svc.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ingredients Cleared", change.Notification.Title)
	assert.NotNil(t, change.Ingredients)
	assert.Empty(t, change.Ingredients)
}

func TestPantryServiceSuggestions(t *testing.T) {
	svc := newPantryService()
	assert.Empty(t, svc.Suggestions("t"))
	assert.LessOrEqual(t, len(svc.Suggestions("ea")), 5)
	assert.Contains(t, svc.Suggestions("tom"), "tomato")
}

// racingLookup adds the word to the user's pantry while the lookup is in
// flight, like a second request finishing first.
type racingLookup struct {
	store  pantry.Store
	userID string
}

func (l *racingLookup) Lookup(ctx context.Context, word string) ([]service.DictionaryEntry, error) {
	_, err := l.store.Update(ctx, l.userID, func(st pantry.State) (pantry.State, error) {
		out, _ := pantry.Reduce(st, pantry.Add{Ingredient: types.Ingredient{ID: "ingredient-other", Name: word}})
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return []service.DictionaryEntry{{
		Word:     word,
		Meanings: []service.DictionaryMeaning{{Definitions: []service.DictionaryDefinition{{Definition: "a spice used in cooking"}}}},
	}}, nil
}

func TestPantryServiceCountsConcurrentDuplicateAsRejected(t *testing.T) {
	ctx := context.Background()
	store := pantry.NewMemoryStore()
	m := metrics.New()
	v := service.NewIngredientValidator(service.ValidatorConfig{}, &racingLookup{store: store, userID: "u1"}, testLogger, m)
	svc := service.NewPantryService(store, v, testLogger)

	_, err := svc.Add(ctx, "u1", "saffron")
	assert.ErrorIs(t, err, service.ErrIngredientDuplicate)

	names, err := svc.Names(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"saffron"}, names)

	const header = `
# HELP ingredient_validations_total Ingredient validations by outcome
# TYPE ingredient_validations_total counter
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(header+`
ingredient_validations_total{outcome="rejected"} 1
`), "ingredient_validations_total"))

	_, err = svc.Add(ctx, "u1", "tomato")
	require.NoError(t, err)

	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(header+`
ingredient_validations_total{outcome="accepted"} 1
ingredient_validations_total{outcome="rejected"} 1
`), "ingredient_validations_total"))
}
