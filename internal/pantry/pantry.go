// Package pantry holds the ordered ingredient list each user builds before a
// recipe search. State changes only through Reduce.
package pantry

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/greenmeal/backend/internal/types"
)

// State is one user's pantry.
type State struct {
	Ingredients []types.Ingredient `json:"ingredients"`
}

// Names returns the ingredient names in insertion order.
func (s State) Names() []string {
	names := make([]string, len(s.Ingredients))
	for i, ing := range s.Ingredients {
		names[i] = ing.Name
	}
	return names
}

// Contains reports whether name is already present, ignoring case and
// surrounding space.
func (s State) Contains(name string) bool {
	want := Normalize(name)
	for _, ing := range s.Ingredients {
		if Normalize(ing.Name) == want {
			return true
		}
	}
	return false
}

// Normalize is the comparison form of an ingredient name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewIngredientID returns a fresh ingredient identifier.
func NewIngredientID() string {
	return "ingredient-" + uuid.NewString()
}

// Action is a pantry mutation.
type Action interface {
	apply(State) (State, *types.Notification)
}

// Add appends an ingredient.
type Add struct {
	Ingredient types.Ingredient
}

// Remove drops the ingredient with the given ID.
type Remove struct {
	ID string
}

// Clear empties the pantry.
type Clear struct{}

// Reduce applies a to s and returns the new state along with the
// notification to show, if any. s is never modified.
func Reduce(s State, a Action) (State, *types.Notification) {
	return a.apply(s)
}

func (a Add) apply(s State) (State, *types.Notification) {
	next := make([]types.Ingredient, 0, len(s.Ingredients)+1)
	next = append(next, s.Ingredients...)
	next = append(next, a.Ingredient)
	return State{Ingredients: next}, &types.Notification{
		Title:       "Ingredient Added",
		Description: fmt.Sprintf("%s has been added to your ingredients list.", a.Ingredient.Name),
	}
}

func (a Remove) apply(s State) (State, *types.Notification) {
	next := make([]types.Ingredient, 0, len(s.Ingredients))
	var removed *types.Ingredient
	for i, ing := range s.Ingredients {
		if ing.ID == a.ID {
			removed = &s.Ingredients[i]
			continue
		}
		next = append(next, ing)
	}
	if removed == nil {
		return State{Ingredients: next}, nil
	}
	return State{Ingredients: next}, &types.Notification{
		Title:       "Ingredient Removed",
		Description: fmt.Sprintf("%s has been removed from your ingredients list.", removed.Name),
	}
}

func (Clear) apply(State) (State, *types.Notification) {
	return State{Ingredients: []types.Ingredient{}}, &types.Notification{
		Title:       "Ingredients Cleared",
		Description: "All ingredients have been removed from your list.",
	}
}
