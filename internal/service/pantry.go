package service

import (
	"context"

	"github.com/pageza/greenmeal/backend/internal/pantry"
	"github.com/pageza/greenmeal/backend/internal/types"
	"go.uber.org/zap"
)

// suggestionLimit caps allow-list suggestions per query.
const suggestionLimit = 5

// PantryChange is the outcome of a pantry mutation.
type PantryChange struct {
	Ingredient   *types.Ingredient   `json:"ingredient,omitempty"`
	Ingredients  []types.Ingredient  `json:"ingredients"`
	Notification *types.Notification `json:"notification,omitempty"`
}

// PantryService manages each user's ingredient list.
type PantryService struct {
	store     pantry.Store
	validator *IngredientValidator
	log       *zap.Logger
}

// NewPantryService creates a PantryService.
func NewPantryService(store pantry.Store, validator *IngredientValidator, log *zap.Logger) *PantryService {
	return &PantryService{store: store, validator: validator, log: log}
}

// List returns the user's ingredients in insertion order.
func (s *PantryService) List(ctx context.Context, userID string) ([]types.Ingredient, error) {
	st, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nonNil(st.Ingredients), nil
}

// Names returns the user's ingredient names in insertion order.
func (s *PantryService) Names(ctx context.Context, userID string) ([]string, error) {
	st, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return st.Names(), nil
}

// Add validates raw and appends it to the user's pantry.
func (s *PantryService) Add(ctx context.Context, userID, raw string) (*PantryChange, error) {
	current, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	name, err := s.validator.Check(ctx, raw, current.Names())
	if err != nil {
		s.validator.Record(err)
		return nil, err
	}

	ingredient := types.Ingredient{ID: pantry.NewIngredientID(), Name: name}
	var note *types.Notification
	next, err := s.store.Update(ctx, userID, func(st pantry.State) (pantry.State, error) {
		// the list may have changed during the dictionary lookup
		if st.Contains(name) {
			return st, ErrIngredientDuplicate
		}
		var out pantry.State
		out, note = pantry.Reduce(st, pantry.Add{Ingredient: ingredient})
		return out, nil
	})
	s.validator.Record(err)
	if err != nil {
		return nil, err
	}

	s.log.Debug("ingredient added", zap.String("user_id", userID), zap.String("ingredient", name))
	return &PantryChange{Ingredient: &ingredient, Ingredients: next.Ingredients, Notification: note}, nil
}

// Remove drops one ingredient by ID. Unknown IDs leave the list unchanged
// and produce no notification.
func (s *PantryService) Remove(ctx context.Context, userID, id string) (*PantryChange, error) {
	return s.apply(ctx, userID, pantry.Remove{ID: id})
}

// Clear empties the user's pantry.
func (s *PantryService) Clear(ctx context.Context, userID string) (*PantryChange, error) {
	return s.apply(ctx, userID, pantry.Clear{})
}

func (s *PantryService) apply(ctx context.Context, userID string, action pantry.Action) (*PantryChange, error) {
	var note *types.Notification
	next, err := s.store.Update(ctx, userID, func(st pantry.State) (pantry.State, error) {
		var out pantry.State
		out, note = pantry.Reduce(st, action)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &PantryChange{Ingredients: nonNil(next.Ingredients), Notification: note}, nil
}

// Suggestions returns common ingredients containing q.
func (s *PantryService) Suggestions(q string) []string {
	return s.validator.Suggestions(q, suggestionLimit)
}

func nonNil(in []types.Ingredient) []types.Ingredient {
	if in == nil {
		return []types.Ingredient{}
	}
	return in
}
