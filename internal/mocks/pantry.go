package mocks

import (
	"context"

	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockPantryService is a mock implementation of the PantryService interface
type MockPantryService struct {
	mock.Mock
}

func (m *MockPantryService) List(ctx context.Context, userID string) ([]types.Ingredient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Ingredient), args.Error(1)
}

func (m *MockPantryService) Names(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPantryService) Add(ctx context.Context, userID, raw string) (*service.PantryChange, error) {
	return m.change(m.Called(ctx, userID, raw))
}

func (m *MockPantryService) Remove(ctx context.Context, userID, id string) (*service.PantryChange, error) {
	return m.change(m.Called(ctx, userID, id))
}

func (m *MockPantryService) Clear(ctx context.Context, userID string) (*service.PantryChange, error) {
	return m.change(m.Called(ctx, userID))
}

func (m *MockPantryService) Suggestions(q string) []string {
	args := m.Called(q)
	return args.Get(0).([]string)
}

func (m *MockPantryService) change(args mock.Arguments) (*service.PantryChange, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PantryChange), args.Error(1)
}
