package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryObjectStore struct {
	objects map[string][]byte
	putErr  error
}

func (m *memoryObjectStore) PutObject(_ context.Context, key string, body []byte, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = body
	return nil
}

func (m *memoryObjectStore) GeneratePresignedURL(_ context.Context, key string, exp time.Duration) (string, error) {
	return "https://bucket.example/" + key + "?expires=" + exp.String(), nil
}

type planReader struct {
	plan *service.SavedMealPlan
	err  error
}

func (p planReader) Get(context.Context, uuid.UUID) (*service.SavedMealPlan, error) {
	return p.plan, p.err
}

func TestExportMealPlan(t *testing.T) {
	store := &memoryObjectStore{}
	plan := &service.SavedMealPlan{
		MealPlan: types.MealPlan{
			Days:         []types.MealPlanDay{{Day: "Monday"}},
			ShoppingList: &types.ShoppingList{Produce: []string{"kale"}},
		},
	}
	svc := service.NewExportService(store, planReader{plan: plan}, 10*time.Minute, testLogger)
	userID := uuid.New()

	res, err := svc.ExportMealPlan(context.Background(), userID)
	require.NoError(t, err)
	assert.Contains(t, res.Key, "meal-plans/"+userID.String()+"/")
	assert.Contains(t, res.URL, res.Key)
	assert.Equal(t, 600, res.ExpiresIn)

	var uploaded types.MealPlan
	require.NoError(t, json.Unmarshal(store.objects[res.Key], &uploaded))
	assert.Equal(t, []string{"kale"}, uploaded.ShoppingList.Produce)
}

func TestExportMealPlanErrors(t *testing.T) {
	userID := uuid.New()

	svc := service.NewExportService(nil, planReader{}, 0, testLogger)
	_, err := svc.ExportMealPlan(context.Background(), userID)
	assert.ErrorIs(t, err, service.ErrStorageNotConfigured)

	svc = service.NewExportService(&memoryObjectStore{}, planReader{err: service.ErrMealPlanNotFound}, 0, testLogger)
	_, err = svc.ExportMealPlan(context.Background(), userID)
	assert.ErrorIs(t, err, service.ErrMealPlanNotFound)

	uploadErr := errors.New("access denied")
	plan := &service.SavedMealPlan{MealPlan: types.MealPlan{ShoppingList: &types.ShoppingList{}}}
	svc = service.NewExportService(&memoryObjectStore{putErr: uploadErr}, planReader{plan: plan}, 0, testLogger)
	_, err = svc.ExportMealPlan(context.Background(), userID)
	assert.ErrorIs(t, err, uploadErr)
}
