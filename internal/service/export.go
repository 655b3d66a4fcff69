package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/greenmeal/backend/internal/types"
	"go.uber.org/zap"
)

// ErrStorageNotConfigured is returned when no object store is available.
var ErrStorageNotConfigured = errors.New("export storage is not configured")

// ObjectStore uploads objects and hands out temporary download links.
type ObjectStore interface {
	PutObject(ctx context.Context, objectKey string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// MealPlanReader loads a user's saved plan.
type MealPlanReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*SavedMealPlan, error)
}

// ExportService uploads saved meal plans for download.
type ExportService struct {
	store  ObjectStore
	plans  MealPlanReader
	expiry time.Duration
	log    *zap.Logger
	now    func() time.Time
}

// NewExportService creates an ExportService. store may be nil, in which case
// every export fails with ErrStorageNotConfigured.
func NewExportService(store ObjectStore, plans MealPlanReader, expiry time.Duration, log *zap.Logger) *ExportService {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &ExportService{store: store, plans: plans, expiry: expiry, log: log, now: time.Now}
}

// ExportMealPlan uploads the user's plan as JSON and returns a presigned URL.
func (s *ExportService) ExportMealPlan(ctx context.Context, userID uuid.UUID) (*types.ExportResponse, error) {
	if s.store == nil {
		return nil, ErrStorageNotConfigured
	}

	plan, err := s.plans.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode meal plan: %w", err)
	}

	key := fmt.Sprintf("meal-plans/%s/%d.json", userID, s.now().Unix())
	if err := s.store.PutObject(ctx, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("failed to upload meal plan: %w", err)
	}

	url, err := s.store.GeneratePresignedURL(ctx, key, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign meal plan: %w", err)
	}

	s.log.Info("meal plan exported", zap.String("user_id", userID.String()), zap.String("key", key))
	return &types.ExportResponse{Key: key, URL: url, ExpiresIn: int(s.expiry.Seconds())}, nil
}
