package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/internal/metrics"
	"github.com/pageza/greenmeal/backend/internal/middleware"
	"github.com/pageza/greenmeal/backend/internal/service"
)

// Services bundles everything the HTTP handlers call into.
type Services struct {
	Auth      service.IAuthService
	Pantry    service.IPantryService
	Finder    service.IRecipeFinder
	Details   service.IRecipeDetails
	MealPlans service.IMealPlanService
	Tips      service.ITipService
	Saved     service.ISavedRecipeService
	Export    service.IExportService
}

// Options tunes route registration.
type Options struct {
	// Thresholds apply when a search omits its own limits.
	Thresholds service.Thresholds
	// SearchLimiter throttles recipe searches per user; nil disables it.
	SearchLimiter *middleware.RateLimiter
	Metrics       *metrics.Metrics
	// Health reports whether the backing stores are reachable.
	Health func(ctx context.Context) error
	Log    *zap.Logger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services, opts Options) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	health := NewHealthHandler(opts.Health)
	router.GET("/health", health.Check)
	router.GET("/api/health", health.Check)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	authHandler := NewAuthHandler(svc.Auth, opts.Log)
	authHandler.RegisterRoutes(router.Group("/api"))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(svc.Auth))

	NewPantryHandler(svc.Pantry, opts.Log).RegisterRoutes(v1)
	NewRecipeHandler(svc.Pantry, svc.Finder, svc.Details, opts.Thresholds, opts.SearchLimiter, opts.Log).RegisterRoutes(v1)
	NewMealPlanHandler(svc.Pantry, svc.MealPlans, svc.Export, opts.Log).RegisterRoutes(v1)
	NewTipHandler(svc.Pantry, svc.Tips, opts.Log).RegisterRoutes(v1)
	NewSavedRecipeHandler(svc.Saved, opts.Log).RegisterRoutes(v1)
}
