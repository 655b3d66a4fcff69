package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/greenmeal/backend/config"
	"github.com/pageza/greenmeal/backend/internal/api"
	"github.com/pageza/greenmeal/backend/internal/cache"
	"github.com/pageza/greenmeal/backend/internal/database"
	"github.com/pageza/greenmeal/backend/internal/metrics"
	"github.com/pageza/greenmeal/backend/internal/middleware"
	"github.com/pageza/greenmeal/backend/internal/pantry"
	"github.com/pageza/greenmeal/backend/internal/service"
)

// Dependencies are the connections the server is built on. Redis and Storage
// are optional.
type Dependencies struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Storage service.ObjectStore
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	log    *zap.Logger
}

// New wires every service from cfg and registers the routes. Without redis
// the pantry and caches live in process memory and searches are not rate
// limited.
func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if err := api.RegisterValidators(); err != nil {
		return nil, err
	}
	log := deps.Log
	m := deps.Metrics

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var (
		responseCache cache.Cache
		pantryStore   pantry.Store
		limiter       *middleware.RateLimiter
	)
	if deps.Redis != nil {
		responseCache = cache.NewRedisCache(deps.Redis, "greenmeal:")
		pantryStore = pantry.NewRedisStore(deps.Redis, cfg.PantryTTL)
		if cfg.SearchRateLimit > 0 {
			limiter = middleware.NewRecipeSearchRateLimiter(deps.Redis, cfg.SearchRateLimit, log)
		}
	} else {
		log.Warn("redis not configured, using in-memory pantry and caches")
		responseCache = cache.NewMemoryCache()
		pantryStore = pantry.NewMemoryStore()
	}

	dictionary := service.NewDictionaryClient(service.DictionaryConfig{
		BaseURL:           cfg.DictionaryBaseURL,
		RequestsPerSecond: cfg.UpstreamRequestsPerSecond,
		CacheTTL:          cfg.CacheTTL,
		HTTPClient:        httpClient,
	}, responseCache, log, m)
	validator := service.NewIngredientValidator(service.ValidatorConfig{
		FoodKeywords: cfg.FoodKeywords,
	}, dictionary, log, m)

	llm := service.NewLLMService(service.LLMConfig{
		APIKey:      cfg.LLMAPIKey,
		APIURL:      cfg.LLMAPIURL,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		HTTPClient:  httpClient,
	}, log, m)

	spoonacular := service.NewSpoonacularClient(service.SpoonacularConfig{
		APIKey:            cfg.SpoonacularAPIKey,
		BaseURL:           cfg.SpoonacularBaseURL,
		ResultCount:       cfg.SearchResultCount,
		Placeholder:       cfg.CarbonPlaceholder,
		RequestsPerSecond: cfg.UpstreamRequestsPerSecond,
		HTTPClient:        httpClient,
	}, log, m)

	carbon := service.NewCarbonEstimator(llm, responseCache, service.CarbonConfig{
		Min:      cfg.CarbonMinEstimate,
		Max:      cfg.CarbonMaxEstimate,
		Probe:    cfg.CarbonProbe,
		CacheTTL: cfg.CacheTTL,
	}, log, m)

	mealPlans := service.NewMealPlanService(llm, deps.DB, log)

	router := gin.New()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.AllowedOrigins),
		m.HTTPMiddleware(),
	)

	api.RegisterRoutes(router, api.Services{
		Auth:      service.NewAuthService(deps.DB, cfg.JWTSecret, log, m),
		Pantry:    service.NewPantryService(pantryStore, validator, log),
		Finder:    service.NewRecipeFinder(spoonacular, carbon, log, m),
		Details:   spoonacular,
		MealPlans: mealPlans,
		Tips:      service.NewTipService(llm, log),
		Saved:     service.NewSavedRecipeService(deps.DB, log),
		Export:    service.NewExportService(deps.Storage, mealPlans, 15*time.Minute, log),
	}, api.Options{
		Thresholds: service.Thresholds{
			MaxPrepTime:        cfg.DefaultMaxPrepTime,
			MaxCarbonFootprint: cfg.DefaultMaxCarbonFootprint,
		},
		SearchLimiter: limiter,
		Metrics:       m,
		Health:        healthCheck(deps.DB, deps.Redis),
		Log:           log,
	})

	return &Server{
		cfg:    cfg,
		router: router,
		db:     deps.DB,
		redis:  deps.Redis,
		log:    log,
	}, nil
}

func healthCheck(db *gorm.DB, rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := database.HealthCheck(ctx, db); err != nil {
			return err
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis ping failed: %w", err)
			}
		}
		return nil
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("starting server", zap.String("addr", s.cfg.Addr()))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes redis.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
