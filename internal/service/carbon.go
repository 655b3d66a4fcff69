package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/greenmeal/backend/internal/aiparse"
	"github.com/pageza/greenmeal/backend/internal/cache"
	"github.com/pageza/greenmeal/backend/internal/metrics"
	"github.com/pageza/greenmeal/backend/internal/settle"
	"github.com/pageza/greenmeal/backend/internal/types"
	"go.uber.org/zap"
)

// ErrLLMUnavailable is returned when the connectivity probe fails.
var ErrLLMUnavailable = errors.New("text model unavailable")

// CarbonConfig holds the accepted estimate range and probe settings.
type CarbonConfig struct {
	Min      float64
	Max      float64
	Probe    bool
	CacheTTL time.Duration
	// Concurrency caps simultaneous estimates in Enrich; 0 means unlimited.
	Concurrency int
}

// CarbonEstimator asks a text model for a recipe's footprint in kg CO2e.
type CarbonEstimator struct {
	llm     TextGenerator
	cache   cache.Cache
	cfg     CarbonConfig
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewCarbonEstimator creates an estimator. c may be nil to disable caching.
func NewCarbonEstimator(llm TextGenerator, c cache.Cache, cfg CarbonConfig, log *zap.Logger, m *metrics.Metrics) *CarbonEstimator {
	if cfg.Max == 0 {
		cfg.Min, cfg.Max = 0.1, 10.0
	}
	return &CarbonEstimator{llm: llm, cache: c, cfg: cfg, log: log, metrics: m}
}

func carbonCacheKey(name string, ingredients []string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(name) + "\x00" + strings.ToLower(strings.Join(ingredients, ","))))
	return "carbon:" + hex.EncodeToString(sum[:])
}

// Estimate returns the model's estimate for one recipe. Values outside
// [Min, Max] are errors.
func (e *CarbonEstimator) Estimate(ctx context.Context, name string, ingredients []string) (float64, error) {
	key := carbonCacheKey(name, ingredients)
	if v, ok := e.cached(ctx, key); ok {
		return v, nil
	}

	if e.cfg.Probe {
		if err := e.llm.Ping(ctx); err != nil {
			e.metrics.CarbonEstimate("unavailable")
			return 0, fmt.Errorf("%w: %v", ErrLLMUnavailable, err)
		}
	}

	text, err := e.llm.Generate(ctx, carbonPrompt(name, ingredients))
	if err != nil {
		e.metrics.CarbonEstimate("error")
		return 0, err
	}

	v, err := aiparse.NumberInRange(text, e.cfg.Min, e.cfg.Max)
	if err != nil {
		e.metrics.CarbonEstimate("rejected")
		return 0, err
	}

	e.metrics.CarbonEstimate("accepted")
	if e.cache != nil {
		if err := e.cache.Set(ctx, key, []byte(strconv.FormatFloat(v, 'f', -1, 64)), e.cfg.CacheTTL); err != nil {
			e.log.Warn("carbon cache write failed", zap.Error(err))
		}
	}
	return v, nil
}

func (e *CarbonEstimator) cached(ctx context.Context, key string) (float64, bool) {
	if e.cache == nil {
		return 0, false
	}
	raw, err := e.cache.Get(ctx, key)
	if err != nil {
		e.metrics.CacheResult("carbon", false)
		return 0, false
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || v < e.cfg.Min || v > e.cfg.Max {
		e.metrics.CacheResult("carbon", false)
		return 0, false
	}
	e.metrics.CacheResult("carbon", true)
	return v, true
}

// EstimateOrZero is Estimate with every failure logged and mapped to 0.
func (e *CarbonEstimator) EstimateOrZero(ctx context.Context, name string, ingredients []string) float64 {
	v, err := e.Estimate(ctx, name, ingredients)
	if err != nil {
		e.logFailure(name, err)
		return 0
	}
	return v
}

// Enrich estimates every recipe concurrently and waits for all of them. A
// recipe whose estimate fails keeps its current footprint. The input slice
// is not modified.
func (e *CarbonEstimator) Enrich(ctx context.Context, recipes []types.Recipe) []types.Recipe {
	results := settle.All(ctx, recipes, e.cfg.Concurrency, func(ctx context.Context, r types.Recipe) (float64, error) {
		return e.Estimate(ctx, r.Name, r.IngredientNames())
	})

	out := make([]types.Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r
		if res := results[i]; res.OK() {
			out[i].TotalCarbonFootprint = res.Value
		} else {
			e.logFailure(r.Name, res.Err, zap.String("recipe_id", r.ID))
		}
	}
	return out
}

func (e *CarbonEstimator) logFailure(name string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("recipe", name), zap.Error(err))
	if raw, ok := aiparse.Raw(err); ok {
		fields = append(fields, zap.String("response", raw))
	}
	e.log.Warn("carbon estimate failed", fields...)
}
