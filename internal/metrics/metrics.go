// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the upstream services the recipe pipeline calls. A nil *Metrics is
// valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics handles Prometheus metrics collection
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	externalRequestsTotal   *prometheus.CounterVec
	externalRequestDuration *prometheus.HistogramVec

	cacheOperations      *prometheus.CounterVec
	validationsTotal     *prometheus.CounterVec
	carbonEstimates      *prometheus.CounterVec
	recipesReturned      prometheus.Histogram
	usersRegisteredTotal prometheus.Counter
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status_code"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status_code"}),
		externalRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "external_requests_total",
			Help: "Calls made to upstream services",
		}, []string{"service", "outcome"}),
		externalRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "external_request_duration_seconds",
			Help:    "Upstream call latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service"}),
		cacheOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache lookups by namespace and result",
		}, []string{"namespace", "result"}),
		validationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ingredient_validations_total",
			Help: "Ingredient validations by outcome",
		}, []string{"outcome"}),
		carbonEstimates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "carbon_estimates_total",
			Help: "Carbon estimates by outcome",
		}, []string{"outcome"}),
		recipesReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "recipes_returned",
			Help:    "Recipes remaining after filtering per search",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		}),
		usersRegisteredTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of registered users",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// HTTPMiddleware records request counts and latency per route.
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// ObserveExternal records one upstream call.
func (m *Metrics) ObserveExternal(service string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.externalRequestsTotal.WithLabelValues(service, outcome).Inc()
	m.externalRequestDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}

// CacheResult records a hit or miss in the named cache namespace.
func (m *Metrics) CacheResult(namespace string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheOperations.WithLabelValues(namespace, result).Inc()
}

// Validation records the outcome of an ingredient validation.
func (m *Metrics) Validation(outcome string) {
	if m == nil {
		return
	}
	m.validationsTotal.WithLabelValues(outcome).Inc()
}

// CarbonEstimate records whether an estimate was accepted.
func (m *Metrics) CarbonEstimate(outcome string) {
	if m == nil {
		return
	}
	m.carbonEstimates.WithLabelValues(outcome).Inc()
}

// RecipesReturned records how many recipes survived filtering.
func (m *Metrics) RecipesReturned(n int) {
	if m == nil {
		return
	}
	m.recipesReturned.Observe(float64(n))
}

// UserRegistered counts a successful registration.
func (m *Metrics) UserRegistered() {
	if m == nil {
		return
	}
	m.usersRegisteredTotal.Inc()
}
