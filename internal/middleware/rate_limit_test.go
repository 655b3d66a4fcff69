package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/internal/testhelpers"
)

func TestRateLimitMiddleware(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	limiter := NewRecipeSearchRateLimiter(client, 2, zap.NewNop())
	// pin the window so the test cannot straddle a minute boundary
	fixed := time.Now().Truncate(time.Minute).Add(10 * time.Second)
	limiter.now = func() time.Time { return fixed }

	userID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set(UserIDKey, userID) })
	router.Use(limiter.RateLimitMiddleware())
	router.POST("/find", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest(http.MethodPost, "/find", nil))
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, last.Body.String(), "rate limit exceeded")
}

func TestRateLimitMiddlewareRequiresUser(t *testing.T) {
	limiter := NewRecipeSearchRateLimiter(nil, 2, zap.NewNop())
	router := gin.New()
	router.Use(limiter.RateLimitMiddleware())
	router.POST("/find", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/find", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
