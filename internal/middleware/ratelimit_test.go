package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JeonHyeonsu/gaongill/internal/templates"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimitedRouter(t *testing.T, requestsPerMinute int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	limiter, err := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: requestsPerMinute,
		StoreType:         RateLimitStoreMemory,
		CleanupInterval:   time.Minute,
	})
	require.NoError(t, err)

	r := gin.New()
	templates.Load(r)
	r.POST("/limited", limiter, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func limitedRequest(r *gin.Engine, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNewRateLimiter(t *testing.T) {
	t.Run("requests within the limit pass", func(t *testing.T) {
		r := setupLimitedRouter(t, 3)

		for i := 0; i < 3; i++ {
			w := limitedRequest(r, "")
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("request over the limit gets 429 JSON", func(t *testing.T) {
		r := setupLimitedRouter(t, 2)

		limitedRequest(r, "")
		limitedRequest(r, "")
		w := limitedRequest(r, "")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	})

	t.Run("browser request over the limit gets the HTML error page", func(t *testing.T) {
		r := setupLimitedRouter(t, 1)

		limitedRequest(r, "")
		w := limitedRequest(r, "text/html")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "Rate Limit Exceeded")
	})
}

func TestUnknownStoreTypeFallsBackToMemory(t *testing.T) {
	limiter, err := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 1,
		StoreType:         RateLimitStoreType("bogus"),
		CleanupInterval:   time.Minute,
	})
	require.NoError(t, err)
	assert.NotNil(t, limiter)
}
