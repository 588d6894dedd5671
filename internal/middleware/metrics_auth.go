package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MetricsAuth guards the metrics endpoint with a static bearer token. An
// empty token disables the check. The comparison is constant-time so the
// token cannot be probed byte by byte.
func MetricsAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		supplied, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok {
			rejectMetrics(c, "Bearer token required")
			return
		}
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			rejectMetrics(c, "Invalid token")
			return
		}

		c.Next()
	}
}

func rejectMetrics(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="Metrics"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthorized",
		"message": message,
	})
}
