package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/logger"
	"github.com/BruksfildServices01/ironpeak-gym/internal/metrics"
	"github.com/BruksfildServices01/ironpeak-gym/internal/ratelimit"
)

// RateLimit rejects a client IP with 429 once limiter says no. A limiter error
// lets the request through.
func RateLimit(scope string, limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable", "scope", scope, "error", err)
			c.Next()
			return
		}

		if !ok {
			metrics.RecordRateLimited(scope)
			c.Header("Retry-After", "60")
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please slow down.")
			c.Abort()
			return
		}

		c.Next()
	}
}
