package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsHeaders = "Content-Type, X-Requested-With"
	corsMaxAge  = "600"
)

// CORS echoes the request origin when it is in allowed. An empty list or a
// "*" entry admits every origin. Preflight requests end here with 204.
func CORS(allowed []string) gin.HandlerFunc {
	anyOrigin := len(allowed) == 0
	origins := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o == "*" {
			anyOrigin = true
		}
		if o != "" {
			origins[o] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		_, listed := origins[origin]
		permitted := origin != "" && (anyOrigin || listed)

		if permitted {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			h.Set("Access-Control-Allow-Methods", corsMethods)
		}

		if c.Request.Method == http.MethodOptions && origin != "" {
			if !permitted {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Header("Access-Control-Max-Age", corsMaxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
