package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS handles cross-origin requests. Allowed origins come from the
// CORS_ALLOWED_ORIGINS environment variable (comma-separated); unset
// means allow all.
func CORS() gin.HandlerFunc {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	allowAll := raw == ""

	var allowed []string
	if !allowAll {
		for _, origin := range strings.Split(raw, ",") {
			allowed = append(allowed, strings.TrimSpace(origin))
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			ok := false
			for _, o := range allowed {
				if origin == o {
					ok = true
					break
				}
			}
			if ok {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			} else if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Authorization, X-Request-ID, X-Owner-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
