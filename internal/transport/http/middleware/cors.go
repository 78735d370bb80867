package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware only answers cross-origin requests from origins allowed
// reports true for. Requests without an Origin header pass through.
func CORSMiddleware(allowed func(origin string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" {
			if !allowed(origin) {
				log.Printf("[CORS] Origin '%s' not in allowed list", origin)
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Origin not allowed", "code": "origin_not_allowed"})
				return
			}
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight OPTIONS requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
