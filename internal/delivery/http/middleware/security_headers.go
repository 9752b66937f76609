package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware sets baseline hardening headers for a JSON API.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Personalised responses (match scores, has_applied) must not be cached by intermediaries.
		if c.GetHeader("Authorization") != "" {
			c.Header("Cache-Control", "no-store, private")
		}

		c.Next()
	}
}
