// Package auth gates every route behind the shared bearer secret.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerScheme = "Bearer "

// BearerMiddleware rejects any request whose Authorization header does
// not carry the exact configured secret. It runs before rate limiting
// and the handlers, so a rejected request produces no side effects.
// The default secret is a placeholder; overriding it is a deployment
// responsibility.
func BearerMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerScheme) || strings.TrimPrefix(header, bearerScheme) != secret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
