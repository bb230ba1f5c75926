package middlewares

import (
	"net/http"
	"strings"

	"agenticads/services"

	"github.com/gin-gonic/gin"
)

// SessionAuthMiddleware gates admin-only endpoints on the stored admin
// session. A Bearer header, when present, must match the session token;
// without a header the authenticated flag alone decides.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := services.GetSessionService().Session()
		if !session.Authenticated || session.Token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin session required"})
			c.Abort()
			return
		}

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Authorization token format"})
				c.Abort()
				return
			}
			if parts[1] != session.Token {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
