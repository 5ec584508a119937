package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminAuth gates the admin surface behind a single shared bearer secret.
// The token is compared by exact equality; an empty configured token fails
// every request closed. No store access happens before this check passes.
func AdminAuth(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")

		if adminToken == "" || header == token || token != adminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized access",
			})
			return
		}

		c.Next()
	}
}
