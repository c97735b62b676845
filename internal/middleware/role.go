package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"realty/internal/pkg/response"
)

// RequireRole rejects authenticated requests whose token carries a different
// role. It runs after JWTAuth, which stores the role on the context.
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "role not found in token")
			c.Abort()
			return
		}

		if role.(string) != required {
			response.Error(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly requires the admin role.
func AdminOnly() gin.HandlerFunc {
	return RequireRole("admin")
}
