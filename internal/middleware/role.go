package middleware

import (
	"net/http"

	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireRole rejects requests whose token role differs from requiredRole.
// Admins pass every role check.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			respondForbidden(c, http.StatusUnauthorized, models.ErrUnauthorized, "User not authenticated", nil)
			return
		}

		role := c.GetString(ContextUserRole)
		if role != requiredRole && role != "admin" {
			respondForbidden(c, http.StatusForbidden, models.ErrForbidden, "Insufficient permissions",
				map[string]interface{}{"requiredRole": requiredRole})
			return
		}

		c.Next()
	}
}

// RequireScope rejects tokens that were not granted scope
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !models.HasScope(c.GetString(ContextScopes), scope) {
			c.Header("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+scope+`"`)
			respondForbidden(c, http.StatusForbidden, models.ErrForbidden, "Token lacks the required scope",
				map[string]interface{}{"requiredScope": scope})
			return
		}
		c.Next()
	}
}

func respondForbidden(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	if details == nil {
		c.AbortWithStatusJSON(status, models.NewAPIError(code, message))
		return
	}
	c.AbortWithStatusJSON(status, models.NewAPIError(code, message, details))
}
