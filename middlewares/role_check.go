package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/putrawdn/restaurant-mgt/utils"
)

// RequireRoles gates a route group on the role resolved by AuthMiddleware.
// The three access levels stack as route groups: customer, staff-or-admin,
// admin-only.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		role, ok := roleInterface.(string)
		if !ok || !allowed[role] {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("access denied for role %v", roleInterface))
			c.Abort()
			return
		}

		c.Next()
	}
}
