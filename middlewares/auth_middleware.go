package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/putrawdn/restaurant-mgt/utils"
)

// AuthMiddleware resolves the bearer token to a (principal_id, role) pair and
// stores both in the request context. Handlers never consult any session
// state beyond these two values.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.PrincipalID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid principal in token"))
			c.Abort()
			return
		}

		c.Set("principal_id", claims.PrincipalID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
