package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/khanonymous/relay-backend/internal/common"
	"github.com/khanonymous/relay-backend/pkg/jwt"
)

const adminRole = "admin"

// AdminAuth guards the admin surface. Operators authenticate either with the
// static admin key in X-API-Key or with a bearer token carrying the admin role.
func AdminAuth(apiKey string, manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader("X-API-Key"); key != "" && apiKey != "" {
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
				c.Next()
				return
			}
			common.ErrorResponse(c, http.StatusUnauthorized, "invalid api key", common.ErrUnauthorized)
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "authorization required", common.ErrUnauthorized)
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			common.ErrorResponse(c, http.StatusUnauthorized, "bearer token required", common.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := manager.VerifyToken(token)
		if err != nil {
			common.ErrorResponse(c, http.StatusUnauthorized, "invalid token", err)
			c.Abort()
			return
		}
		if claims.Role != adminRole {
			common.ErrorResponse(c, http.StatusForbidden, "admin role required", common.ErrForbidden)
			c.Abort()
			return
		}

		c.Set("admin_user_id", claims.UserID)
		c.Next()
	}
}
