package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khanonymous/relay-backend/internal/common"
)

// GatewayAuth guards the event surface. The messaging gateway authenticates
// with a static key in the X-API-Key header.
func GatewayAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			common.ErrorResponse(c, http.StatusServiceUnavailable, "gateway key not configured", nil)
			c.Abort()
			return
		}

		provided := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			common.ErrorResponse(c, http.StatusUnauthorized, "invalid api key", common.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Next()
	}
}
