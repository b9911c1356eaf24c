package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khanonymous/relay-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
)

func setupAdminRouter(apiKey string, manager *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuth(apiKey, manager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAdminAuth_APIKey(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	r := setupAdminRouter("admin-key", manager)

	t.Run("valid key passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("X-API-Key", "admin-key")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("X-API-Key", "wrong")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminAuth_JWT(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	r := setupAdminRouter("admin-key", manager)

	t.Run("admin token passes", func(t *testing.T) {
		token, err := manager.GenerateToken(1, "admin")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-admin role forbidden", func(t *testing.T) {
		token, err := manager.GenerateToken(2, "viewer")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing credentials rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGatewayAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/events/ping", GatewayAuth("gw-key"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	t.Run("valid key passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/events/ping", nil)
		req.Header.Set("X-API-Key", "gw-key")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing key rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/events/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
