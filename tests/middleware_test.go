package tests

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"lifedrop/internal/auth"
	"lifedrop/internal/middleware"
)

func protectedRouter() *gin.Engine {
	router := setupTestRouter()
	router.GET("/protected", middleware.AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		isAdmin, _ := c.Get("is_admin")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "is_admin": isAdmin})
	})
	router.GET("/admin-only", middleware.AuthMiddleware(), middleware.AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func performWithToken(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET_KEY", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET_KEY")

	router := protectedRouter()

	t.Run("valid token passes claims through", func(t *testing.T) {
		token, err := auth.GenerateToken(7, false)
		assert.NoError(t, err)

		w := performWithToken(router, "/protected", token)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		assert.Equal(t, float64(7), response["user_id"])
		assert.Equal(t, false, response["is_admin"])
	})

	t.Run("missing header", func(t *testing.T) {
		w := performWithToken(router, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := performWithToken(router, "/protected", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header format", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	os.Setenv("JWT_SECRET_KEY", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET_KEY")

	router := protectedRouter()

	t.Run("admin token is allowed", func(t *testing.T) {
		token, err := auth.GenerateToken(1, true)
		assert.NoError(t, err)

		w := performWithToken(router, "/admin-only", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("donor token is rejected", func(t *testing.T) {
		token, err := auth.GenerateToken(7, false)
		assert.NoError(t, err)

		w := performWithToken(router, "/admin-only", token)

		assert.Equal(t, http.StatusForbidden, w.Code)
		response := decodeResponse(t, w)
		assert.Contains(t, response["message"], "Admin access only")
	})
}
