package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authenticator := NewAuthenticator(testSigningKey)
	router.GET("/protected", authenticator.VerifyJWT(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"userID": ctx.GetUint(ContextKeyUserID),
			"role":   ctx.GetString(ContextKeyRole),
		})
	})
	router.GET("/admin", authenticator.VerifyJWT(), authenticator.RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	return router
}

func TestVerifyJWT(t *testing.T) {
	router := setupAuthRouter()

	t.Run("rejects a missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte("another-key"), 1, domain.RoleStudent, "")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts a valid token", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 42, domain.RoleStudent, "")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userID":42,"role":"student"}`, w.Body.String())
	})
}

func TestRequireAdmin(t *testing.T) {
	router := setupAuthRouter()

	t.Run("forbids non-admin roles", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 1, domain.RoleStudent, "")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admits admins", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 1, domain.RoleAdmin, "")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
