package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(am *AuthMiddleware) *gin.Engine {
	router := gin.New()
	router.GET("/protected", am.RequireAuth(), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return router
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	am := NewAuthMiddleware("test-secret", time.Hour)
	token, err := am.IssueToken("user-1", "sme@example.com")
	require.NoError(t, err)

	router := protectedRouter(am)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMiddleware_BearerCaseInsensitive(t *testing.T) {
	am := NewAuthMiddleware("test-secret", time.Hour)
	token, err := am.IssueToken("user-1", "sme@example.com")
	require.NoError(t, err)

	router := protectedRouter(am)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	am := NewAuthMiddleware("test-secret", time.Hour)
	other := NewAuthMiddleware("other-secret", time.Hour)
	expired := NewAuthMiddleware("test-secret", -time.Hour)

	otherToken, err := other.IssueToken("user-1", "sme@example.com")
	require.NoError(t, err)
	expiredToken, err := expired.IssueToken("user-1", "sme@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Bearer"},
		{"not a token", "Bearer garbage"},
		{"wrong signing key", "Bearer " + otherToken},
		{"expired token", "Bearer " + expiredToken},
	}

	router := protectedRouter(am)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestUserID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := UserID(c)
	assert.False(t, ok)
}
