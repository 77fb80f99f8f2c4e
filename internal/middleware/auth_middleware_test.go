package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/postline/internal/app/models"
	"github.com/avelichko/postline/internal/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
	})
	authMiddleware := NewAuthMiddleware(jwtService, "/api/v1/auth/login")

	router := gin.New()
	router.GET("/protected", authMiddleware.RequireAuth(), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})
	router.GET("/open", authMiddleware.OptionalAuth(), func(c *gin.Context) {
		if id, ok := CurrentUserID(c); ok {
			c.JSON(http.StatusOK, gin.H{"userId": id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
	})
	return router, jwtService
}

func bearerFor(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)
	return "Bearer " + accessToken
}

func TestRequireAuth_MissingTokenRedirectsToLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected?page=2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	// The original URL survives the round trip through login
	assert.Equal(t, "/api/v1/auth/login?next=%2Fprotected%3Fpage%3D2", w.Header().Get("Location"))
}

func TestRequireAuth_InvalidTokenRedirectsToLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	router, jwtService := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", bearerFor(t, jwtService, &models.User{ID: 7, Username: "leo"}))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":7`)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/open", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestOptionalAuth_AuthenticatedSetsIdentity(t *testing.T) {
	router, jwtService := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", bearerFor(t, jwtService, &models.User{ID: 3, Username: "leo"}))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":3`)
}
