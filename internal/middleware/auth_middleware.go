package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/avelichko/postline/internal/pkg/auth"
)

// ContextUserIDKey is the gin context key holding the authenticated user ID
const ContextUserIDKey = "userID"

// ContextUsernameKey is the gin context key holding the authenticated username
const ContextUsernameKey = "username"

// AuthMiddleware for authentication
type AuthMiddleware struct {
	jwtService *auth.JWTService
	loginPath  string
}

// NewAuthMiddleware creates a new AuthMiddleware. loginPath is where
// unauthenticated requests to protected endpoints get redirected.
func NewAuthMiddleware(jwtService *auth.JWTService, loginPath string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		loginPath:  loginPath,
	}
}

// RequireAuth validates the bearer token on protected endpoints. A missing
// or invalid token does not produce a 401: the client is redirected to the
// login endpoint with the original URL preserved in the next parameter, so
// it can resume after authenticating.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			m.redirectToLogin(c)
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// OptionalAuth populates the user identity when a valid bearer token is
// present but lets anonymous requests through. Public endpoints that vary
// per viewer (the profile's following flag) use it.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := m.authenticate(c); ok {
			c.Set(ContextUserIDKey, claims.UserID)
			c.Set(ContextUsernameKey, claims.Username)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		return nil, false
	}

	claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func (m *AuthMiddleware) redirectToLogin(c *gin.Context) {
	target := m.loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

// CurrentUserID returns the authenticated user ID from the context.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
