package middleware

import (
	"net/http"
	"strings"

	"yamdb/internal/entity"
	"yamdb/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// UserLoader resolves the authenticated identity from storage so role and
// staff/superuser flags are always current, not whatever the token froze.
type UserLoader interface {
	GetByID(id string) (*entity.User, error)
}

// AuthMiddleware requires a valid bearer token and puts the loaded user
// into the request context.
func AuthMiddleware(jwtService *jwt.Service, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authenticate(c, jwtService, users)
		if !ok {
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware loads the user when credentials are present but
// lets anonymous requests through; read-only endpoints use it.
func OptionalAuthMiddleware(jwtService *jwt.Service, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, jwtService, users); !ok {
			return
		}
		c.Next()
	}
}

// authenticate returns (nil, true) for anonymous requests and (user, true)
// for valid credentials; it aborts with 401 and returns ok=false for bad
// credentials.
func authenticate(c *gin.Context, jwtService *jwt.Service, users UserLoader) (*entity.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, true
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
		c.Abort()
		return nil, false
	}

	claims, err := jwtService.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		c.Abort()
		return nil, false
	}

	user, err := users.GetByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		c.Abort()
		return nil, false
	}

	c.Set(userContextKey, user)
	c.Set("user_id", user.ID)
	return user, true
}

// CurrentUser returns the authenticated user from the context, or nil for
// anonymous requests.
func CurrentUser(c *gin.Context) *entity.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*entity.User)
	if !ok {
		return nil
	}
	return user
}
