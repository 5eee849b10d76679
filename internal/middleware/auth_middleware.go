package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mealtrack/backend-go/internal/database/service"
)

// UserIDKey is where the resolved caller identity lives in the Gin context.
const UserIDKey = "userID"

// AuthMiddleware validates JWTs locally against the signing secret. Used by
// the auth service itself, which holds the secret.
type AuthMiddleware struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(service service.AuthService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		service: service,
		logger:  logger,
	}
}

// RequireAuth validates the bearer token and sets userID in context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c, m.logger)
		if !ok {
			return
		}

		userID, err := m.service.ValidateAccessToken(token)
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Invalid token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		m.logger.Debug("✅ [Middleware] Token validated", "user_id", userID)

		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header, aborting
// the request with 401 when the header is missing or malformed.
func BearerToken(c *gin.Context, logger *slog.Logger) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		logger.Warn("⚠️ [Middleware] Missing Authorization header")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		c.Abort()
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		logger.Warn("⚠️ [Middleware] Invalid Authorization header format")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
		c.Abort()
		return "", false
	}

	return parts[1], true
}
