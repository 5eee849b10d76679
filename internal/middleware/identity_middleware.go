package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealtrack/backend-go/internal/identity"
)

// IdentityMiddleware resolves the caller by delegating token verification
// to the auth service over HTTP. Used by the meal service, which never
// holds the signing secret. No handler runs before identity is definite.
type IdentityMiddleware struct {
	verifier identity.Verifier
	logger   *slog.Logger
}

// NewIdentityMiddleware creates a new identity middleware instance
func NewIdentityMiddleware(verifier identity.Verifier, logger *slog.Logger) *IdentityMiddleware {
	return &IdentityMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireIdentity verifies the bearer token remotely and sets userID in context
func (m *IdentityMiddleware) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c, m.logger)
		if !ok {
			return
		}

		userID, err := m.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Identity not resolved", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		m.logger.Debug("✅ [Middleware] Identity resolved", "user_id", userID)

		c.Next()
	}
}
