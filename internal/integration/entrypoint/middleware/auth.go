// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/application/adapter"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
	"github.com/fin-mate/backend/internal/integration/entrypoint/dto"
)

// userIDKey is the gin context key under which Authenticate stores the
// verified user's ID.
const userIDKey = "auth.userID"

// AuthMiddleware guards route groups behind a bearer JWT.
type AuthMiddleware struct {
	tokens adapter.TokenService
}

// NewAuthMiddleware creates the middleware around the given token service.
func NewAuthMiddleware(tokens adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate rejects requests that lack a valid "Bearer <token>"
// Authorization header and records the token's user ID on the context
// for the handlers behind it.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, string(domainerror.ErrCodeMissingToken), "Authorization header is required")
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			abortUnauthorized(c, string(domainerror.ErrCodeInvalidToken), "Invalid authorization header format")
			return
		}
		if token == "" {
			abortUnauthorized(c, string(domainerror.ErrCodeMissingToken), "Token is required")
			return
		}

		claims, err := m.tokens.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, string(domainerror.ErrCodeInvalidToken), "Invalid or expired token")
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
	c.Abort()
}

// GetUserIDFromContext returns the user ID stored by Authenticate.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
