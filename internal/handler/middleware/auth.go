package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"hummane-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxIdentityKey = "identity"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth rejects requests without a valid Bearer session token. A
// missing header and an invalid token are reported separately so clients
// can tell "not logged in" from "session expired".
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		ident, err := m.tokenValidator.Validate(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxIdentityKey, ident)
		c.Set("jwt_claims", map[string]any{
			"user_id": ident.UserID.String(),
		})
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present but does
// not abort on failure.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		ident, err := m.tokenValidator.Validate(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxIdentityKey, ident)
		c.Set("jwt_claims", map[string]any{
			"user_id": ident.UserID.String(),
		})
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func GetIdentity(c *gin.Context) (*usecase.Identity, bool) {
	value, exists := c.Get(ctxIdentityKey)
	if !exists {
		return nil, false
	}

	ident, ok := value.(*usecase.Identity)
	return ident, ok
}
