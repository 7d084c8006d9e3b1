package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nileplate/backend/internal/types"
)

// TokenValidator is an interface for validating session tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// SessionToucher marks a session as active. Optional; nil disables touching.
type SessionToucher interface {
	Touch(ctx context.Context, userID uuid.UUID)
}

const userIDKey = "user_id"

// RequireSession creates a middleware that validates session tokens and
// rejects requests without one.
func RequireSession(validator TokenValidator, toucher SessionToucher) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c, validator)
		if !ok {
			return
		}
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		if toucher != nil {
			toucher.Touch(c.Request.Context(), claims.UserID)
		}
		c.Next()
	}
}

// OptionalSession attaches the session identity when a token is present but
// lets anonymous requests through. A token that is present and invalid is
// still rejected.
func OptionalSession(validator TokenValidator, toucher SessionToucher) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c, validator)
		if !ok {
			return
		}
		if claims != nil {
			c.Set(userIDKey, claims.UserID)
			if toucher != nil {
				toucher.Touch(c.Request.Context(), claims.UserID)
			}
		}
		c.Next()
	}
}

// claimsFromHeader parses the Authorization header. Returns (nil, true) when
// no header is present; aborts and returns (nil, false) on a malformed or
// invalid one.
func claimsFromHeader(c *gin.Context, validator TokenValidator) (*types.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, true
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		c.Abort()
		return nil, false
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return nil, false
	}
	return claims, true
}

// UserIDFrom returns the session identity set by the auth middleware.
func UserIDFrom(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
