package middleware

import (
	"errors"
	"net/http"
	"strings"

	"rollingpaper/internal/auth"
	"rollingpaper/internal/model"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key holding the signed-in *model.Identity.
const IdentityKey = "identity"

type TokenParser interface {
	ParseToken(tokenStr string) (*auth.Claims, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token.
func JWTAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenStr, ok := bearerToken(authHeader)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidClaims) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		id := claims.Identity()
		c.Set(IdentityKey, &id)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and lets everyone else through anonymously.
func OptionalAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := tokens.ParseToken(tokenStr); err == nil {
				id := claims.Identity()
				c.Set(IdentityKey, &id)
			}
		}
		c.Next()
	}
}

// CurrentIdentity returns the caller set by the auth middleware, or nil for anonymous requests.
func CurrentIdentity(c *gin.Context) *model.Identity {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	id, _ := v.(*model.Identity)
	return id
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
