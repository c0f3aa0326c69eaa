package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hail/internal/service"
)

// Context keys set by the auth middleware.
const (
	ContextAccountID = "accountID"
	ContextRole      = "accountRole"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	VerifyToken(token string) (*service.Claims, error)
}

// RequireAuth returns middleware that rejects requests without a valid
// bearer token for the given role. Identity and role checks happen at
// the boundary: handlers behind this middleware can trust the context
// values.
func RequireAuth(verifier TokenVerifier, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "wrong account type"})
			return
		}

		c.Set(ContextAccountID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, falling
// back to the token query parameter for websocket upgrades.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}

	return c.Query("token")
}
