package api

import (
	"net/http"
	"strings"

	"github.com/dmtran91/flybooking/internal/auth"
	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/gin-gonic/gin"
)

const claimsKey = "session_claims"

// AuthRequired rejects requests without a valid bearer token. When role is
// non-empty the token must carry that role.
func AuthRequired(secret string, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if role != "" && claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches session claims when a valid token is present but lets
// anonymous requests through. Guest checkout depends on this.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, secret); ok {
			c.Set(claimsKey, claims)
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, secret string) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, false
	}
	claims, err := auth.ParseValidate(secret, token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func sessionClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
