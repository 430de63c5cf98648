package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.user_id"

// TokenFromRequest extracts the bearer token from the Authorization header,
// falling back to the "token" query parameter (standard for websocket
// clients that cannot set headers).
func TokenFromRequest(r *http.Request) string {
	token := r.Header.Get("Authorization")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "Bearer ") {
		token = token[len("Bearer "):]
	}
	return token
}

// Middleware authenticates REST requests and installs the resolved identity
// into the gin context. Requests without a valid token are rejected.
func Middleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		userID, err := m.ResolveIdentity(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(identityKey, userID)
		c.Next()
	}
}

// IdentityFromContext returns the authenticated user id set by Middleware,
// or "" when the request was not authenticated.
func IdentityFromContext(c *gin.Context) string {
	v, ok := c.Get(identityKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
