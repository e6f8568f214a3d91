package middleware

import (
	"net/http"
	"strings"

	"velora/utils"

	"github.com/gin-gonic/gin"
)

// ClientIDKey is the gin context key under which the authenticated client
// ID is stored.
const ClientIDKey = "clientID"

// JWTAuthMiddleware validates the bearer token and stores the client ID in
// the request context. It aborts unauthenticated requests.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		clientID, err := utils.ExtractClientID(tokenString)
		if err != nil || clientID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}

// OptionalAuthMiddleware extracts the client ID when a valid token is
// present but lets anonymous requests through. Browsing the catalogue and
// walking the wizard do not require an account; only confirmation does.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if clientID, err := utils.ExtractClientID(tokenString); err == nil && clientID != "" {
				c.Set(ClientIDKey, clientID)
			}
		}
		c.Next()
	}
}

// AuthenticatedClientID returns the client ID set by the auth middleware,
// or the empty string for anonymous requests.
func AuthenticatedClientID(c *gin.Context) string {
	if v, ok := c.Get(ClientIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
