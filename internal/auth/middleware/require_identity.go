package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carteapp/carte-backend/internal/auth"
	"github.com/carteapp/carte-backend/internal/auth/service"
)

// RequireIdentity guards a route group behind a present identity. The
// bearer token is resolved against the session store; a token whose
// identity has been logged out is rejected like any other missing
// credential.
func RequireIdentity(svc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		id, err := svc.Current(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(auth.CtxUserID, id.ID)
		c.Set(auth.CtxIdentity, id)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
