package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carteapp/carte-backend/internal/auth/domain"
)

const (
	CtxUserID   = "user_id"
	CtxIdentity = "identity"
)

// UserID extracts the authenticated user's ID from the Gin context.
// Set by RequireIdentity.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

// CurrentIdentity extracts the authenticated identity from the Gin
// context, or nil when the request is unauthenticated.
func CurrentIdentity(c *gin.Context) *domain.Identity {
	if v, ok := c.Get(CtxIdentity); ok {
		if id, ok := v.(*domain.Identity); ok {
			return id
		}
	}
	return nil
}
