package http

import "github.com/gin-gonic/gin"

// RegisterGuest attaches the routes reachable without an identity.
func (h *Handler) RegisterGuest(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
	rg.POST("/signup", h.signup)
}

// RegisterProtected attaches the routes that require an identity.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.POST("/logout", h.logout)
	rg.GET("/me", h.me)
}
