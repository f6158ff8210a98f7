package http

import "github.com/gin-gonic/gin"

// RegisterProjectSubroutes attaches the per-section upload/remove routes
// under the projects group.
func (h *Handler) RegisterProjectSubroutes(projects *gin.RouterGroup) {
	projects.POST("/:id/sections/:section/attachment", h.upload)
	projects.DELETE("/:id/sections/:section/attachment", h.remove)
}

// RegisterBlobRoutes attaches the blob download route.
func (h *Handler) RegisterBlobRoutes(rg *gin.RouterGroup) {
	rg.GET("/:blob_id", h.serveBlob)
}
