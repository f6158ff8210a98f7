package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carteapp/carte-backend/internal/projects/domain"
	projectsvc "github.com/carteapp/carte-backend/internal/projects/service"
	"github.com/carteapp/carte-backend/internal/reports/service"
)

// Handler serves a project's printable report.
type Handler struct {
	projects *projectsvc.ProjectService
	renderer *service.Renderer
}

func New(projects *projectsvc.ProjectService, renderer *service.Renderer) *Handler {
	return &Handler{projects: projects, renderer: renderer}
}

// report renders the committed project as printable HTML. The client
// hands it to the browser's print facility.
func (h *Handler) report(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "rendering report failed"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// RegisterProjectSubroutes attaches the report route under the projects
// group.
func (h *Handler) RegisterProjectSubroutes(projects *gin.RouterGroup) {
	projects.GET("/:id/report", h.report)
}
