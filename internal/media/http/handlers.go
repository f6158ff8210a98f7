package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/carteapp/carte-backend/internal/media/service"
)

// Handler bundles the dependencies for media search endpoints.
type Handler struct {
	client *service.Client
	log    *zap.Logger
}

func New(client *service.Client, log *zap.Logger) *Handler {
	return &Handler{client: client, log: log}
}

func (h *Handler) search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "q is required"})
		return
	}

	items, err := h.client.Search(c.Request.Context(), query, c.Query("year_start"), c.Query("year_end"))
	if err != nil {
		// Remote failures are not retried; the UI shows a generic error.
		h.log.Warn("media search failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "media search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

func (h *Handler) show(c *gin.Context) {
	item, err := h.client.Lookup(c.Request.Context(), c.Param("media_id"))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "media item not found"})
			return
		}
		h.log.Warn("media lookup failed", zap.String("media_id", c.Param("media_id")), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "media lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": item})
}

// Register attaches media routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)
	rg.GET("/:media_id", h.show)
}
