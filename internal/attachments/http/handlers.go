package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carteapp/carte-backend/internal/attachments/blob"
	"github.com/carteapp/carte-backend/internal/attachments/service"
	"github.com/carteapp/carte-backend/internal/projects/domain"
)

// Handler bundles the dependencies for attachment HTTP endpoints.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// upload accepts a single multipart file for one section.
func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "opening uploaded file failed"})
		return
	}
	defer src.Close()

	att, err := h.svc.Upload(
		c.Request.Context(),
		c.Param("id"),
		c.Param("section"),
		file.Filename,
		file.Header.Get("Content-Type"),
		file.Size,
		src,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotPDF), errors.Is(err, service.ErrTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, domain.ErrUnknownSection):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown section"})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "attachment": att})
}

func (h *Handler) remove(c *gin.Context) {
	err := h.svc.Remove(c.Request.Context(), c.Param("id"), c.Param("section"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownSection):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown section"})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// serveBlob streams the stored bytes with the declared media type.
func (h *Handler) serveBlob(c *gin.Context) {
	b, err := h.svc.Blob(c.Param("blob_id"))
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "attachment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+b.Name+`"`)
	c.Data(http.StatusOK, b.ContentType, b.Data)
}
