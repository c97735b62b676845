package document

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"realty/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload handles POST /documents/upload (multipart). Fields: property_id, file.
func (h *Handler) Upload(c *gin.Context) {
	propertyID := c.PostForm("property_id")
	if propertyID == "" {
		response.Error(c, http.StatusBadRequest, "property_id is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "no file provided")
		return
	}

	doc, err := h.service.Upload(c.Request.Context(), propertyID, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound):
			response.Error(c, http.StatusNotFound, "property not found")
		case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "upload failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, doc)
}

// ListByProperty handles GET /properties/:id/documents.
func (h *Handler) ListByProperty(c *gin.Context) {
	docs, err := h.service.ListByProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list documents")
		return
	}
	response.Success(c, http.StatusOK, docs)
}

// Delete handles DELETE /documents/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "document not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "delete failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
