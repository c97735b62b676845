package image

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

// Upload handles POST /images/upload (multipart). Fields: property_id, file,
// alt_text (optional), is_main (optional, "true" promotes the new image).
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

	altText := c.PostForm("alt_text")
	isMain := c.PostForm("is_main") == "true"

	img, err := h.service.Upload(c.Request.Context(), propertyID, fileHeader, altText, isMain)
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

	response.Success(c, http.StatusCreated, img)
}

// Delete handles DELETE /images/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "image not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "delete failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// SetMain handles PUT /properties/:id/images/:imageId/main.
func (h *Handler) SetMain(c *gin.Context) {
	propertyID := c.Param("id")
	imageID := c.Param("imageId")

	if err := h.service.SetMain(c.Request.Context(), propertyID, imageID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "image not found for this property")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to set main image")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}
