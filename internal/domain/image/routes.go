package image

import "github.com/gin-gonic/gin"

// RegisterRoutes registers image endpoints. All of them mutate state and are
// registered on the admin-protected group.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/images/upload", h.Upload)
	admin.DELETE("/images/:id", h.Delete)
	admin.PUT("/properties/:id/images/:imageId/main", h.SetMain)
}
