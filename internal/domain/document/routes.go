package document

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/properties/:id/documents", h.ListByProperty)
	}
	if admin != nil {
		admin.POST("/documents/upload", h.Upload)
		admin.DELETE("/documents/:id", h.Delete)
	}
}
