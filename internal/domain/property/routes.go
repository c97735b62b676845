package property

import "github.com/gin-gonic/gin"

// RegisterRoutes registers listing endpoints: reads are public, writes go on
// the admin-protected group.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/properties", h.Search)
		public.GET("/properties/:id", h.GetOne)
	}
	if admin != nil {
		admin.POST("/properties", h.Create)
		admin.PUT("/properties/:id", h.Update)
		admin.DELETE("/properties/:id", h.Delete)
		admin.PATCH("/properties", h.UpdateSortOrders)
	}
}
