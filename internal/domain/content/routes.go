package content

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/pages", h.ListPages)
		public.GET("/pages/:slug", h.GetPage)
		public.GET("/services", h.ListServices)
	}
	if admin != nil {
		admin.POST("/pages", h.CreatePage)
		admin.PUT("/pages/:id", h.UpdatePage)
		admin.DELETE("/pages/:id", h.DeletePage)

		admin.POST("/sections", h.CreateSection)
		admin.PUT("/sections/:id", h.UpdateSection)
		admin.DELETE("/sections/:id", h.DeleteSection)

		admin.POST("/services", h.CreateService)
		admin.PUT("/services/:id", h.UpdateService)
		admin.DELETE("/services/:id", h.DeleteService)
	}
}
