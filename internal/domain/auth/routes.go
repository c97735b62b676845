package auth

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.POST("/auth/login", h.Login)
}
