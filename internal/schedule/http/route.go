package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/courts/:id/operating-windows", h.ListForCourt)
	g.PUT("/courts/:id/operating-windows", authMiddleware, h.SetWeek)
}
