package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/courts/:id/conflicts", authMiddleware, h.ListByCourt)
	g.POST("/courts/:id/conflicts", authMiddleware, h.Create)
	g.PATCH("/conflicts/:id/resolve", authMiddleware, h.Resolve)
}
