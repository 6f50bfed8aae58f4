package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.POST("/courts/:id/bookings", authMiddleware, h.Create)
	g.GET("/courts/:id/bookings", authMiddleware, h.ListForCourt)
	g.GET("/bookings", authMiddleware, h.ListMine)
	g.GET("/bookings/:id", authMiddleware, h.GetByID)
	g.PATCH("/bookings/:id/status", authMiddleware, h.SetStatus)
	g.DELETE("/bookings/:id", authMiddleware, h.Cancel)
}
