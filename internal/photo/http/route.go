package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/venues/:id/photos", h.ListByVenue)
	g.POST("/venues/:id/photos", authMiddleware, h.Upload)
	g.GET("/photos/:id", h.Serve)
	g.DELETE("/photos/:id", authMiddleware, h.Delete)
}
