package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the availability endpoint under /courts.
// The grid is public: customers browse availability before logging in.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/courts/:id/availability", h.DayGrid)
}
