package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, sysAdminMiddleware gin.HandlerFunc) {
	group := g.Group("/vendors")

	group.GET("", h.List)
	group.GET("/:id", h.Get)

	group.POST("", authMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, h.Update)
	group.PATCH("/:id/active", authMiddleware, sysAdminMiddleware, h.SetActive)
}
