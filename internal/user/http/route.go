package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, sysAdminMiddleware gin.HandlerFunc) {
	g.POST("/users", h.Register)
	g.POST("/auth/login", h.Login)

	g.GET("/users/me", authMiddleware, h.Me)

	admin := g.Group("/users", authMiddleware, sysAdminMiddleware)
	{
		admin.GET("", h.List)
		admin.PATCH("/:id/active", h.SetActive)
	}
}
