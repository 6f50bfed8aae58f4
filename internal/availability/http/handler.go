package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hnvivek/game-management-sub006/internal/availability"
	"github.com/hnvivek/game-management-sub006/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// DayGrid returns the per-slot availability for a court on one date.
func (h *Handler) DayGrid(c *gin.Context) {
	courtID := c.Param("id")
	if _, err := uuid.Parse(courtID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var q DayGridRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	// With a proposed interval the endpoint answers for that interval only.
	if q.StartTime != "" || q.EndTime != "" {
		check, err := h.service.CheckInterval(c.Request.Context(), courtID, q.Date, q.StartTime, q.EndTime)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, NewCheckResponse(check))
		return
	}

	grid, err := h.service.DayGrid(c.Request.Context(), courtID, q.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDayGridResponse(grid))
}
