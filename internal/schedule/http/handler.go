package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hnvivek/game-management-sub006/internal/auth"
	"github.com/hnvivek/game-management-sub006/internal/pkg/response"
	"github.com/hnvivek/game-management-sub006/internal/schedule"
	"github.com/hnvivek/game-management-sub006/internal/user"
	"github.com/hnvivek/game-management-sub006/internal/venue"
)

type Handler struct {
	service     schedule.Service
	userService user.Service
}

func NewHandler(service schedule.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

func (h *Handler) actor(c *gin.Context) venue.Actor {
	userID := auth.GetUserID(c)
	isSysAdmin := false
	if userID != "" {
		if u, err := h.userService.GetByID(c.Request.Context(), userID); err == nil {
			isSysAdmin = u.IsSystemAdmin
		}
	}
	return venue.Actor{UserID: userID, IsSysAdmin: isSysAdmin}
}

// SetWeek replaces the submitted weekday windows for a court.
func (h *Handler) SetWeek(c *gin.Context) {
	courtID := c.Param("id")
	if _, err := uuid.Parse(courtID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SetWeekRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	inputs := make([]schedule.WindowInput, len(body.Windows))
	for i, w := range body.Windows {
		inputs[i] = schedule.WindowInput{
			Weekday:  time.Weekday(w.Weekday),
			OpensAt:  w.OpensAt,
			ClosesAt: w.ClosesAt,
			IsOpen:   w.IsOpen,
		}
	}

	windows, err := h.service.SetWeek(c.Request.Context(), courtID, inputs, h.actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]WindowResponse, len(windows))
	for i, w := range windows {
		items[i] = NewWindowResponse(w)
	}

	c.JSON(http.StatusOK, gin.H{"windows": items})
}

// ListForCourt returns the weekly operating windows for a court.
func (h *Handler) ListForCourt(c *gin.Context) {
	courtID := c.Param("id")
	if _, err := uuid.Parse(courtID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	windows, err := h.service.ListForCourt(c.Request.Context(), courtID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]WindowResponse, len(windows))
	for i, w := range windows {
		items[i] = NewWindowResponse(w)
	}

	c.JSON(http.StatusOK, gin.H{"windows": items})
}
