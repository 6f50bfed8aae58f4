package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hnvivek/game-management-sub006/internal/auth"
	"github.com/hnvivek/game-management-sub006/internal/conflict"
	"github.com/hnvivek/game-management-sub006/internal/pkg/response"
	"github.com/hnvivek/game-management-sub006/internal/user"
	"github.com/hnvivek/game-management-sub006/internal/venue"
)

type Handler struct {
	service     conflict.Service
	userService user.Service
}

func NewHandler(service conflict.Service, userService user.Service) *Handler {
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

// Create declares a blackout on a court.
func (h *Handler) Create(c *gin.Context) {
	courtID := c.Param("id")
	if _, err := uuid.Parse(courtID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CreateConflictRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), conflict.CreateRequest{
		CourtID:   courtID,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Reason:    body.Reason,
	}, h.actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewConflictResponse(created))
}

// ListByCourt lists conflicts for a court, optionally filtered by status.
func (h *Handler) ListByCourt(c *gin.Context) {
	courtID := c.Param("id")
	if _, err := uuid.Parse(courtID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var params ListConflictsRequest
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	conflicts, err := h.service.ListByCourt(c.Request.Context(), courtID, params.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ConflictResponse, len(conflicts))
	for i, cf := range conflicts {
		items[i] = NewConflictResponse(cf)
	}
	c.JSON(http.StatusOK, gin.H{"conflicts": items})
}

// Resolve marks a conflict resolved, releasing its slots.
func (h *Handler) Resolve(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	resolved, err := h.service.Resolve(c.Request.Context(), id, h.actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewConflictResponse(resolved))
}
