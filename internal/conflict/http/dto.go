package http

import (
	"time"

	"github.com/hnvivek/game-management-sub006/internal/conflict"
)

type CreateConflictRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    string    `json:"reason" binding:"required"`
}

type ListConflictsRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=active resolved"`
}

type ConflictResponse struct {
	ID        string    `json:"id"`
	CourtID   string    `json:"court_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func NewConflictResponse(c *conflict.Conflict) ConflictResponse {
	return ConflictResponse{
		ID:        c.ID,
		CourtID:   c.CourtID,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Reason:    c.Reason,
		Status:    c.Status,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}
