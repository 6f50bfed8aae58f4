package http

import (
	"time"

	"github.com/hnvivek/game-management-sub006/internal/schedule"
)

type WindowBody struct {
	Weekday  int    `json:"weekday" binding:"min=0,max=6"`
	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`
	IsOpen   bool   `json:"is_open"`
}

type SetWeekRequest struct {
	Windows []WindowBody `json:"windows" binding:"required,min=1,dive"`
}

type WindowResponse struct {
	ID        string    `json:"id"`
	CourtID   string    `json:"court_id"`
	Weekday   int       `json:"weekday"`
	OpensAt   string    `json:"opens_at"`
	ClosesAt  string    `json:"closes_at"`
	IsOpen    bool      `json:"is_open"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewWindowResponse(w *schedule.OperatingWindow) WindowResponse {
	return WindowResponse{
		ID:        w.ID,
		CourtID:   w.CourtID,
		Weekday:   int(w.Weekday),
		OpensAt:   w.OpensAt,
		ClosesAt:  w.ClosesAt,
		IsOpen:    w.IsOpen,
		UpdatedAt: w.UpdatedAt,
	}
}
