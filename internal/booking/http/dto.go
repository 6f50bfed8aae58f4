package http

import (
	"time"

	"github.com/hnvivek/game-management-sub006/internal/booking"
)

type CreateBookingRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Notes     string `json:"notes" binding:"omitempty,max=500"`
}

type ListBookingsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed no_show"`
	Page     uint64 `form:"page,default=1" binding:"min=1"`
	PageSize uint64 `form:"page_size,default=20" binding:"min=1,max=100"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed no_show"`
}

type BookingResponse struct {
	ID        string    `json:"id"`
	CourtID   string    `json:"court_id"`
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		CourtID:   b.CourtID,
		UserID:    b.UserID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
