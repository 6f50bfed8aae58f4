package http

import (
	"time"

	"github.com/hnvivek/game-management-sub006/internal/court"
	"github.com/hnvivek/game-management-sub006/internal/pkg/request"
	venueHttp "github.com/hnvivek/game-management-sub006/internal/venue/http"
)

type CreateCourtRequest struct {
	VenueID string `json:"venue_id" binding:"required,uuid"`
	Name    string `json:"name" binding:"required"`
	Sport   string `json:"sport" binding:"required"`
}

type UpdateCourtRequest struct {
	Name  *string `json:"name"`
	Sport *string `json:"sport"`
}

type ListCourtsRequest struct {
	request.ListParams
	VenueID string `form:"venue_id" binding:"omitempty,uuid"`
	Sport   string `form:"sport"`
}

// CourtTag is the minimal court reference embedded in other responses.
type CourtTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CourtResponse struct {
	ID        string             `json:"id"`
	Venue     venueHttp.VenueTag `json:"venue"`
	Name      string             `json:"name"`
	Sport     string             `json:"sport"`
	CreatedAt time.Time          `json:"created_at"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	return CourtResponse{
		ID:        c.ID,
		Venue:     venueHttp.VenueTag{ID: c.VenueID, Name: c.VenueName},
		Name:      c.Name,
		Sport:     c.Sport,
		CreatedAt: c.CreatedAt,
	}
}
