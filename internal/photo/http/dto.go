package http

import (
	"time"

	"github.com/hnvivek/game-management-sub006/internal/photo"
)

type PhotoResponse struct {
	ID         string    `json:"id"`
	VenueID    string    `json:"venue_id"`
	URL        string    `json:"url"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewPhotoResponse(p *photo.VenuePhoto) PhotoResponse {
	return PhotoResponse{
		ID:         p.ID,
		VenueID:    p.VenueID,
		URL:        "/v1/photos/" + p.ID,
		UploadedBy: p.UploadedBy,
		CreatedAt:  p.CreatedAt,
	}
}
