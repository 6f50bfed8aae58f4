package http

import (
	"time"

	"github.com/hnvivek/game-management-sub006/internal/pkg/request"
	vendorHttp "github.com/hnvivek/game-management-sub006/internal/vendors/http"
	"github.com/hnvivek/game-management-sub006/internal/venue"
)

type CreateVenueRequest struct {
	VendorID    string  `json:"vendor_id" binding:"required,uuid"`
	Name        string  `json:"name" binding:"required"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	Facility    string  `json:"facility"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
}

type UpdateVenueRequest struct {
	Name        *string  `json:"name"`
	Address     *string  `json:"address"`
	Description *string  `json:"description"`
	Facility    *string  `json:"facility"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
}

type ListVenuesRequest struct {
	request.ListParams
	VendorID string `form:"vendor_id" binding:"omitempty,uuid"`
	Keyword  string `form:"keyword"`
}

// VenueTag is the minimal venue reference embedded in other responses.
type VenueTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type VenueResponse struct {
	ID          string               `json:"id"`
	Vendor      vendorHttp.VendorTag `json:"vendor"`
	Name        string               `json:"name"`
	Address     string               `json:"address"`
	Description string               `json:"description"`
	Facility    string               `json:"facility"`
	Longitude   float64              `json:"longitude"`
	Latitude    float64              `json:"latitude"`
	CreatedAt   time.Time            `json:"created_at"`
}

func NewVenueResponse(v *venue.Venue) VenueResponse {
	return VenueResponse{
		ID:          v.ID,
		Vendor:      vendorHttp.VendorTag{ID: v.VendorID, Name: v.VendorName},
		Name:        v.Name,
		Address:     v.Address,
		Description: v.Description,
		Facility:    v.Facility,
		Longitude:   v.Longitude,
		Latitude:    v.Latitude,
		CreatedAt:   v.CreatedAt,
	}
}
