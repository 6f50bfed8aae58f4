package http

import (
	"time"

	"github.com/hnvivek/game-management-sub006/internal/pkg/request"
	"github.com/hnvivek/game-management-sub006/internal/vendors"
)

type CreateVendorRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

type UpdateVendorRequest struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
}

type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type ListVendorsRequest struct {
	request.ListParams
	Keyword  string `form:"keyword"`
	IsActive *bool  `form:"is_active"`
}

// VendorTag is the minimal vendor reference embedded in other responses.
type VendorTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type VendorResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	OwnerUserID  string    `json:"owner_user_id"`
	ContactEmail string    `json:"contact_email"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewVendorResponse(v *vendor.Vendor) VendorResponse {
	return VendorResponse{
		ID:           v.ID,
		Name:         v.Name,
		OwnerUserID:  v.OwnerUserID,
		ContactEmail: v.ContactEmail,
		IsActive:     v.IsActive,
		CreatedAt:    v.CreatedAt,
	}
}
