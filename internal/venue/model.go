package venue

import (
	"net/http"
	"time"

	"github.com/hnvivek/game-management-sub006/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "VENUE_NOT_FOUND", "venue not found")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "VENUE_NAME_REQUIRED", "name cannot be empty")
	ErrInvalidVendor    = apperror.New(http.StatusBadRequest, "INVALID_VENDOR", "invalid vendor_id")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "PERMISSION_DENIED", "permission denied")
)

// Venue is a physical sports facility listed by a vendor. Courts inside the
// venue are the actual bookable resources.
type Venue struct {
	ID          string
	VendorID    string
	VendorName  string
	Name        string
	Address     string
	Description string
	Facility    string
	Longitude   float64
	Latitude    float64
	CreatedAt   time.Time
}

// Filter defines parameters for listing venues.
type Filter struct {
	VendorID string
	Keyword  string // Search in Name or Address
	Page     int
	PageSize int
}
