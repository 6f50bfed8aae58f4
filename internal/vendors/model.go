package vendor

import (
	"net/http"
	"time"

	"github.com/hnvivek/game-management-sub006/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "VENDOR_NOT_FOUND", "vendor not found")
	ErrNameTaken        = apperror.New(http.StatusConflict, "VENDOR_NAME_TAKEN", "vendor name already in use")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "VENDOR_NAME_REQUIRED", "name cannot be empty")
	ErrAlreadyVendor    = apperror.New(http.StatusConflict, "ALREADY_VENDOR", "user already owns a vendor profile")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "PERMISSION_DENIED", "permission denied")
)

// Vendor is a business profile that owns venues. Each vendor belongs to one
// platform user; the platform admin can suspend a vendor, which hides its
// venues from customers.
type Vendor struct {
	ID           string
	Name         string
	OwnerUserID  string
	ContactEmail string
	IsActive     bool
	CreatedAt    time.Time
}

// Filter defines parameters for listing vendors.
type Filter struct {
	Keyword  string
	IsActive *bool
	Page     int
	PageSize int
}
