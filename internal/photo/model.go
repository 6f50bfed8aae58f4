package photo

import (
	"net/http"
	"time"

	"github.com/hnvivek/game-management-sub006/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "PHOTO_NOT_FOUND", "photo not found")
	ErrVenueNotFound    = apperror.New(http.StatusNotFound, "VENUE_NOT_FOUND", "venue not found")
	ErrInvalidImage     = apperror.New(http.StatusBadRequest, "INVALID_IMAGE", "file is not a decodable image")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "PERMISSION_DENIED", "permission denied")
)

// VenuePhoto is one stored image attached to a venue. Path is relative to
// the storage root; uploads are normalized to JPEG before saving.
type VenuePhoto struct {
	ID         string
	VenueID    string
	Path       string
	UploadedBy string
	CreatedAt  time.Time
}
