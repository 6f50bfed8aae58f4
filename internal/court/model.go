package court

import (
	"net/http"
	"time"

	"github.com/hnvivek/game-management-sub006/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "RESOURCE_NOT_FOUND", "court not found")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "COURT_NAME_REQUIRED", "name cannot be empty")
	ErrInvalidVenue     = apperror.New(http.StatusBadRequest, "INVALID_VENUE", "invalid venue_id")
	ErrInvalidSport     = apperror.New(http.StatusBadRequest, "INVALID_SPORT", "invalid sport")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "PERMISSION_DENIED", "permission denied")
)

// ValidSports are the sports a court may be listed under.
var ValidSports = []string{
	"badminton", "basketball", "futsal", "padel", "pickleball",
	"squash", "tennis", "volleyball",
}

// Court is the bookable unit. Availability and bookings always reference a
// court, never a venue directly.
type Court struct {
	ID        string
	VenueID   string
	VenueName string
	Name      string
	Sport     string
	CreatedAt time.Time
}

// Filter defines parameters for listing courts.
type Filter struct {
	VenueID  string
	Sport    string
	Page     int
	PageSize int
}
