package schedule

import (
	"net/http"
	"time"

	"github.com/hnvivek/game-management-sub006/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "WINDOW_NOT_FOUND", "operating window not found")
	ErrInvalidWindow    = apperror.New(http.StatusBadRequest, "INVALID_OPERATING_WINDOW", "opens_at must be a valid HH:MM time before closes_at")
	ErrInvalidWeekday   = apperror.New(http.StatusBadRequest, "INVALID_WEEKDAY", "weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrCourtNotFound    = apperror.New(http.StatusNotFound, "RESOURCE_NOT_FOUND", "court not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "PERMISSION_DENIED", "permission denied")
)

// OperatingWindow is the open interval for one court on one weekday.
// At most one window exists per (court, weekday); the booking flow treats
// it as read-only configuration.
type OperatingWindow struct {
	ID        string
	CourtID   string
	Weekday   time.Weekday
	OpensAt   string // "HH:MM" wall-clock
	ClosesAt  string // "HH:MM" wall-clock
	IsOpen    bool
	UpdatedAt time.Time
}
