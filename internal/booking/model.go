package booking

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hnvivek/game-management-sub006/internal/availability"
	"github.com/hnvivek/game-management-sub006/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrCourtNotFound     = apperror.New(http.StatusNotFound, "RESOURCE_NOT_FOUND", "court not found")
	ErrInvalidDate       = apperror.New(http.StatusBadRequest, "INVALID_DATE", "date must be in YYYY-MM-DD format")
	ErrInvalidInterval   = apperror.New(http.StatusBadRequest, "INVALID_INTERVAL", "end_time must be after start_time")
	ErrResourceClosed    = apperror.New(http.StatusConflict, "RESOURCE_CLOSED", "the court is closed during the requested interval")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "INVALID_STATUS_TRANSITION", "the booking status does not allow this change")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "PERMISSION_DENIED", "permission denied")

	// ErrTransient marks a transaction that failed due to concurrent access
	// and is safe to retry. It never reaches a client.
	ErrTransient = errors.New("transient transaction failure")
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no_show"
)

// BlockingStatuses are the statuses that occupy a slot. Everything else
// releases it.
var BlockingStatuses = []string{StatusPending, StatusConfirmed}

// ConflictError reports that the requested interval is already taken. It
// carries the winning record so clients can show what they collided with.
type ConflictError struct {
	Kind          availability.BlockKind
	ConflictingID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot already blocked by %s %s", e.Kind, e.ConflictingID)
}

type Booking struct {
	ID        string
	CourtID   string
	UserID    string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
