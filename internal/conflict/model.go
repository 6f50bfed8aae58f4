package conflict

import (
	"net/http"
	"time"

	"github.com/hnvivek/game-management-sub006/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "CONFLICT_NOT_FOUND", "conflict not found")
	ErrCourtNotFound    = apperror.New(http.StatusNotFound, "RESOURCE_NOT_FOUND", "court not found")
	ErrInvalidInterval  = apperror.New(http.StatusBadRequest, "INVALID_INTERVAL", "end_time must be after start_time")
	ErrAlreadyResolved  = apperror.New(http.StatusConflict, "CONFLICT_ALREADY_RESOLVED", "conflict is already resolved")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "PERMISSION_DENIED", "permission denied")
)

const (
	StatusActive   = "active"
	StatusResolved = "resolved"
)

// Conflict is a vendor- or admin-declared blackout on a court. While active
// it blocks the overlapped slots exactly like a booking would; resolving it
// releases them without deleting the record.
type Conflict struct {
	ID        string
	CourtID   string
	StartTime time.Time
	EndTime   time.Time
	Reason    string
	Status    string
	CreatedBy string
	CreatedAt time.Time
}
