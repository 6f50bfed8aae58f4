package user

import (
	"net/http"
	"time"

	"github.com/hnvivek/game-management-sub006/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "USER_NOT_FOUND", "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "EMAIL_TAKEN", "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "USER_INACTIVE", "user is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "EMAIL_REQUIRED", "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "PASSWORD_TOO_SHORT", "password must be at least 8 characters")
)

// User represents a platform account. Vendors are regular users that own a
// vendor profile; platform admins carry the IsSystemAdmin flag.
type User struct {
	ID            string // UUID
	Email         string
	PasswordHash  string
	DisplayName   *string
	CreatedAt     time.Time
	LastLoginAt   *time.Time
	IsActive      bool
	IsSystemAdmin bool
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string
	IsActive *bool // Pointer to distinguish between false and not set

	Page     int
	PageSize int
}
