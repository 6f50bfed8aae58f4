package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hnvivek/game-management-sub006/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error         string `json:"error"`
	Code          string `json:"code,omitempty"`
	ConflictingID string `json:"conflicting_id,omitempty"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code and code.
// Unknown errors default to 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, ErrorResponse{Error: appErr.Message, Code: appErr.Code})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// Conflict sends a 409 response carrying the id of the blocking booking or
// conflict, so the caller can render a precise message.
func Conflict(c *gin.Context, message, conflictingID string) {
	c.JSON(http.StatusConflict, ErrorResponse{
		Error:         message,
		Code:          "SLOT_CONFLICT",
		ConflictingID: conflictingID,
	})
}
