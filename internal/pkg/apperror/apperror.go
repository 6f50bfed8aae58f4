package apperror

// AppError carries an HTTP status, a machine-readable code and a user-facing
// message. Handlers map it straight to the JSON error body.
type AppError struct {
	Status  int    // HTTP status code (e.g., 400, 404, 409)
	Code    string // Machine-readable code (e.g., "SLOT_CONFLICT")
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status, code and message.
func New(status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
