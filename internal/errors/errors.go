// Package errors provides custom error types for the asset database API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrStorageFailure = &AppError{Code: "STORAGE_FAILURE", Message: "An internal storage error occurred", StatusCode: http.StatusInternalServerError}
)

// Asset errors.
var (
	ErrInvalidAssetType = &AppError{Code: "INVALID_ASSET_TYPE", Message: "Invalid asset type", StatusCode: http.StatusBadRequest}
	ErrMissingField     = &AppError{Code: "MISSING_FIELD", Message: "Required field is missing", StatusCode: http.StatusBadRequest}
	ErrDuplicateAsset   = &AppError{Code: "DUPLICATE_ASSET", Message: "Asset already exists for this ticker and type", StatusCode: http.StatusConflict}
	ErrAssetNotFound    = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrImmutableField   = &AppError{Code: "IMMUTABLE_FIELD", Message: "Field cannot be changed", StatusCode: http.StatusBadRequest}
)

// Detail errors.
var (
	ErrDetailsAlreadyExist = &AppError{Code: "DETAILS_ALREADY_EXIST", Message: "Details already exist for this asset", StatusCode: http.StatusConflict}
	ErrDetailsNotFound     = &AppError{Code: "DETAILS_NOT_FOUND", Message: "Asset details not found", StatusCode: http.StatusNotFound}
)

// Bar data errors.
var (
	ErrDuplicateBar      = &AppError{Code: "DUPLICATE_BAR", Message: "Duplicate date for this asset in bar data", StatusCode: http.StatusConflict}
	ErrBarNotFound       = &AppError{Code: "BAR_NOT_FOUND", Message: "Bar data not found", StatusCode: http.StatusNotFound}
	ErrInvalidDateFormat = &AppError{Code: "INVALID_DATE_FORMAT", Message: "'date' must be provided in YYYY-MM-DD format", StatusCode: http.StatusBadRequest}
)

// Edit errors.
var (
	ErrNoEdits          = &AppError{Code: "NO_EDITS", Message: "No edits provided", StatusCode: http.StatusBadRequest}
	ErrInvalidAttribute = &AppError{Code: "INVALID_ATTRIBUTE", Message: "Unknown attribute", StatusCode: http.StatusBadRequest}
)
