package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Schema errors
	ErrSchemaMissing ErrorCode = "SCHEMA_MISSING"
	ErrSchemaParse   ErrorCode = "SCHEMA_PARSE"
	ErrSchemaInvalid ErrorCode = "SCHEMA_INVALID"
	ErrBadPattern    ErrorCode = "BAD_PATTERN"
	ErrBadReference  ErrorCode = "BAD_REFERENCE"
	ErrBadChoice     ErrorCode = "BAD_CHOICE"

	// Resolution errors
	ErrTypeMismatch    ErrorCode = "TYPE_MISMATCH"
	ErrUnknownVariable ErrorCode = "UNKNOWN_VARIABLE"
	ErrUnreadableInput ErrorCode = "UNREADABLE_INPUT"

	// Rendering errors
	ErrRenderFailed ErrorCode = "RENDER_FAILED"

	// FileSystem errors
	ErrFileRead     ErrorCode = "FILE_READ"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrCopyFailed   ErrorCode = "COPY_FAILED"
	ErrCommitFailed ErrorCode = "COMMIT_FAILED"
	ErrDestConflict ErrorCode = "DEST_CONFLICT"

	// Acquisition errors
	ErrCloneFailed    ErrorCode = "CLONE_FAILED"
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"

	// Cleanup errors
	ErrCleanupFailed ErrorCode = "CLEANUP_FAILED"
)

// KickstartError represents a structured error with code and details
type KickstartError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *KickstartError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KickstartError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *KickstartError) Is(target error) bool {
	var targetErr *KickstartError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new KickstartError with the given code and message
func New(code ErrorCode, message string) *KickstartError {
	return &KickstartError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new KickstartError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *KickstartError {
	return &KickstartError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a KickstartError
func Wrap(err error, code ErrorCode, message string) *KickstartError {
	if err == nil {
		return nil
	}
	return &KickstartError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *KickstartError {
	if err == nil {
		return nil
	}
	return &KickstartError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *KickstartError) WithDetail(key string, value interface{}) *KickstartError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *KickstartError) WithDetails(details map[string]interface{}) *KickstartError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var kerr *KickstartError
	if errors.As(err, &kerr) {
		return kerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a KickstartError
func GetErrorCode(err error) ErrorCode {
	var kerr *KickstartError
	if errors.As(err, &kerr) {
		return kerr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a KickstartError
func GetErrorDetails(err error) map[string]interface{} {
	var kerr *KickstartError
	if errors.As(err, &kerr) {
		return kerr.Details
	}
	return nil
}
