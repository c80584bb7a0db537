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
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Filesystem errors
	ErrMissingFile   ErrorCode = "MISSING_FILE"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"

	// Reconciler errors
	ErrInvalidSiteType ErrorCode = "INVALID_SITE_TYPE"

	// External tool errors
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"
	ErrGitClone      ErrorCode = "GIT_CLONE"
)

// ShellupError represents a structured error with code and details
type ShellupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ShellupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ShellupError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ShellupError) Is(target error) bool {
	var targetErr *ShellupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ShellupError with the given code and message
func New(code ErrorCode, message string) *ShellupError {
	return &ShellupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ShellupError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ShellupError {
	return &ShellupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ShellupError
func Wrap(err error, code ErrorCode, message string) *ShellupError {
	if err == nil {
		return nil
	}
	return &ShellupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ShellupError {
	if err == nil {
		return nil
	}
	return &ShellupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ShellupError) WithDetail(key string, value interface{}) *ShellupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var shellupErr *ShellupError
	if errors.As(err, &shellupErr) {
		return shellupErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ShellupError
func GetErrorCode(err error) ErrorCode {
	var shellupErr *ShellupError
	if errors.As(err, &shellupErr) {
		return shellupErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ShellupError
func GetErrorDetails(err error) map[string]interface{} {
	var shellupErr *ShellupError
	if errors.As(err, &shellupErr) {
		return shellupErr.Details
	}
	return nil
}
