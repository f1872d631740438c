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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Dispatch errors
	ErrTargetPanic ErrorCode = "TARGET_PANIC"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Driver errors
	ErrDemoCheck     ErrorCode = "DEMO_CHECK"
	ErrBenchMismatch ErrorCode = "BENCH_MISMATCH"
	ErrBenchTimeout  ErrorCode = "BENCH_TIMEOUT"

	// Output errors
	ErrOutputFormat ErrorCode = "OUTPUT_FORMAT"
	ErrOutputWrite  ErrorCode = "OUTPUT_WRITE"
)

// DelegateError represents a structured error with code and details
type DelegateError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DelegateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DelegateError) Unwrap() error {
	return e.Wrapped
}

// Is reports a match when target is a DelegateError with the same code
func (e *DelegateError) Is(target error) bool {
	var targetErr *DelegateError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DelegateError with the given code and message
func New(code ErrorCode, message string) *DelegateError {
	return &DelegateError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DelegateError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DelegateError {
	return &DelegateError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DelegateError
func Wrap(err error, code ErrorCode, message string) *DelegateError {
	if err == nil {
		return nil
	}
	return &DelegateError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DelegateError {
	if err == nil {
		return nil
	}
	return &DelegateError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// FromPanic turns a value recovered from a panic into a DelegateError.
// Error values are kept as the wrapped cause so errors.Is still sees them.
func FromPanic(recovered interface{}) *DelegateError {
	if err, ok := recovered.(error); ok {
		return Wrap(err, ErrTargetPanic, "target panicked")
	}
	return Newf(ErrTargetPanic, "target panicked: %v", recovered)
}

// WithDetail adds a detail to the error
func (e *DelegateError) WithDetail(key string, value interface{}) *DelegateError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DelegateError) WithDetails(details map[string]interface{}) *DelegateError {
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
	var delegateErr *DelegateError
	if errors.As(err, &delegateErr) {
		return delegateErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DelegateError
func GetErrorCode(err error) ErrorCode {
	var delegateErr *DelegateError
	if errors.As(err, &delegateErr) {
		return delegateErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DelegateError
func GetErrorDetails(err error) map[string]interface{} {
	var delegateErr *DelegateError
	if errors.As(err, &delegateErr) {
		return delegateErr.Details
	}
	return nil
}
