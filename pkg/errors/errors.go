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

	// Rule errors
	ErrInvalidPattern ErrorCode = "INVALID_PATTERN"
	ErrInvalidLevel   ErrorCode = "INVALID_LEVEL"

	// Sink errors
	ErrInvalidDestination ErrorCode = "INVALID_DESTINATION"
	ErrMissingStream      ErrorCode = "MISSING_STREAM"
	ErrFileCreate         ErrorCode = "FILE_CREATE"
	ErrFileWrite          ErrorCode = "FILE_WRITE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrConfigWatch ErrorCode = "CONFIG_WATCH"
)

// ModlogError represents a structured error with code and details
type ModlogError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModlogError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModlogError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModlogError) Is(target error) bool {
	var targetErr *ModlogError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

func newError(code ErrorCode, message string, wrapped error) *ModlogError {
	return &ModlogError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}

// New creates a ModlogError with the given code and message
func New(code ErrorCode, message string) *ModlogError {
	return newError(code, message, nil)
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModlogError {
	return newError(code, fmt.Sprintf(format, args...), nil)
}

// Wrap annotates err with a code and message. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *ModlogError {
	if err == nil {
		return nil
	}
	return newError(code, message, err)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModlogError {
	if err == nil {
		return nil
	}
	return newError(code, fmt.Sprintf(format, args...), err)
}

// WithDetail attaches a key/value to the error and returns it
func (e *ModlogError) WithDetail(key string, value interface{}) *ModlogError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode reports whether the outermost ModlogError in err's chain has code
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// GetErrorCode returns the code of the outermost ModlogError in err's chain,
// or ErrUnknown when there is none
func GetErrorCode(err error) ErrorCode {
	var modErr *ModlogError
	if errors.As(err, &modErr) {
		return modErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails merges the details of every ModlogError in err's chain.
// Outer errors win on duplicate keys. It returns nil when the chain holds no
// ModlogError.
func GetErrorDetails(err error) map[string]interface{} {
	var details map[string]interface{}
	for err != nil {
		if modErr, ok := err.(*ModlogError); ok {
			if details == nil {
				details = make(map[string]interface{})
			}
			for k, v := range modErr.Details {
				if _, seen := details[k]; !seen {
					details[k] = v
				}
			}
		}
		err = errors.Unwrap(err)
	}
	return details
}
