package platform

import (
	"errors"
	"fmt"
)

// ErrorType categorizes resolution errors so callers can tell a broken
// probe from a broken environment.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota

	ErrorTypeProbeExecution // probe binary missing, non-zero exit, timeout
	ErrorTypeProbeOutput    // probe stdout is not the expected single-field object
	ErrorTypeEnvironment    // home directory or user profile cannot be determined
)

// ResolveError wraps resolution failures with type information. Probe
// failures are fatal to the whole evaluation: no retry, no fallback.
type ResolveError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements error unwrapping for error chains.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// IsResolveError checks if an error is a ResolveError.
func IsResolveError(err error) bool {
	var resErr *ResolveError
	return errors.As(err, &resErr)
}

// GetErrorType extracts the error type from a ResolveError.
func GetErrorType(err error) ErrorType {
	var resErr *ResolveError
	if errors.As(err, &resErr) {
		return resErr.Type
	}
	return ErrorTypeUnknown
}
