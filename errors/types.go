package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Repository and path errors
	ErrCodeNotAGitRepository ErrorCode = "NOT_A_GIT_REPOSITORY"
	ErrCodeTraversalRejected ErrorCode = "TRAVERSAL_REJECTED"
	ErrCodeOutsideRepository ErrorCode = "OUTSIDE_REPOSITORY"
	ErrCodeParentMissing     ErrorCode = "PARENT_MISSING"
	ErrCodeFilesystem        ErrorCode = "FILESYSTEM_ERROR"

	// Git errors
	ErrCodeGitConfig ErrorCode = "GIT_CONFIG_ERROR"

	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Command execution errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"
	ErrCodeHookFailed      ErrorCode = "HOOK_FAILED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// detailExitCode is the Details key carrying a process exit status.
const detailExitCode = "exitCode"

// SamoyedError represents a structured error with context
type SamoyedError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *SamoyedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SamoyedError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *SamoyedError) WithDetail(key string, value interface{}) *SamoyedError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *SamoyedError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new SamoyedError
func New(code ErrorCode, message string) *SamoyedError {
	return &SamoyedError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SamoyedError
func Wrap(err error, code ErrorCode, message string) *SamoyedError {
	return &SamoyedError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// AsSamoyedError returns the first SamoyedError in err's chain.
func AsSamoyedError(err error) (*SamoyedError, bool) {
	for err != nil {
		if se, ok := err.(*SamoyedError); ok {
			return se, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}

// Is checks if an error is a specific SamoyedError code
func Is(err error, code ErrorCode) bool {
	se, ok := AsSamoyedError(err)
	return ok && se.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	se, ok := AsSamoyedError(err)
	if !ok {
		return ""
	}
	return se.Code
}

// ExitCode maps an error to the process exit status samoyed should use.
// A nil error is 0. Errors that carry an exit status (hook failures,
// missing commands) report it; every other error is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	se, ok := AsSamoyedError(err)
	if !ok {
		return 1
	}
	if code, ok := se.Details[detailExitCode].(int); ok && code != 0 {
		return code
	}
	return 1
}
