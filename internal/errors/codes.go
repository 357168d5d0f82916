package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for AI operations.
type ErrorCode string

const (
	// ErrCodeUnauthorized indicates authentication failure against the provider.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeSessionOpenFailed indicates the provider refused to open a session.
	ErrCodeSessionOpenFailed ErrorCode = "SESSION_OPEN_FAILED"
	// ErrCodeQueryFailed indicates the provider rejected a query before streaming began.
	ErrCodeQueryFailed ErrorCode = "QUERY_FAILED"
	// ErrCodeStreamFailed indicates the response stream errored mid-read.
	ErrCodeStreamFailed ErrorCode = "STREAM_FAILED"
	// ErrCodeMediaUploadFailed indicates a media upload failure.
	ErrCodeMediaUploadFailed ErrorCode = "MEDIA_UPLOAD_FAILED"
	// ErrCodeAgentExecutionFailed indicates agent execution failure.
	ErrCodeAgentExecutionFailed ErrorCode = "AGENT_EXECUTION_FAILED"
	// ErrCodeContextCanceled indicates the operation was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// AIError represents a structured error for AI operations.
type AIError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AIError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AIError) WithContext(key string, value interface{}) *AIError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new AIError.
func New(code ErrorCode, message string) *AIError {
	return &AIError{Code: code, Message: message}
}

// Wrap creates a new AIError wrapping a cause.
func Wrap(code ErrorCode, message string, cause error) *AIError {
	return &AIError{Code: code, Message: message, Cause: cause}
}
