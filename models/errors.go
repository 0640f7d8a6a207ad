package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeLaunch       = "LAUNCH_FAILED"
	ErrCodeNavigation   = "NAVIGATION_FAILED"
	ErrCodeNoElement    = "ELEMENT_NOT_FOUND"
	ErrCodeNotFound     = "BALANCE_NOT_FOUND"
	ErrCodeTimeout      = "PORTAL_TIMEOUT"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeBusy         = "BROWSER_CAPACITY_EXHAUSTED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PipelineError is a fault raised by one stage of an attempt.
// Every PipelineError is retryable. A balance that cannot be found on a
// reachable page is not a PipelineError.
type PipelineError struct {
	Code    string
	Stage   string
	Message string
	Err     error // wrapped original error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError creates a new PipelineError.
func NewPipelineError(code, stage, message string, err error) *PipelineError {
	return &PipelineError{Code: code, Stage: stage, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *PipelineError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
