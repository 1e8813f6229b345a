package models

import "fmt"

// ErrorCode is a string type for consistent error codes.
type ErrorCode string

// Predefined error codes for the API.
const (
	// Generic
	ErrorCodeInternalServerError ErrorCode = "internal_server_error"
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeMethodNotAllowed    ErrorCode = "method_not_allowed"

	// Domain
	ErrorCodeNotFound   ErrorCode = "not_found"   // missing file or location
	ErrorCodeDataFormat ErrorCode = "data_format" // dataset schema violation
	ErrorCodeFit        ErrorCode = "fit_error"   // model cannot be fit
	ErrorCodeAlignment  ErrorCode = "alignment_error"
	ErrorCodeGeneration ErrorCode = "generation_error"
)

// APIError carries an error code, a human-readable message and the HTTP
// status to respond with.
type APIError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    any       `json:"details,omitempty"`
	StatusCode int       `json:"-"`
}

// Error makes APIError implement the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAPIError is a constructor for APIError.
func NewAPIError(code ErrorCode, message string, details any, statusCode int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		Details:    details,
		StatusCode: statusCode,
	}
}

// NotFoundError reports a missing file or location.
func NotFoundError(format string, args ...any) *APIError {
	return NewAPIError(ErrorCodeNotFound, fmt.Sprintf(format, args...), nil, 404)
}

// DataFormatError reports a dataset schema violation.
func DataFormatError(format string, args ...any) *APIError {
	return NewAPIError(ErrorCodeDataFormat, fmt.Sprintf(format, args...), nil, 422)
}

// FitError reports that a forecast model could not be fit.
func FitError(format string, args ...any) *APIError {
	return NewAPIError(ErrorCodeFit, fmt.Sprintf(format, args...), nil, 422)
}

// AlignmentError reports that two forecasts share no common timestamps.
func AlignmentError(format string, args ...any) *APIError {
	return NewAPIError(ErrorCodeAlignment, fmt.Sprintf(format, args...), nil, 422)
}

// GenerationError reports a text-generation endpoint failure.
func GenerationError(format string, args ...any) *APIError {
	return NewAPIError(ErrorCodeGeneration, fmt.Sprintf(format, args...), nil, 502)
}
