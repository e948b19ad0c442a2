package api

import "fmt"

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeInvalidInputShape    ErrorType = "invalid_input_shape"
	ErrorTypeInvalidElementType   ErrorType = "invalid_element_type"
	ErrorTypeUnsupportedAlgorithm ErrorType = "unsupported_algorithm"
	ErrorTypeInvalidRequest       ErrorType = "invalid_request"
	ErrorTypeUnauthorized         ErrorType = "unauthorized"
	ErrorTypeTooManyRequests      ErrorType = "too_many_requests"
	ErrorTypeServerError          ErrorType = "server_error"
)

// APIError represents a structured API error with type, code, param, and message.
type APIError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// IsClientError reports whether the error was caused by the request rather
// than by the server.
func (e *APIError) IsClientError() bool {
	return e.Type != ErrorTypeServerError
}

// ErrorResponse wraps an APIError for JSON serialization as the top-level error response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewInvalidInputShapeError reports that the array field is not a sequence.
func NewInvalidInputShapeError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidInputShape,
		Param:   "array",
		Message: message,
	}
}

// NewInvalidElementTypeError reports a non-numeric element at the given index.
func NewInvalidElementTypeError(index int, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidElementType,
		Param:   fmt.Sprintf("array[%d]", index),
		Message: message,
	}
}

// NewUnsupportedAlgorithmError reports an algorithm name outside the known set.
func NewUnsupportedAlgorithmError(name string) *APIError {
	return &APIError{
		Type:    ErrorTypeUnsupportedAlgorithm,
		Param:   "algorithm",
		Message: fmt.Sprintf("algorithm %q is not supported", name),
	}
}

// NewInvalidRequestError creates an APIError for malformed requests.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// NewUnauthorizedError creates an APIError for failed authentication.
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
	}
}

// NewTooManyRequestsError creates an APIError for rate limiting.
func NewTooManyRequestsError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeTooManyRequests,
		Message: message,
	}
}

// NewServerError creates an APIError for internal server errors.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}
