package errs

import (
	"net/http"

	"github.com/deppfellow/bookboard/internal/response"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code is the envelope error_code; callers pick one of the Code* constants
// (INVALID_JSON, VALIDATION_ERROR, INVALID_PARAMS, ...).
func NewBadRequestError(message string, code string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewInvalidJSONError is the 400 returned when a body is not valid JSON or has the wrong shape.
func NewInvalidJSONError(message string) *HTTPError {
	return NewBadRequestError(message, CodeInvalidJSON)
}

// NewValidationError is the 400 returned when a payload violates a field rule.
func NewValidationError(message string) *HTTPError {
	return NewBadRequestError(message, CodeValidation)
}

// NewOutOfRangeError is the 400 returned for a page past the last one.
//
// The envelope still carries an empty data list and the pagination block,
// so clients can recover the valid range from it.
func NewOutOfRangeError(message string, pagination response.Pagination) *HTTPError {
	return &HTTPError{
		Code:       CodeOutOfRange,
		Message:    message,
		Status:     http.StatusBadRequest,
		Data:       []any{},
		Pagination: &pagination,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeNotFound,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError used by the rate limiter.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeTooManyRequests,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 HTTPError.
//
// The message is generic on purpose: the real error is logged by the
// global error handler, never sent to the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    CodeServerError,
		Message: "Internal server error",
		Status:  http.StatusInternalServerError,
	}
}

// FromStatus builds an HTTPError for a bare status code (e.g. Echo's 405),
// deriving the code from the status text.
func FromStatus(status int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}
