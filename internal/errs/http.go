// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures..
// (e.g. HTTPError for API responses)..
// to ensure the client receive meaningful, actionable, and consistent..
// error messages.
//
// - Return consistent error shapes to API clients (the response envelope).
// - Carry the machine-readable error_code the client switches on.
// - Provide errors that play nicely with Go's standard errors package.
package errs

import (
	"strings"

	"github.com/deppfellow/bookboard/internal/response"
)

// Error codes written to the envelope's error_code field.
const (
	CodeInvalidJSON      = "INVALID_JSON"
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidParams    = "INVALID_PARAMS"
	CodeOutOfRange       = "OUT_OF_RANGE"
	CodeServerError      = "SERVER_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeTooManyRequests  = "TOO_MANY_REQUESTS"
)

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// Fields:
//   - Code: machine-friendly error code (e.g. "NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Data: optional payload still returned with the failure (OUT_OF_RANGE returns []).
//   - Pagination: optional pagination block attached next to Data.
type HTTPError struct {
	Code    string
	Message string
	Status  int

	Data       any
	Pagination *response.Pagination
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// It only checks whether the other thing is the same *type* (*HTTPError);
// Code/Status are not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:       e.Code,
		Message:    message,
		Status:     e.Status,
		Data:       e.Data,
		Pagination: e.Pagination,
	}
}

// Envelope renders the error as the failure envelope sent to clients.
func (e *HTTPError) Envelope() *response.Envelope {
	env := response.Failure(e.Code, e.Message)
	if e.Data != nil {
		env = env.WithData(e.Data)
	}
	if e.Pagination != nil {
		env = env.WithPagination(*e.Pagination)
	}
	return env
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Method Not Allowed" -> "METHOD_NOT_ALLOWED"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
