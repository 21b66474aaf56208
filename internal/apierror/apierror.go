// Package apierror defines the error taxonomy shared by services and
// handlers. Every error that reaches a client goes through this package so
// responses stay consistent and never leak internals (stack traces, SQL
// errors, driver messages).
package apierror

import "net/http"

// APIError carries the HTTP status and the safe, human-readable message for
// a failure class. Services return *APIError; handlers translate it into the
// {success, message} envelope with the matching status code.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return e.Message }

func Validation(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "validation_error", Message: msg}
}

func Auth(msg string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: "auth_error", Message: msg}
}

func Forbidden(msg string) *APIError {
	return &APIError{Status: http.StatusForbidden, Code: "forbidden", Message: msg}
}

func NotFound(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: "not_found", Message: msg}
}

func Conflict(msg string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: "conflict", Message: msg}
}

func Internal(msg string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: "internal_error", Message: msg}
}

// Render covers certificate/report generation failures. Same status as
// Internal but a distinct code so clients can tell a broken download apart
// from a persistence failure.
func Render(msg string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: "render_error", Message: msg}
}

// FieldErrors wraps per-field validation failures from request binding.
type FieldErrors struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewFieldErrors(fields map[string]string) *FieldErrors {
	return &FieldErrors{Message: "Error de validación", Fields: fields}
}

func (e *FieldErrors) Error() string { return e.Message }
