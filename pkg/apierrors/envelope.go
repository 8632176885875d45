package apierrors

import (
	"net/http"
	"time"

	"tasktracker/internal/core/validation"
)

// Category labels a failure class. Every rejected request carries exactly
// one category, which also selects the HTTP status.
type Category string

const (
	BadRequest          Category = "BAD_REQUEST"
	Unauthorized        Category = "UNAUTHORIZED"
	Forbidden           Category = "FORBIDDEN"
	NotFound            Category = "NOT_FOUND"
	Conflict            Category = "CONFLICT"
	UnprocessableEntity Category = "UNPROCESSABLE_ENTITY"
	Internal            Category = "INTERNAL_ERROR"
)

// HTTPStatus maps the category onto HTTP semantics. Unknown categories
// collapse to 500 so a missing case can never weaken a rejection.
func (c Category) HTTPStatus() int {
	switch c {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case UnprocessableEntity:
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

// Envelope is the uniform failure response. It is built fresh per rejected
// request, never persisted and never mutated after construction.
// FieldErrors is populated only for UNPROCESSABLE_ENTITY.
type Envelope struct {
	Timestamp   time.Time               `json:"timestamp"`
	Status      int                     `json:"status"`
	Error       string                  `json:"error"`
	Message     string                  `json:"message"`
	FieldErrors []validation.FieldError `json:"fieldErrors,omitempty"`
}

// New builds an envelope for a non-validation failure.
func New(category Category, message string) Envelope {
	return Envelope{
		Timestamp: time.Now().UTC(),
		Status:    category.HTTPStatus(),
		Error:     string(category),
		Message:   message,
	}
}

// NewValidation builds the 422 envelope carrying the full field-error list.
func NewValidation(message string, errs []validation.FieldError) Envelope {
	env := New(UnprocessableEntity, message)
	env.FieldErrors = errs

	return env
}
