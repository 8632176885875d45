package apierrors

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tasktracker/internal/core/validation"
)

func TestCategoryHTTPStatus(t *testing.T) {
	cases := map[Category]int{
		BadRequest:          http.StatusBadRequest,
		Unauthorized:        http.StatusUnauthorized,
		Forbidden:           http.StatusForbidden,
		NotFound:            http.StatusNotFound,
		Conflict:            http.StatusConflict,
		UnprocessableEntity: http.StatusUnprocessableEntity,
		Internal:            http.StatusInternalServerError,
		Category("UNKNOWN"): http.StatusInternalServerError,
	}

	for category, status := range cases {
		assert.Equal(t, status, category.HTTPStatus(), string(category))
	}
}

func TestNewValidationRoundTrip(t *testing.T) {
	fieldErrors := []validation.FieldError{
		{Field: "title_name", Code: validation.CodeTooShort, Message: "Title must be at least 3 characters"},
		{Field: "category", Code: validation.CodeTooLong, Message: "Category must not exceed 30 characters"},
	}

	env := NewValidation("Task validation failed", fieldErrors)

	assert.Equal(t, http.StatusUnprocessableEntity, env.Status)
	assert.Equal(t, "UNPROCESSABLE_ENTITY", env.Error)
	assert.False(t, env.Timestamp.IsZero())

	body, err := json.Marshal(env)
	assert.NoError(t, err)

	var decoded Envelope
	assert.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, http.StatusUnprocessableEntity, decoded.Status)
	assert.Equal(t, fieldErrors, decoded.FieldErrors)
}

func TestNewOmitsFieldErrorsKey(t *testing.T) {
	env := New(NotFound, "Task not found")

	body, err := json.Marshal(env)
	assert.NoError(t, err)

	assert.False(t, strings.Contains(string(body), "fieldErrors"))
	assert.Contains(t, string(body), `"status":404`)
}
