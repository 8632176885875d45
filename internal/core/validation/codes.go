package validation

// Code identifies a validation failure in a stable, machine-readable way.
// The set is closed: clients switch on these values.
type Code string

const (
	CodeRequired      Code = "REQUIRED"
	CodeTooShort      Code = "TOO_SHORT"
	CodeTooLong       Code = "TOO_LONG"
	CodeDateInPast    Code = "DATE_IN_PAST"
	CodeInvalidNumber Code = "INVALID_NUMBER"
	CodeTooLarge      Code = "TOO_LARGE"
	CodeInvalidEmail  Code = "INVALID_EMAIL"
	CodeMismatch      Code = "MISMATCH"
)

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}
