package http

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"tasktracker/internal/core/validation"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}
}

// wireNames maps struct field names back to their wire/storage names so the
// struct gate reports the same field keys as the rule interpreter.
var wireNames = map[string]string{
	"Title":             "title_name",
	"Description":       "description",
	"Deadline":          "deadline_date",
	"Priority":          "priority",
	"Status":            "status",
	"Category":          "category",
	"AssignedTo":        "assigned_to",
	"EstimatedTime":     "estimated_time",
	"Notes":             "notes",
	"Login":             "login",
	"EncryptedPassword": "password",
}

func wireName(field string) string {
	if name, exists := wireNames[field]; exists {
		return name
	}

	return field
}

func tagToCode(tag string) validation.Code {
	switch tag {
	case "required":
		return validation.CodeRequired
	case "min":
		return validation.CodeTooShort
	case "max":
		return validation.CodeTooLong
	case "email":
		return validation.CodeInvalidEmail
	case "gte":
		return validation.CodeInvalidNumber
	case "lte":
		return validation.CodeTooLarge
	case "eqfield":
		return validation.CodeMismatch
	}

	return validation.CodeRequired
}

// FormatValidationErrors converts struct-gate failures into the same
// field-error shape the rule interpreter produces.
func FormatValidationErrors(err error) []validation.FieldError {
	var errors []validation.FieldError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			field := wireName(fieldError.Field())
			code := tagToCode(fieldError.Tag())

			errors = append(errors, validation.FieldError{
				Field:   field,
				Code:    code,
				Message: validation.Message(code, field, fieldError.Param()),
			})
		}
	}

	return errors
}
