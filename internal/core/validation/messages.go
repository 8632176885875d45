package validation

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
)

var translator ut.Translator

func init() {
	locale := en.New()
	uni := ut.New(locale, locale)

	var found bool
	translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	registerMessages()
}

func registerMessages() {
	add := func(key, template string) {
		if err := translator.Add(key, template, true); err != nil {
			panic(err)
		}
	}

	add("required", "{0} is required")
	add("too_short", "{0} must be at least {1} characters")
	add("too_long", "{0} must not exceed {1} characters")
	add("date_in_past", "{0} cannot be in the past")
	add("invalid_number", "{0} must be a number greater than or equal to 0")
	add("too_large", "{0} cannot exceed {1} hours")
	add("invalid_email", "{0} must be a valid email address")
	add("mismatch", "{0} does not match the password")
}

// Message renders the human-readable text for a code. arg carries the
// echoed bound for length and range codes and is ignored otherwise.
func Message(code Code, field string, arg string) string {
	key := messageKey(code)
	name := fieldName(field)

	var (
		msg string
		err error
	)

	if arg != "" {
		msg, err = translator.T(key, name, arg)
	} else {
		msg, err = translator.T(key, name)
	}

	if err != nil {
		return name + " is invalid"
	}

	return msg
}

func messageKey(code Code) string {
	switch code {
	case CodeRequired:
		return "required"
	case CodeTooShort:
		return "too_short"
	case CodeTooLong:
		return "too_long"
	case CodeDateInPast:
		return "date_in_past"
	case CodeInvalidNumber:
		return "invalid_number"
	case CodeTooLarge:
		return "too_large"
	case CodeInvalidEmail:
		return "invalid_email"
	case CodeMismatch:
		return "mismatch"
	}

	return "invalid"
}

func fieldName(field string) string {
	fieldNames := map[string]string{
		"title_name":            "Title",
		"description":           "Description",
		"deadline_date":         "Deadline",
		"estimated_time":        "Estimated time",
		"category":              "Category",
		"assigned_to":           "Assignee",
		"notes":                 "Notes",
		"login":                 "Email",
		"password":              "Password",
		"password_confirmation": "Password confirmation",
	}

	if name, exists := fieldNames[field]; exists {
		return name
	}

	return field
}
