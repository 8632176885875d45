package request

import (
	"strconv"
	"strings"

	"tasktracker/internal/core/validation"
)

type SignUpRequest struct {
	Login                string `json:"login,omitempty"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

type LoginRequest struct {
	Login    string `json:"login,omitempty"`
	Password string `json:"password,omitempty"`
}

// TaskRequest is the typed view of a task payload. Handlers validate the
// raw snapshot first and only then lift it with TaskFromValues, so the
// coercions here cannot fail on anything the validator accepted.
type TaskRequest struct {
	Title         string   `json:"title_name,omitempty"`
	Description   string   `json:"description,omitempty"`
	DeadlineDate  string   `json:"deadline_date,omitempty"`
	Priority      string   `json:"priority,omitempty"`
	Status        string   `json:"status,omitempty"`
	Category      string   `json:"category,omitempty"`
	AssignedTo    string   `json:"assigned_to,omitempty"`
	EstimatedTime *float64 `json:"estimated_time,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

func TaskFromValues(vals validation.Values) TaskRequest {
	return TaskRequest{
		Title:         strings.TrimSpace(stringField(vals, "title_name")),
		Description:   strings.TrimSpace(stringField(vals, "description")),
		DeadlineDate:  strings.TrimSpace(stringField(vals, "deadline_date")),
		Priority:      stringField(vals, "priority"),
		Status:        stringField(vals, "status"),
		Category:      stringField(vals, "category"),
		AssignedTo:    stringField(vals, "assigned_to"),
		EstimatedTime: numberField(vals, "estimated_time"),
		Notes:         strings.TrimSpace(stringField(vals, "notes")),
	}
}

func SignUpFromValues(vals validation.Values) SignUpRequest {
	return SignUpRequest{
		Login:                strings.TrimSpace(stringField(vals, "login")),
		Password:             stringField(vals, "password"),
		PasswordConfirmation: stringField(vals, "password_confirmation"),
	}
}

func LoginFromValues(vals validation.Values) LoginRequest {
	return LoginRequest{
		Login:    strings.TrimSpace(stringField(vals, "login")),
		Password: stringField(vals, "password"),
	}
}

func stringField(vals validation.Values, field string) string {
	raw, ok := vals.Get(field)

	if !ok {
		return ""
	}

	s, _ := raw.(string)

	return s
}

func numberField(vals validation.Values, field string) *float64 {
	raw, ok := vals.Get(field)

	if !ok || raw == nil {
		return nil
	}

	switch v := raw.(type) {
	case float64:
		return &v
	case int:
		value := float64(v)
		return &value
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}

		if value, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &value
		}
	}

	return nil
}
