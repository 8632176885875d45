package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Single @ with a dot in the domain part, matching the legacy service.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const dateLayout = "2006-01-02"

// Validate runs every rule of rs against vals and returns the failures in
// rule declaration order, at most one per field. An empty result means the
// snapshot is acceptable for persistence.
//
// Validate is a pure function over (rs, vals, wall clock): no I/O, no
// shared state, safe for concurrent use. Absent or wrong-typed values are
// reported as field errors, never as faults.
func Validate(rs RuleSet, vals Values) []FieldError {
	return ValidateAt(rs, vals, time.Now())
}

// ValidateAt is Validate with an explicit clock for the calendar-day
// deadline comparison.
func ValidateAt(rs RuleSet, vals Values, now time.Time) []FieldError {
	var errs []FieldError

	for _, rule := range rs.Fields {
		if fe, ok := checkField(rule, vals, now); ok {
			errs = append(errs, fe)
		}
	}

	return errs
}

func checkField(rule FieldRule, vals Values, now time.Time) (FieldError, bool) {
	raw, present := vals.Get(rule.Field)
	text, isText := raw.(string)
	empty := !present || raw == nil || (isText && strings.TrimSpace(text) == "")

	if rule.Required && (empty || !isText) {
		return fieldError(rule.Field, CodeRequired, ""), true
	}

	for _, check := range rule.Checks {
		// Optional fields left blank are fine, except that a submitted
		// confirmation field is always compared against its peer.
		if (empty || (!isText && check.Kind != CheckNumberRange)) && check.Kind != CheckEqualsField {
			continue
		}

		if code, arg, violated := applyCheck(check, raw, vals, present, now); violated {
			return fieldError(rule.Field, code, arg), true
		}
	}

	return FieldError{}, false
}

func applyCheck(check Check, raw any, vals Values, present bool, now time.Time) (Code, string, bool) {
	switch check.Kind {
	case CheckMinLen:
		if length(raw) < check.Min {
			return check.Code, strconv.Itoa(check.Min), true
		}

	case CheckMaxLen:
		if length(raw) > check.Max {
			return check.Code, msgArg(check, strconv.Itoa(check.Max)), true
		}

	case CheckEmail:
		if s, ok := raw.(string); ok && !emailPattern.MatchString(strings.TrimSpace(s)) {
			return check.Code, "", true
		}

	case CheckNotPastDate:
		if deadline, ok := parseDate(raw); ok {
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if deadline.Before(today) {
				return check.Code, "", true
			}
		}

	case CheckNumberRange:
		value, ok := parseNumber(raw)

		if !ok || value < 0 {
			return CodeInvalidNumber, "", true
		}

		if value > check.MaxValue {
			return CodeTooLarge, msgArg(check, strconv.FormatFloat(check.MaxValue, 'f', -1, 64)), true
		}

	case CheckEqualsField:
		if !present {
			return check.Code, "", false
		}

		other, _ := vals.Get(check.Other)

		if stringOf(raw) != stringOf(other) {
			return check.Code, "", true
		}
	}

	return check.Code, "", false
}

func fieldError(field string, code Code, arg string) FieldError {
	return FieldError{
		Field:   field,
		Code:    code,
		Message: Message(code, field, arg),
	}
}

func msgArg(check Check, fallback string) string {
	if check.MsgArg != "" {
		return check.MsgArg
	}

	return fallback
}

func length(raw any) int {
	s, ok := raw.(string)

	if !ok {
		return 0
	}

	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func stringOf(raw any) string {
	if s, ok := raw.(string); ok {
		return s
	}

	return ""
}

// parseDate accepts a plain calendar date or an RFC 3339 timestamp and
// truncates to the day. Unparseable input passes the deadline rule, which
// matches the legacy behavior of comparing against an invalid date.
func parseDate(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.Local), true
	case string:
		s := strings.TrimSpace(v)

		if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
			return t, true
		}

		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), true
		}
	}

	return time.Time{}, false
}

func parseNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		value, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return value, err == nil
	}

	return 0, false
}
