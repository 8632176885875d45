// Package form holds the client-side half of the validation pipeline: a
// form session that interprets the same rule tables as the server, giving
// immediate feedback while the server keeps the authoritative decision.
package form

import (
	"tasktracker/internal/core/validation"
)

// FieldState tracks whether a field has been interacted with. Errors on
// an Untouched field are computed but withheld from display.
type FieldState int

const (
	Untouched FieldState = iota
	Touched
)

// Session is one editing session of a form. It revalidates against its
// rule set on every change and gates error display on per-field touched
// state, so a half-typed value is not flagged before the user leaves the
// field. Everything here is advisory: whatever the session concludes, the
// server validates the submitted payload again.
//
// A Session belongs to a single goroutine, the UI event loop that feeds
// it. It performs no I/O and never blocks.
type Session struct {
	rules  validation.RuleSet
	values validation.FormValues
	state  map[string]FieldState
	errs   []validation.FieldError
}

func NewSession(rules validation.RuleSet) *Session {
	s := &Session{rules: rules}
	s.Reset()
	return s
}

// SetValue records the field's current text and re-evaluates the form.
// The updated error, if any, becomes visible only once the field has
// been touched.
func (s *Session) SetValue(field, value string) {
	s.values[field] = value
	s.revalidate()
}

// Value returns the field's current text.
func (s *Session) Value(field string) string {
	return s.values[field]
}

// Touch marks a field as interacted with, typically on blur. From then
// on its error is displayed as the user types.
func (s *Session) Touch(field string) {
	s.state[field] = Touched
	s.revalidate()
}

// State reports the field's display state.
func (s *Session) State(field string) FieldState {
	return s.state[field]
}

// Error returns the field's displayed error. Untouched fields report
// none even when their current value is invalid.
func (s *Session) Error(field string) (validation.FieldError, bool) {
	if s.state[field] != Touched {
		return validation.FieldError{}, false
	}

	for _, fe := range s.errs {
		if fe.Field == field {
			return fe, true
		}
	}

	return validation.FieldError{}, false
}

// VisibleErrors returns the errors currently eligible for display, in
// rule declaration order.
func (s *Session) VisibleErrors() []validation.FieldError {
	var visible []validation.FieldError

	for _, fe := range s.errs {
		if s.state[fe.Field] == Touched {
			visible = append(visible, fe)
		}
	}

	return visible
}

// Submit forces every field to Touched and fully re-evaluates the form.
// It returns the complete error set and whether the submission may
// proceed; on a non-empty set the caller must not issue the request.
func (s *Session) Submit() ([]validation.FieldError, bool) {
	for _, rule := range s.rules.Fields {
		s.state[rule.Field] = Touched
	}

	s.revalidate()

	return s.errs, len(s.errs) == 0
}

// Reset discards values, touched state and errors in one step, returning
// the session to its initial state. Used after a successful save or an
// explicit cancel.
func (s *Session) Reset() {
	s.values = validation.FormValues{}
	s.state = make(map[string]FieldState)
	s.errs = nil
}

// Values exposes the current field snapshot, e.g. to build the request
// payload after a successful Submit.
func (s *Session) Values() validation.FormValues {
	snapshot := make(validation.FormValues, len(s.values))
	for k, v := range s.values {
		snapshot[k] = v
	}

	return snapshot
}

func (s *Session) revalidate() {
	s.errs = validation.Validate(s.rules, s.values)
}
