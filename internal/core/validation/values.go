package validation

// Values is one snapshot of submitted fields. Get reports the raw value
// and whether the field was submitted at all; the validator makes no
// assumption about the value's dynamic type.
type Values interface {
	Get(field string) (value any, present bool)
}

// MapValues adapts a decoded JSON body.
type MapValues map[string]any

func (m MapValues) Get(field string) (any, bool) {
	v, ok := m[field]
	return v, ok
}

// FormValues adapts interactive form state, where every field exists and
// holds its current text.
type FormValues map[string]string

func (f FormValues) Get(field string) (any, bool) {
	v, ok := f[field]
	return v, ok
}
