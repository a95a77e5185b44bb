package taskapi

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state JSON field for PATCH bodies: absent from the
// document, explicitly null, or a concrete value. Combined with the
// `omitzero` struct tag, absent fields stay out of marshaled requests, while
// Null() still serializes as a literal null.
type Optional[T any] struct {
	set   bool
	null  bool
	value T
}

// Some returns an Optional carrying a concrete value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: v}
}

// Null returns an Optional representing an explicit JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the field was present in the JSON document.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was an explicit null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get returns the value and whether a concrete (non-null) value is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set && !o.null
}

// IsZero makes absent Optionals invisible to `omitzero`.
func (o Optional[T]) IsZero() bool { return !o.set }

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(data, []byte("null")) {
		o.null = true
		return nil
	}
	return json.Unmarshal(data, &o.value)
}
