package domain

// Field is a tri-state partial-update value: absent (Set=false, leave the
// column untouched), explicit null (Set=true, Valid=false, clear it), or a
// concrete value (Set and Valid).
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// FieldOf returns a Field carrying a concrete value.
func FieldOf[T any](v T) Field[T] {
	return Field[T]{Set: true, Valid: true, Value: v}
}

// NullField returns a Field representing an explicit null.
func NullField[T any]() Field[T] {
	return Field[T]{Set: true}
}
