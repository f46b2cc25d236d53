package domain

import (
	"bytes"
	"encoding/json"
)

// Nullable is a request field that distinguishes three states: absent from the
// payload, explicitly null, and carrying a value. Absent leaves Set false; both
// null and a value set it, and Null marks the explicit null.
type Nullable[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a Nullable holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: v}
}

// Null returns an explicitly null Nullable.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true, Null: true}
}

// Present reports whether the field carries a non-null value.
func (n Nullable[T]) Present() bool {
	return n.Set && !n.Null
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (n Nullable[T]) Ptr() *T {
	if !n.Present() {
		return nil
	}
	v := n.Value
	return &v
}

// Resolve applies partial update semantics: absent keeps current, null clears,
// a value replaces.
func (n Nullable[T]) Resolve(current *T) *T {
	if !n.Set {
		return current
	}
	return n.Ptr()
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Null = true
		var zero T
		n.Value = zero
		return nil
	}
	n.Null = false
	return json.Unmarshal(b, &n.Value)
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
