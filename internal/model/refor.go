package model

import "github.com/roach88/stepgraph/internal/ir"

// RefOr is either a reference to a stored record or a record value that
// has not been stored yet. Builders accept it so callers can pass
// whichever they have. It is resolved before anything is written and is
// never serialized itself.
type RefOr[T Record] struct {
	ref    ir.Ref[T]
	value  T
	inline bool
}

// RefTo wraps an existing reference.
func RefTo[T Record](ref ir.Ref[T]) RefOr[T] {
	return RefOr[T]{ref: ref}
}

// Inline wraps a record value to be inserted on first resolution.
func Inline[T Record](v T) RefOr[T] {
	return RefOr[T]{value: v, inline: true}
}

// IsInline reports whether r still holds an unstored value.
func (r *RefOr[T]) IsInline() bool {
	return r.inline
}

// Resolve returns the reference, inserting an inline value into s first.
// After the first call r holds the reference, so resolving again never
// inserts twice.
func (r *RefOr[T]) Resolve(s *Store) ir.Ref[T] {
	if r.inline {
		r.ref = Insert(s, r.value)
		var zero T
		r.value = zero
		r.inline = false
	}
	return r.ref
}
