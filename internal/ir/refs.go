package ir

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
)

// IDPrefix is the character that introduces an identifier in STEP text.
const IDPrefix = '#'

// ErrMalformedIdentifier is returned when text does not hold a #<digits> identifier.
var ErrMalformedIdentifier = errors.New("malformed identifier")

// ID is a positive record identifier, unique within one store.
// The zero value is not a valid identifier.
type ID uint64

// String formats the identifier as it appears in STEP text, e.g. "#42".
func (id ID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}

// Valid reports whether id is a usable identifier.
func (id ID) Valid() bool {
	return id > 0
}

// ParseID parses the textual "#<digits>" form.
func ParseID(s string) (ID, error) {
	if len(s) < 2 || s[0] != IDPrefix {
		return 0, fmt.Errorf("%w: %q", ErrMalformedIdentifier, s)
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedIdentifier, s)
		}
	}
	n, err := strconv.ParseUint(s[1:], 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedIdentifier, s)
	}
	return ID(n), nil
}

// Ref is an identifier tagged with the record type it is expected to point at.
// The tag exists only at compile time: two refs are equal when their
// identifiers are equal, and a Ref never owns the record it names.
type Ref[T any] struct {
	id ID
}

// NewRef attaches a type tag to id. No validation is performed.
func NewRef[T any](id ID) Ref[T] {
	return Ref[T]{id: id}
}

// ID returns the underlying identifier.
func (r Ref[T]) ID() ID {
	return r.id
}

// String formats the reference as its identifier.
func (r Ref[T]) String() string {
	return r.id.String()
}

// Compare orders references by identifier.
func (r Ref[T]) Compare(other Ref[T]) int {
	return cmp.Compare(r.id, other.id)
}

// Retag converts a reference to a different type tag over the same identifier.
// Used when a field accepts several record types and the caller has already
// discriminated the target.
func Retag[U, T any](r Ref[T]) Ref[U] {
	return Ref[U]{id: r.id}
}

// IDs extracts the identifiers from a list of references.
func IDs[T any](refs []Ref[T]) []ID {
	out := make([]ID, len(refs))
	for i, r := range refs {
		out[i] = r.id
	}
	return out
}
