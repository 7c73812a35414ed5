package ir

// Presence distinguishes the three states of an optional attribute.
type Presence uint8

const (
	// Omitted means no value was given; serialized as "$".
	Omitted Presence = iota
	// Present means a value is held.
	Present
	// Derived means the value is computed elsewhere; serialized as "*".
	Derived
)

// Sentinel tokens for the two valueless states.
const (
	OmittedToken = "$"
	DerivedToken = "*"
)

// String returns the presence name.
func (p Presence) String() string {
	switch p {
	case Present:
		return "present"
	case Derived:
		return "derived"
	default:
		return "omitted"
	}
}

// Optional is an attribute that may be present, omitted or derived.
// The zero value is omitted.
type Optional[T any] struct {
	value    T
	presence Presence
}

// Some returns a present optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, presence: Present}
}

// None returns an omitted optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// DerivedValue returns an optional marked as derived.
func DerivedValue[T any]() Optional[T] {
	return Optional[T]{presence: Derived}
}

// Presence reports which of the three states o is in.
func (o Optional[T]) Presence() Presence {
	return o.presence
}

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool {
	return o.presence == Present
}

// IsOmitted reports whether the attribute was omitted.
func (o Optional[T]) IsOmitted() bool {
	return o.presence == Omitted
}

// IsDerived reports whether the attribute is derived.
func (o Optional[T]) IsDerived() bool {
	return o.presence == Derived
}

// Value returns the held value and whether one is present.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.presence == Present
}

// ValueOr returns the held value, or fallback when none is present.
func (o Optional[T]) ValueOr(fallback T) T {
	if o.presence == Present {
		return o.value
	}
	return fallback
}

// Ptr returns a pointer to the held value, or nil when none is present.
func (o *Optional[T]) Ptr() *T {
	if o.presence != Present {
		return nil
	}
	return &o.value
}
