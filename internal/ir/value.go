package ir

// Label is a quoted string attribute. The value holds the decoded text;
// quote doubling is applied by the writer.
type Label string

// Real is a floating point attribute.
type Real float64

// Integer is an integral attribute.
type Integer int64

// Logical is the three-valued STEP logical (.T., .F., .U.).
type Logical uint8

const (
	False Logical = iota
	True
	Unknown
)

// Letter returns the enumeration letter for l.
func (l Logical) Letter() string {
	switch l {
	case True:
		return "T"
	case Unknown:
		return "U"
	default:
		return "F"
	}
}

// ParseLogical maps an enumeration letter to a Logical.
func ParseLogical(s string) (Logical, bool) {
	switch s {
	case "T":
		return True, true
	case "F":
		return False, true
	case "U":
		return Unknown, true
	}
	return False, false
}
