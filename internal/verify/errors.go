package verify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/stepgraph/internal/ir"
)

// ErrorCode categorizes verification failures.
type ErrorCode string

const (
	// ErrCodeUnknownIdentifier indicates a reference to a record that does not exist.
	ErrCodeUnknownIdentifier ErrorCode = "UNKNOWN_IDENTIFIER"

	// ErrCodeUnexpectedType indicates a reference to a record outside the
	// field's acceptable types.
	ErrCodeUnexpectedType ErrorCode = "UNEXPECTED_TYPE"
)

// VerificationError identifies one bad reference.
type VerificationError struct {
	Code       ErrorCode
	Record     ir.ID    // record holding the reference
	RecordType string   // type name of that record
	Field      string   // reference field name, empty for unmodeled records
	Target     ir.ID    // referenced identifier
	Expected   []string // acceptable target types
	Actual     string   // type found at Target, empty when unknown
}

// maxListedTypes bounds the acceptable types named in an error message.
const maxListedTypes = 6

func (e *VerificationError) Error() string {
	source := e.RecordType
	if e.Field != "" {
		source += "." + e.Field
	}
	if e.Code == ErrCodeUnknownIdentifier {
		return fmt.Sprintf("%s: %s %s references %s, which does not exist",
			e.Code, e.Record, source, e.Target)
	}
	return fmt.Sprintf("%s: %s %s references %s of type %s, want %s",
		e.Code, e.Record, source, e.Target, e.Actual, listTypes(e.Expected))
}

func listTypes(types []string) string {
	if len(types) <= maxListedTypes {
		return strings.Join(types, " | ")
	}
	return fmt.Sprintf("%s | ... (%d more)",
		strings.Join(types[:maxListedTypes-1], " | "), len(types)-maxListedTypes+1)
}

// Report collects every failure of a store.
type Report struct {
	Errors []*VerificationError
}

func (r *Report) Error() string {
	switch len(r.Errors) {
	case 0:
		return "no verification errors"
	case 1:
		return r.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d verification errors:", len(r.Errors))
	for _, e := range r.Errors {
		sb.WriteString("\n  ")
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (r *Report) Unwrap() []error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errs
}

// Errors flattens the result of Verify, VerifyAll or Run into its
// individual failures. A nil err yields none.
func Errors(err error) []*VerificationError {
	var rep *Report
	if errors.As(err, &rep) {
		return rep.Errors
	}
	var ve *VerificationError
	if errors.As(err, &ve) {
		return []*VerificationError{ve}
	}
	return nil
}

// IsUnknownIdentifier returns true if err is or contains a dangling reference failure.
// Uses errors.As to handle wrapped errors.
func IsUnknownIdentifier(err error) bool {
	return hasCode(err, ErrCodeUnknownIdentifier)
}

// IsUnexpectedType returns true if err is or contains a wrong target type failure.
// Uses errors.As to handle wrapped errors.
func IsUnexpectedType(err error) bool {
	return hasCode(err, ErrCodeUnexpectedType)
}

func hasCode(err error, code ErrorCode) bool {
	var rep *Report
	if errors.As(err, &rep) {
		for _, e := range rep.Errors {
			if e.Code == code {
				return true
			}
		}
		return false
	}
	var ve *VerificationError
	if errors.As(err, &ve) {
		return ve.Code == code
	}
	return false
}
