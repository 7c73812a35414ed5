package model

import (
	"errors"
	"fmt"

	"github.com/roach88/stepgraph/internal/ir"
)

// LookupErrorCode categorizes store lookup failures.
type LookupErrorCode string

const (
	// ErrCodeUnknownIdentifier indicates no record is stored at the identifier.
	ErrCodeUnknownIdentifier LookupErrorCode = "UNKNOWN_IDENTIFIER"

	// ErrCodeTypeMismatch indicates the stored record has a different type.
	ErrCodeTypeMismatch LookupErrorCode = "TYPE_MISMATCH"
)

// LookupError reports a failed store retrieval.
type LookupError struct {
	Code LookupErrorCode
	ID   ir.ID
	Want string // requested type
	Got  string // stored type, empty for unknown identifiers
}

func (e *LookupError) Error() string {
	if e.Code == ErrCodeTypeMismatch {
		return fmt.Sprintf("%s: %s is %s, not %s", e.Code, e.ID, e.Got, e.Want)
	}
	return fmt.Sprintf("%s: no record at %s", e.Code, e.ID)
}

// IsUnknownIdentifier returns true if err is an unknown identifier lookup error.
// Uses errors.As to handle wrapped errors.
func IsUnknownIdentifier(err error) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Code == ErrCodeUnknownIdentifier
	}
	return false
}

// IsTypeMismatch returns true if err is a type mismatch lookup error.
// Uses errors.As to handle wrapped errors.
func IsTypeMismatch(err error) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Code == ErrCodeTypeMismatch
	}
	return false
}

func unknownIdentifier(id ir.ID, want string) *LookupError {
	return &LookupError{Code: ErrCodeUnknownIdentifier, ID: id, Want: want}
}
