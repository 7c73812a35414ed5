package step

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/stepgraph/internal/ir"
)

// ErrorCode categorizes grammar errors.
type ErrorCode string

const (
	// ErrCodeMalformedIdentifier indicates a #<digits> identifier was expected.
	ErrCodeMalformedIdentifier ErrorCode = "MALFORMED_IDENTIFIER"

	// ErrCodeParseFailure indicates no sub-grammar matched the input.
	ErrCodeParseFailure ErrorCode = "PARSE_FAILURE"
)

// remainingWidth bounds the unconsumed input kept on a ParseError.
const remainingWidth = 40

// Position is a location in the source text. Line and Column are 1-based.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// ParseError reports where and why a grammar failed to match.
type ParseError struct {
	Code      ErrorCode
	Message   string
	Pos       Position
	Remaining string // unconsumed input at Pos, truncated
	Err       error  // underlying cause (optional)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s at %s near %q", e.Code, e.Message, e.Pos, e.Remaining)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsMalformedIdentifier returns true if err is a malformed identifier error.
// Uses errors.As to handle wrapped errors.
func IsMalformedIdentifier(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeMalformedIdentifier
	}
	return errors.Is(err, ir.ErrMalformedIdentifier)
}

// IsParseFailure returns true if err is any grammar error.
func IsParseFailure(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// positionAt computes the line and column of offset in src.
func positionAt(src string, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	line := 1 + strings.Count(src[:offset], "\n")
	col := offset + 1
	if i := strings.LastIndexByte(src[:offset], '\n'); i >= 0 {
		col = offset - i
	}
	return Position{Line: line, Column: col, Offset: offset}
}

func remainingAt(src string, offset int) string {
	if offset >= len(src) {
		return ""
	}
	rest := src[offset:]
	if len(rest) > remainingWidth {
		rest = rest[:remainingWidth]
	}
	return rest
}
