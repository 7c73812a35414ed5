package verify

import (
	"fmt"
	"iter"

	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/model"
)

// Mode selects how many failures a verification reports.
type Mode string

const (
	// ModeFirst stops at the first failure.
	ModeFirst Mode = "first"

	// ModeAll collects every failure into a *Report.
	ModeAll Mode = "all"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeFirst, ModeAll:
		return m, nil
	case "":
		return ModeFirst, nil
	}
	return "", fmt.Errorf("unknown verification mode %q (want %q or %q)", s, ModeFirst, ModeAll)
}

// Verify returns the first failure in identifier and field order, or nil.
func Verify(s *model.Store) error {
	for e := range Failures(s) {
		return e
	}
	return nil
}

// VerifyAll returns a *Report holding every failure, or nil.
func VerifyAll(s *model.Store) error {
	var rep Report
	for e := range Failures(s) {
		rep.Errors = append(rep.Errors, e)
	}
	if len(rep.Errors) == 0 {
		return nil
	}
	return &rep
}

// Run verifies s in the given mode.
func Run(s *model.Store, mode Mode) error {
	if mode == ModeAll {
		return VerifyAll(s)
	}
	return Verify(s)
}

// Failures iterates over every bad reference in s.
func Failures(s *model.Store) iter.Seq[*VerificationError] {
	return func(yield func(*VerificationError) bool) {
		for id, rec := range s.All() {
			for e := range checkRecord(s, id, rec) {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Record checks the references of the single record at id.
func Record(s *model.Store, id ir.ID) ([]*VerificationError, error) {
	rec, err := s.Untyped(id)
	if err != nil {
		return nil, err
	}
	var out []*VerificationError
	for e := range checkRecord(s, id, rec) {
		out = append(out, e)
	}
	return out, nil
}

func checkRecord(s *model.Store, id ir.ID, rec model.Record) iter.Seq[*VerificationError] {
	if o, ok := rec.(*model.Opaque); ok {
		return checkOpaque(s, id, o)
	}
	return func(yield func(*VerificationError) bool) {
		for _, f := range model.ReferenceFields(rec.Kind()) {
			for _, target := range f.IDs(rec) {
				got, err := s.Untyped(target)
				var e *VerificationError
				switch {
				case err != nil:
					e = failure(ErrCodeUnknownIdentifier, id, rec, f, target)
				case !f.Accepts(got):
					e = failure(ErrCodeUnexpectedType, id, rec, f, target)
					e.Actual = model.TypeName(got)
				default:
					continue
				}
				if !yield(e) {
					return
				}
			}
		}
	}
}

// checkOpaque reports identifiers in an unmodeled record's text that do
// not exist. Their types are not checked.
func checkOpaque(s *model.Store, id ir.ID, o *model.Opaque) iter.Seq[*VerificationError] {
	return func(yield func(*VerificationError) bool) {
		for _, target := range o.ReferencedIDs() {
			if s.Contains(target) {
				continue
			}
			e := &VerificationError{
				Code:       ErrCodeUnknownIdentifier,
				Record:     id,
				RecordType: o.Keyword,
				Target:     target,
			}
			if !yield(e) {
				return
			}
		}
	}
}

func failure(code ErrorCode, id ir.ID, rec model.Record, f model.RefField, target ir.ID) *VerificationError {
	expected := make([]string, len(f.Targets))
	for i, t := range f.Targets {
		expected[i] = t.String()
	}
	return &VerificationError{
		Code:       code,
		Record:     id,
		RecordType: model.TypeName(rec),
		Field:      f.Name,
		Target:     target,
		Expected:   expected,
	}
}
