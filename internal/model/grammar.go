package model

import (
	"fmt"
	"slices"

	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/step"
)

// args parses a positional parameter list with a sticky error, so record
// grammars read as a flat sequence of fields.
type args struct {
	p    *step.Parser
	kind Kind
	n    int
	err  error
}

func openArgs(p *step.Parser, kind Kind) *args {
	a := &args{p: p, kind: kind}
	if err := p.Open(); err != nil {
		a.err = fmt.Errorf("%s: %w", kind, err)
	}
	return a
}

// field parses the next parameter into dst.
func field[T any](a *args, name string, dst *T, parse func(*step.Parser) (T, error)) {
	if a.err != nil {
		return
	}
	if a.n > 0 {
		if err := a.p.Comma(); err != nil {
			a.err = fmt.Errorf("%s.%s: %w", a.kind, name, err)
			return
		}
	}
	a.n++
	v, err := parse(a.p)
	if err != nil {
		a.err = fmt.Errorf("%s.%s: %w", a.kind, name, err)
		return
	}
	*dst = v
}

func (a *args) close() error {
	if a.err != nil {
		return a.err
	}
	if err := a.p.Close(); err != nil {
		return fmt.Errorf("%s: %w", a.kind, err)
	}
	return nil
}

func opt[T any](parse func(*step.Parser) (T, error)) func(*step.Parser) (ir.Optional[T], error) {
	return func(p *step.Parser) (ir.Optional[T], error) {
		return step.Opt(p, parse)
	}
}

func list[T any](parse func(*step.Parser) (T, error)) func(*step.Parser) ([]T, error) {
	return func(p *step.Parser) ([]T, error) {
		return step.List(p, parse)
	}
}

func ref[T any](p *step.Parser) (ir.Ref[T], error) {
	return step.ParseRef[T](p)
}

// enumOf parses an enumeration restricted to the given values.
func enumOf[E ~string](valid ...E) func(*step.Parser) (E, error) {
	return func(p *step.Parser) (E, error) {
		start := p.Pos()
		name, err := p.Enum()
		if err != nil {
			return "", err
		}
		if !slices.Contains(valid, E(name)) {
			p.Reset(start)
			p.SkipSpace()
			return "", p.Errorf("unexpected enumeration value .%s.", name)
		}
		return E(name), nil
	}
}

func writeEnum[E ~string](w *step.Writer, e E) {
	w.Enum(string(e))
}

func writeList[T any](write func(*step.Writer, T)) func(*step.Writer, []T) {
	return func(w *step.Writer, items []T) {
		step.WriteList(w, items, write)
	}
}

func writeRef[T any](w *step.Writer, r ir.Ref[T]) {
	step.WriteRef(w, r)
}
