package model

import (
	"github.com/roach88/stepgraph/internal/ir"
)

// RefField describes one reference-bearing field of a record type and
// the record types it may point at.
type RefField struct {
	Name    string
	Targets []Target
	ids     func(Record) []ir.ID
}

// IDs returns the identifiers the field holds on r. Absent optional
// fields yield none; list fields yield one per element.
func (f RefField) IDs(r Record) []ir.ID {
	return f.ids(r)
}

// Accepts reports whether rec is a valid target of the field.
func (f RefField) Accepts(rec Record) bool {
	for _, t := range f.Targets {
		if t.Accepts(rec) {
			return true
		}
	}
	return false
}

// Reference is one outgoing edge of a record.
type Reference struct {
	Field string
	ID    ir.ID
}

// ReferenceFields returns the reference table of kind k.
// Opaque records have none.
func ReferenceFields(k Kind) []RefField {
	return referenceTables[k]
}

// References returns every outgoing reference of r, in field order.
// For opaque records the identifiers found in the source text are
// returned with an empty field name.
func References(r Record) []Reference {
	if o, ok := r.(*Opaque); ok {
		ids := o.ReferencedIDs()
		out := make([]Reference, len(ids))
		for i, id := range ids {
			out[i] = Reference{ID: id}
		}
		return out
	}
	var out []Reference
	for _, f := range referenceTables[r.Kind()] {
		for _, id := range f.IDs(r) {
			out = append(out, Reference{Field: f.Name, ID: id})
		}
	}
	return out
}

// refOne declares a required single reference field.
func refOne[R Record, T any](name string, get func(R) ir.Ref[T], targets ...Target) RefField {
	return RefField{Name: name, Targets: targets, ids: func(r Record) []ir.ID {
		return []ir.ID{get(r.(R)).ID()}
	}}
}

// refOpt declares an optional single reference field.
func refOpt[R Record, T any](name string, get func(R) ir.Optional[ir.Ref[T]], targets ...Target) RefField {
	return RefField{Name: name, Targets: targets, ids: func(r Record) []ir.ID {
		ref, ok := get(r.(R)).Value()
		if !ok {
			return nil
		}
		return []ir.ID{ref.ID()}
	}}
}

// refMany declares a required list of references.
func refMany[R Record, T any](name string, get func(R) []ir.Ref[T], targets ...Target) RefField {
	return RefField{Name: name, Targets: targets, ids: func(r Record) []ir.ID {
		return ir.IDs(get(r.(R)))
	}}
}

// refOptMany declares an optional list of references.
func refOptMany[R Record, T any](name string, get func(R) ir.Optional[[]ir.Ref[T]], targets ...Target) RefField {
	return RefField{Name: name, Targets: targets, ids: func(r Record) []ir.ID {
		refs, ok := get(r.(R)).Value()
		if !ok {
			return nil
		}
		return ir.IDs(refs)
	}}
}
