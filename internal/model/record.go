package model

import (
	"github.com/roach88/stepgraph/internal/step"
)

// Record is one entity instance of the data section.
// Records have no identity of their own; the store assigns identifiers.
type Record interface {
	// Kind returns the catalog tag of the record.
	Kind() Kind

	// WriteStep writes the record body, e.g. IFCDIRECTION((1.,0.,0.)).
	WriteStep(w *step.Writer)

	record()
}

// Kind tags a modeled record type.
type Kind uint8

const (
	KindOpaque Kind = iota
	KindOrganization
	KindApplication
	KindPoint2D
	KindPoint3D
	KindDirection2D
	KindDirection3D
	KindAxis2D
	KindAxis3D
	KindLocalPlacement
	KindGeometricRepresentationContext
	KindProject
	KindSite
	KindBuilding
	KindBuildingStorey
	KindWall
	KindRelAggregates
	KindRelContainedInSpatialStructure

	kindCount
)

var kindInfo = [kindCount]struct {
	name    string
	keyword string
}{
	KindOpaque:                         {"Opaque", ""},
	KindOrganization:                   {"Organization", "IFCORGANIZATION"},
	KindApplication:                    {"Application", "IFCAPPLICATION"},
	KindPoint2D:                        {"Point2D", "IFCCARTESIANPOINT"},
	KindPoint3D:                        {"Point3D", "IFCCARTESIANPOINT"},
	KindDirection2D:                    {"Direction2D", "IFCDIRECTION"},
	KindDirection3D:                    {"Direction3D", "IFCDIRECTION"},
	KindAxis2D:                         {"Axis2D", "IFCAXIS2PLACEMENT2D"},
	KindAxis3D:                         {"Axis3D", "IFCAXIS2PLACEMENT3D"},
	KindLocalPlacement:                 {"LocalPlacement", "IFCLOCALPLACEMENT"},
	KindGeometricRepresentationContext: {"GeometricRepresentationContext", "IFCGEOMETRICREPRESENTATIONCONTEXT"},
	KindProject:                        {"Project", "IFCPROJECT"},
	KindSite:                           {"Site", "IFCSITE"},
	KindBuilding:                       {"Building", "IFCBUILDING"},
	KindBuildingStorey:                 {"BuildingStorey", "IFCBUILDINGSTOREY"},
	KindWall:                           {"Wall", "IFCWALL"},
	KindRelAggregates:                  {"RelAggregates", "IFCRELAGGREGATES"},
	KindRelContainedInSpatialStructure: {"RelContainedInSpatialStructure", "IFCRELCONTAINEDINSPATIALSTRUCTURE"},
}

// String returns the type name used in diagnostics.
func (k Kind) String() string {
	if k >= kindCount {
		return "Kind(?)"
	}
	return kindInfo[k].name
}

// Keyword returns the STEP keyword of the kind. Several kinds may share a
// keyword when they are told apart by their parameters.
func (k Kind) Keyword() string {
	if k >= kindCount {
		return ""
	}
	return kindInfo[k].keyword
}

// Kinds returns every modeled kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindOpaque + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// TypeName returns the diagnostic name of r: its kind name, or the source
// keyword of an opaque record.
func TypeName(r Record) string {
	if o, ok := r.(*Opaque); ok {
		if o.Keyword == "" {
			return KindOpaque.String()
		}
		return o.Keyword
	}
	return r.Kind().String()
}

// Keyword returns the STEP keyword r is written with.
func Keyword(r Record) string {
	if o, ok := r.(*Opaque); ok {
		return o.Keyword
	}
	return r.Kind().Keyword()
}

// Format returns the record body text, without identifier or terminator.
func Format(r Record) string {
	w := step.NewWriter()
	r.WriteStep(w)
	return w.String()
}

// Target names one record type a reference field may point at.
// Modeled targets match on Kind; unmodeled targets match opaque records
// by keyword.
type Target struct {
	Kind    Kind
	Keyword string
}

// Modeled returns a target matching records of kind k.
func Modeled(k Kind) Target {
	return Target{Kind: k, Keyword: k.Keyword()}
}

// Unmodeled returns a target matching opaque records with the given keyword.
func Unmodeled(keyword string) Target {
	return Target{Kind: KindOpaque, Keyword: keyword}
}

// Accepts reports whether r is of the targeted type.
func (t Target) Accepts(r Record) bool {
	if t.Kind != KindOpaque {
		return r.Kind() == t.Kind
	}
	o, ok := r.(*Opaque)
	return ok && o.Keyword == t.Keyword
}

func (t Target) String() string {
	if t.Kind != KindOpaque {
		return t.Kind.String()
	}
	return t.Keyword
}
