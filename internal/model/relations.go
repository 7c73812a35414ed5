package model

import (
	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/step"
)

// RelAggregates is an IFCRELAGGREGATES: the decomposition of one spatial
// node into its children.
type RelAggregates struct {
	Root
	RelatingObject ir.Ref[Spatial]
	RelatedObjects []ir.Ref[Spatial]
}

func (*RelAggregates) Kind() Kind { return KindRelAggregates }
func (*RelAggregates) record()    {}

func (r *RelAggregates) WriteStep(w *step.Writer) {
	w.Begin(KindRelAggregates.Keyword())
	r.writeRoot(w)
	writeRef(w, r.RelatingObject)
	step.WriteList(w, r.RelatedObjects, writeRef[Spatial])
	w.End()
}

func parseRelAggregates(p *step.Parser) (Record, error) {
	r := &RelAggregates{}
	a := openArgs(p, KindRelAggregates)
	r.parseRoot(a)
	field(a, "RelatingObject", &r.RelatingObject, ref[Spatial])
	field(a, "RelatedObjects", &r.RelatedObjects, list(ref[Spatial]))
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var relAggregatesRefs = append(rootRefs[*RelAggregates](),
	refOne("relating_object", func(r *RelAggregates) ir.Ref[Spatial] { return r.RelatingObject }, spatialTargets...),
	refMany("related_objects", func(r *RelAggregates) []ir.Ref[Spatial] { return r.RelatedObjects }, spatialTargets...),
)

// RelContainedInSpatialStructure is an IFCRELCONTAINEDINSPATIALSTRUCTURE:
// the elements placed in one spatial node.
type RelContainedInSpatialStructure struct {
	Root
	RelatedElements   []ir.Ref[Record]
	RelatingStructure ir.Ref[Spatial]
}

func (*RelContainedInSpatialStructure) Kind() Kind { return KindRelContainedInSpatialStructure }
func (*RelContainedInSpatialStructure) record()    {}

func (r *RelContainedInSpatialStructure) WriteStep(w *step.Writer) {
	w.Begin(KindRelContainedInSpatialStructure.Keyword())
	r.writeRoot(w)
	step.WriteList(w, r.RelatedElements, writeRef[Record])
	writeRef(w, r.RelatingStructure)
	w.End()
}

func parseRelContainedInSpatialStructure(p *step.Parser) (Record, error) {
	r := &RelContainedInSpatialStructure{}
	a := openArgs(p, KindRelContainedInSpatialStructure)
	r.parseRoot(a)
	field(a, "RelatedElements", &r.RelatedElements, list(ref[Record]))
	field(a, "RelatingStructure", &r.RelatingStructure, ref[Spatial])
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var relContainedRefs = append(rootRefs[*RelContainedInSpatialStructure](),
	refMany("related_elements", func(r *RelContainedInSpatialStructure) []ir.Ref[Record] { return r.RelatedElements }, elementTargets...),
	refOne("relating_structure", func(r *RelContainedInSpatialStructure) ir.Ref[Spatial] { return r.RelatingStructure }, spatialTargets...),
)
