package model

import (
	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/step"
)

// Placement is a 2D or 3D axis placement (IfcAxis2Placement).
type Placement interface {
	Record
	placement()
}

// Direction is a 2D or 3D direction.
type Direction interface {
	Record
	direction()
}

// Point2D is an IFCCARTESIANPOINT with two coordinates.
type Point2D struct {
	Coordinates [2]ir.Real
}

func (*Point2D) Kind() Kind { return KindPoint2D }
func (*Point2D) record()    {}

func (r *Point2D) WriteStep(w *step.Writer) {
	w.Begin(KindPoint2D.Keyword())
	step.WriteList(w, r.Coordinates[:], (*step.Writer).Real)
	w.End()
}

// Point3D is an IFCCARTESIANPOINT with three coordinates.
type Point3D struct {
	Coordinates [3]ir.Real
}

func (*Point3D) Kind() Kind { return KindPoint3D }
func (*Point3D) record()    {}

func (r *Point3D) WriteStep(w *step.Writer) {
	w.Begin(KindPoint3D.Keyword())
	step.WriteList(w, r.Coordinates[:], (*step.Writer).Real)
	w.End()
}

// parseCartesianPoint picks Point2D or Point3D by arity.
func parseCartesianPoint(p *step.Parser) (Record, error) {
	var coords []ir.Real
	a := openArgs(p, KindPoint3D)
	field(a, "Coordinates", &coords, list((*step.Parser).Real))
	if err := a.close(); err != nil {
		return nil, err
	}
	switch len(coords) {
	case 2:
		return &Point2D{Coordinates: [2]ir.Real(coords)}, nil
	case 3:
		return &Point3D{Coordinates: [3]ir.Real(coords)}, nil
	}
	return nil, p.Errorf("IFCCARTESIANPOINT: want 2 or 3 coordinates, got %d", len(coords))
}

// Direction2D is an IFCDIRECTION with two ratios.
type Direction2D struct {
	Ratios [2]ir.Real
}

func (*Direction2D) Kind() Kind { return KindDirection2D }
func (*Direction2D) record()    {}
func (*Direction2D) direction() {}

func (r *Direction2D) WriteStep(w *step.Writer) {
	w.Begin(KindDirection2D.Keyword())
	step.WriteList(w, r.Ratios[:], (*step.Writer).Real)
	w.End()
}

// Direction3D is an IFCDIRECTION with three ratios.
type Direction3D struct {
	Ratios [3]ir.Real
}

func (*Direction3D) Kind() Kind { return KindDirection3D }
func (*Direction3D) record()    {}
func (*Direction3D) direction() {}

func (r *Direction3D) WriteStep(w *step.Writer) {
	w.Begin(KindDirection3D.Keyword())
	step.WriteList(w, r.Ratios[:], (*step.Writer).Real)
	w.End()
}

func parseDirection(p *step.Parser) (Record, error) {
	var ratios []ir.Real
	a := openArgs(p, KindDirection3D)
	field(a, "DirectionRatios", &ratios, list((*step.Parser).Real))
	if err := a.close(); err != nil {
		return nil, err
	}
	switch len(ratios) {
	case 2:
		return &Direction2D{Ratios: [2]ir.Real(ratios)}, nil
	case 3:
		return &Direction3D{Ratios: [3]ir.Real(ratios)}, nil
	}
	return nil, p.Errorf("IFCDIRECTION: want 2 or 3 ratios, got %d", len(ratios))
}

// Axis2D is an IFCAXIS2PLACEMENT2D.
type Axis2D struct {
	Location     ir.Ref[*Point2D]
	RefDirection ir.Optional[ir.Ref[*Direction2D]]
}

func (*Axis2D) Kind() Kind { return KindAxis2D }
func (*Axis2D) record()    {}
func (*Axis2D) placement() {}

func (r *Axis2D) WriteStep(w *step.Writer) {
	w.Begin(KindAxis2D.Keyword())
	writeRef(w, r.Location)
	step.WriteOpt(w, r.RefDirection, writeRef[*Direction2D])
	w.End()
}

func parseAxis2D(p *step.Parser) (Record, error) {
	r := &Axis2D{}
	a := openArgs(p, KindAxis2D)
	field(a, "Location", &r.Location, ref[*Point2D])
	field(a, "RefDirection", &r.RefDirection, opt(ref[*Direction2D]))
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var axis2DRefs = []RefField{
	refOne("location", func(r *Axis2D) ir.Ref[*Point2D] { return r.Location }, Modeled(KindPoint2D)),
	refOpt("ref_direction", func(r *Axis2D) ir.Optional[ir.Ref[*Direction2D]] { return r.RefDirection }, Modeled(KindDirection2D)),
}

// Axis3D is an IFCAXIS2PLACEMENT3D.
type Axis3D struct {
	Location     ir.Ref[*Point3D]
	Axis         ir.Optional[ir.Ref[*Direction3D]]
	RefDirection ir.Optional[ir.Ref[*Direction3D]]
}

func (*Axis3D) Kind() Kind { return KindAxis3D }
func (*Axis3D) record()    {}
func (*Axis3D) placement() {}

func (r *Axis3D) WriteStep(w *step.Writer) {
	w.Begin(KindAxis3D.Keyword())
	writeRef(w, r.Location)
	step.WriteOpt(w, r.Axis, writeRef[*Direction3D])
	step.WriteOpt(w, r.RefDirection, writeRef[*Direction3D])
	w.End()
}

func parseAxis3D(p *step.Parser) (Record, error) {
	r := &Axis3D{}
	a := openArgs(p, KindAxis3D)
	field(a, "Location", &r.Location, ref[*Point3D])
	field(a, "Axis", &r.Axis, opt(ref[*Direction3D]))
	field(a, "RefDirection", &r.RefDirection, opt(ref[*Direction3D]))
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var axis3DRefs = []RefField{
	refOne("location", func(r *Axis3D) ir.Ref[*Point3D] { return r.Location }, Modeled(KindPoint3D)),
	refOpt("axis", func(r *Axis3D) ir.Optional[ir.Ref[*Direction3D]] { return r.Axis }, Modeled(KindDirection3D)),
	refOpt("ref_direction", func(r *Axis3D) ir.Optional[ir.Ref[*Direction3D]] { return r.RefDirection }, Modeled(KindDirection3D)),
}

// LocalPlacement is an IFCLOCALPLACEMENT.
type LocalPlacement struct {
	PlacementRelTo    ir.Optional[ir.Ref[*LocalPlacement]]
	RelativePlacement ir.Ref[Placement]
}

func (*LocalPlacement) Kind() Kind { return KindLocalPlacement }
func (*LocalPlacement) record()    {}

func (r *LocalPlacement) WriteStep(w *step.Writer) {
	w.Begin(KindLocalPlacement.Keyword())
	step.WriteOpt(w, r.PlacementRelTo, writeRef[*LocalPlacement])
	writeRef(w, r.RelativePlacement)
	w.End()
}

func parseLocalPlacement(p *step.Parser) (Record, error) {
	r := &LocalPlacement{}
	a := openArgs(p, KindLocalPlacement)
	field(a, "PlacementRelTo", &r.PlacementRelTo, opt(ref[*LocalPlacement]))
	field(a, "RelativePlacement", &r.RelativePlacement, ref[Placement])
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var localPlacementRefs = []RefField{
	refOpt("placement_rel_to", func(r *LocalPlacement) ir.Optional[ir.Ref[*LocalPlacement]] { return r.PlacementRelTo }, Modeled(KindLocalPlacement)),
	refOne("relative_placement", func(r *LocalPlacement) ir.Ref[Placement] { return r.RelativePlacement }, Modeled(KindAxis2D), Modeled(KindAxis3D)),
}
