package model

import (
	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/step"
)

// Dimension is a coordinate space dimension, 1 to 3.
type Dimension uint8

func parseDimension(p *step.Parser) (Dimension, error) {
	start := p.Pos()
	n, err := p.Integer()
	if err != nil {
		return 0, err
	}
	if n < 1 || n > 3 {
		p.Reset(start)
		p.SkipSpace()
		return 0, p.Errorf("coordinate space dimension must be 1, 2 or 3, got %d", n)
	}
	return Dimension(n), nil
}

func writeDimension(w *step.Writer, d Dimension) {
	w.Integer(ir.Integer(d))
}

// GeometricRepresentationContext is an IFCGEOMETRICREPRESENTATIONCONTEXT.
type GeometricRepresentationContext struct {
	ContextIdentifier        ir.Optional[ir.Label]
	ContextType              ir.Optional[ir.Label]
	CoordinateSpaceDimension Dimension
	Precision                ir.Optional[ir.Real]
	WorldCoordinateSystem    ir.Ref[Placement]
	TrueNorth                ir.Optional[ir.Ref[Direction]]
}

func (*GeometricRepresentationContext) Kind() Kind { return KindGeometricRepresentationContext }
func (*GeometricRepresentationContext) record()    {}

func (r *GeometricRepresentationContext) WriteStep(w *step.Writer) {
	w.Begin(KindGeometricRepresentationContext.Keyword())
	step.WriteOpt(w, r.ContextIdentifier, (*step.Writer).Label)
	step.WriteOpt(w, r.ContextType, (*step.Writer).Label)
	writeDimension(w, r.CoordinateSpaceDimension)
	step.WriteOpt(w, r.Precision, (*step.Writer).Real)
	writeRef(w, r.WorldCoordinateSystem)
	step.WriteOpt(w, r.TrueNorth, writeRef[Direction])
	w.End()
}

func parseGeometricRepresentationContext(p *step.Parser) (Record, error) {
	r := &GeometricRepresentationContext{}
	a := openArgs(p, KindGeometricRepresentationContext)
	field(a, "ContextIdentifier", &r.ContextIdentifier, opt((*step.Parser).Label))
	field(a, "ContextType", &r.ContextType, opt((*step.Parser).Label))
	field(a, "CoordinateSpaceDimension", &r.CoordinateSpaceDimension, parseDimension)
	field(a, "Precision", &r.Precision, opt((*step.Parser).Real))
	field(a, "WorldCoordinateSystem", &r.WorldCoordinateSystem, ref[Placement])
	field(a, "TrueNorth", &r.TrueNorth, opt(ref[Direction]))
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var geometricRepresentationContextRefs = []RefField{
	refOne("world_coordinate_system", func(r *GeometricRepresentationContext) ir.Ref[Placement] { return r.WorldCoordinateSystem },
		Modeled(KindAxis2D), Modeled(KindAxis3D)),
	refOpt("true_north", func(r *GeometricRepresentationContext) ir.Optional[ir.Ref[Direction]] { return r.TrueNorth },
		Modeled(KindDirection2D), Modeled(KindDirection3D)),
}
