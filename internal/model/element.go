package model

import (
	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/step"
)

// WallType is IfcWallTypeEnum.
type WallType string

const (
	WallMovable       WallType = "MOVABLE"
	WallParapet       WallType = "PARAPET"
	WallPartitioning  WallType = "PARTITIONING"
	WallPlumbingWall  WallType = "PLUMBINGWALL"
	WallShear         WallType = "SHEAR"
	WallSolidWall     WallType = "SOLIDWALL"
	WallStandard      WallType = "STANDARD"
	WallPolygonal     WallType = "POLYGONAL"
	WallElementedWall WallType = "ELEMENTEDWALL"
	WallUserDefined   WallType = "USERDEFINED"
	WallNotDefined    WallType = "NOTDEFINED"
)

var parseWallType = enumOf(
	WallMovable, WallParapet, WallPartitioning, WallPlumbingWall, WallShear, WallSolidWall,
	WallStandard, WallPolygonal, WallElementedWall, WallUserDefined, WallNotDefined,
)

// Wall is an IFCWALL.
type Wall struct {
	Root
	Product
	Tag            ir.Optional[ir.Label]
	PredefinedType ir.Optional[WallType]
}

func (*Wall) Kind() Kind { return KindWall }
func (*Wall) record()    {}

func (r *Wall) WriteStep(w *step.Writer) {
	w.Begin(KindWall.Keyword())
	r.writeRoot(w)
	r.writeProduct(w)
	step.WriteOpt(w, r.Tag, (*step.Writer).Label)
	step.WriteOpt(w, r.PredefinedType, writeEnum[WallType])
	w.End()
}

func parseWall(p *step.Parser) (Record, error) {
	r := &Wall{}
	a := openArgs(p, KindWall)
	r.parseRoot(a)
	r.parseProduct(a)
	field(a, "Tag", &r.Tag, opt((*step.Parser).Label))
	field(a, "PredefinedType", &r.PredefinedType, opt(parseWallType))
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var wallRefs = productRefs[*Wall]()
