package model

import (
	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/step"
)

// Root holds the attributes every rooted object starts with.
type Root struct {
	GlobalID     ir.GlobalID
	OwnerHistory ir.Optional[ir.Ref[Record]]
	Name         ir.Optional[ir.Label]
	Description  ir.Optional[ir.Label]
}

func (r *Root) root() *Root { return r }

func (r *Root) parseRoot(a *args) {
	field(a, "GlobalId", &r.GlobalID, (*step.Parser).GlobalID)
	field(a, "OwnerHistory", &r.OwnerHistory, opt(ref[Record]))
	field(a, "Name", &r.Name, opt((*step.Parser).Label))
	field(a, "Description", &r.Description, opt((*step.Parser).Label))
}

func (r *Root) writeRoot(w *step.Writer) {
	w.GlobalID(r.GlobalID)
	step.WriteOpt(w, r.OwnerHistory, writeRef[Record])
	step.WriteOpt(w, r.Name, (*step.Writer).Label)
	step.WriteOpt(w, r.Description, (*step.Writer).Label)
}

type rooted interface {
	Record
	root() *Root
}

func rootRefs[R rooted]() []RefField {
	return []RefField{
		refOpt("owner_history", func(r R) ir.Optional[ir.Ref[Record]] { return r.root().OwnerHistory },
			Unmodeled("IFCOWNERHISTORY")),
	}
}

// Product holds the placement and shape attributes of spatial elements
// and building elements.
type Product struct {
	ObjectType      ir.Optional[ir.Label]
	ObjectPlacement ir.Optional[ir.Ref[*LocalPlacement]]
	Representation  ir.Optional[ir.Ref[Record]]
}

func (r *Product) product() *Product { return r }

func (r *Product) parseProduct(a *args) {
	field(a, "ObjectType", &r.ObjectType, opt((*step.Parser).Label))
	field(a, "ObjectPlacement", &r.ObjectPlacement, opt(ref[*LocalPlacement]))
	field(a, "Representation", &r.Representation, opt(ref[Record]))
}

func (r *Product) writeProduct(w *step.Writer) {
	step.WriteOpt(w, r.ObjectType, (*step.Writer).Label)
	step.WriteOpt(w, r.ObjectPlacement, writeRef[*LocalPlacement])
	step.WriteOpt(w, r.Representation, writeRef[Record])
}

type producted interface {
	rooted
	product() *Product
}

func productRefs[R producted]() []RefField {
	return append(rootRefs[R](),
		refOpt("object_placement", func(r R) ir.Optional[ir.Ref[*LocalPlacement]] { return r.product().ObjectPlacement },
			Modeled(KindLocalPlacement)),
		refOpt("representation", func(r R) ir.Optional[ir.Ref[Record]] { return r.product().Representation },
			Unmodeled("IFCPRODUCTDEFINITIONSHAPE")),
	)
}

// Spatial is a node of the spatial structure: project, site, building or storey.
type Spatial interface {
	rooted
	spatial()
}

// ElementComposition is IfcElementCompositionEnum.
type ElementComposition string

const (
	CompositionComplex ElementComposition = "COMPLEX"
	CompositionElement ElementComposition = "ELEMENT"
	CompositionPartial ElementComposition = "PARTIAL"
)

var parseComposition = enumOf(CompositionComplex, CompositionElement, CompositionPartial)

// Project is an IFCPROJECT.
type Project struct {
	Root
	ObjectType             ir.Optional[ir.Label]
	LongName               ir.Optional[ir.Label]
	Phase                  ir.Optional[ir.Label]
	RepresentationContexts ir.Optional[[]ir.Ref[*GeometricRepresentationContext]]
	UnitsInContext         ir.Optional[ir.Ref[Record]]
}

func (*Project) Kind() Kind { return KindProject }
func (*Project) record()    {}
func (*Project) spatial()   {}

func (r *Project) WriteStep(w *step.Writer) {
	w.Begin(KindProject.Keyword())
	r.writeRoot(w)
	step.WriteOpt(w, r.ObjectType, (*step.Writer).Label)
	step.WriteOpt(w, r.LongName, (*step.Writer).Label)
	step.WriteOpt(w, r.Phase, (*step.Writer).Label)
	step.WriteOpt(w, r.RepresentationContexts, writeList(writeRef[*GeometricRepresentationContext]))
	step.WriteOpt(w, r.UnitsInContext, writeRef[Record])
	w.End()
}

func parseProject(p *step.Parser) (Record, error) {
	r := &Project{}
	a := openArgs(p, KindProject)
	r.parseRoot(a)
	field(a, "ObjectType", &r.ObjectType, opt((*step.Parser).Label))
	field(a, "LongName", &r.LongName, opt((*step.Parser).Label))
	field(a, "Phase", &r.Phase, opt((*step.Parser).Label))
	field(a, "RepresentationContexts", &r.RepresentationContexts, opt(list(ref[*GeometricRepresentationContext])))
	field(a, "UnitsInContext", &r.UnitsInContext, opt(ref[Record]))
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var projectRefs = append(rootRefs[*Project](),
	refOptMany("representation_contexts", func(r *Project) ir.Optional[[]ir.Ref[*GeometricRepresentationContext]] { return r.RepresentationContexts },
		Modeled(KindGeometricRepresentationContext)),
	refOpt("units_in_context", func(r *Project) ir.Optional[ir.Ref[Record]] { return r.UnitsInContext },
		Unmodeled("IFCUNITASSIGNMENT")),
)

// Site is an IFCSITE.
type Site struct {
	Root
	Product
	LongName        ir.Optional[ir.Label]
	CompositionType ir.Optional[ElementComposition]
	RefLatitude     ir.Optional[[]ir.Integer]
	RefLongitude    ir.Optional[[]ir.Integer]
	RefElevation    ir.Optional[ir.Real]
	LandTitleNumber ir.Optional[ir.Label]
	SiteAddress     ir.Optional[ir.Ref[Record]]
}

func (*Site) Kind() Kind { return KindSite }
func (*Site) record()    {}
func (*Site) spatial()   {}

func (r *Site) WriteStep(w *step.Writer) {
	w.Begin(KindSite.Keyword())
	r.writeRoot(w)
	r.writeProduct(w)
	step.WriteOpt(w, r.LongName, (*step.Writer).Label)
	step.WriteOpt(w, r.CompositionType, writeEnum[ElementComposition])
	step.WriteOpt(w, r.RefLatitude, writeList((*step.Writer).Integer))
	step.WriteOpt(w, r.RefLongitude, writeList((*step.Writer).Integer))
	step.WriteOpt(w, r.RefElevation, (*step.Writer).Real)
	step.WriteOpt(w, r.LandTitleNumber, (*step.Writer).Label)
	step.WriteOpt(w, r.SiteAddress, writeRef[Record])
	w.End()
}

func parseSite(p *step.Parser) (Record, error) {
	r := &Site{}
	a := openArgs(p, KindSite)
	r.parseRoot(a)
	r.parseProduct(a)
	field(a, "LongName", &r.LongName, opt((*step.Parser).Label))
	field(a, "CompositionType", &r.CompositionType, opt(parseComposition))
	field(a, "RefLatitude", &r.RefLatitude, opt(list((*step.Parser).Integer)))
	field(a, "RefLongitude", &r.RefLongitude, opt(list((*step.Parser).Integer)))
	field(a, "RefElevation", &r.RefElevation, opt((*step.Parser).Real))
	field(a, "LandTitleNumber", &r.LandTitleNumber, opt((*step.Parser).Label))
	field(a, "SiteAddress", &r.SiteAddress, opt(ref[Record]))
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var siteRefs = append(productRefs[*Site](),
	refOpt("site_address", func(r *Site) ir.Optional[ir.Ref[Record]] { return r.SiteAddress },
		Unmodeled("IFCPOSTALADDRESS")),
)

// Building is an IFCBUILDING.
type Building struct {
	Root
	Product
	LongName             ir.Optional[ir.Label]
	CompositionType      ir.Optional[ElementComposition]
	ElevationOfRefHeight ir.Optional[ir.Real]
	ElevationOfTerrain   ir.Optional[ir.Real]
	BuildingAddress      ir.Optional[ir.Ref[Record]]
}

func (*Building) Kind() Kind { return KindBuilding }
func (*Building) record()    {}
func (*Building) spatial()   {}

func (r *Building) WriteStep(w *step.Writer) {
	w.Begin(KindBuilding.Keyword())
	r.writeRoot(w)
	r.writeProduct(w)
	step.WriteOpt(w, r.LongName, (*step.Writer).Label)
	step.WriteOpt(w, r.CompositionType, writeEnum[ElementComposition])
	step.WriteOpt(w, r.ElevationOfRefHeight, (*step.Writer).Real)
	step.WriteOpt(w, r.ElevationOfTerrain, (*step.Writer).Real)
	step.WriteOpt(w, r.BuildingAddress, writeRef[Record])
	w.End()
}

func parseBuilding(p *step.Parser) (Record, error) {
	r := &Building{}
	a := openArgs(p, KindBuilding)
	r.parseRoot(a)
	r.parseProduct(a)
	field(a, "LongName", &r.LongName, opt((*step.Parser).Label))
	field(a, "CompositionType", &r.CompositionType, opt(parseComposition))
	field(a, "ElevationOfRefHeight", &r.ElevationOfRefHeight, opt((*step.Parser).Real))
	field(a, "ElevationOfTerrain", &r.ElevationOfTerrain, opt((*step.Parser).Real))
	field(a, "BuildingAddress", &r.BuildingAddress, opt(ref[Record]))
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var buildingRefs = append(productRefs[*Building](),
	refOpt("building_address", func(r *Building) ir.Optional[ir.Ref[Record]] { return r.BuildingAddress },
		Unmodeled("IFCPOSTALADDRESS")),
)

// BuildingStorey is an IFCBUILDINGSTOREY.
type BuildingStorey struct {
	Root
	Product
	LongName        ir.Optional[ir.Label]
	CompositionType ir.Optional[ElementComposition]
	Elevation       ir.Optional[ir.Real]
}

func (*BuildingStorey) Kind() Kind { return KindBuildingStorey }
func (*BuildingStorey) record()    {}
func (*BuildingStorey) spatial()   {}

func (r *BuildingStorey) WriteStep(w *step.Writer) {
	w.Begin(KindBuildingStorey.Keyword())
	r.writeRoot(w)
	r.writeProduct(w)
	step.WriteOpt(w, r.LongName, (*step.Writer).Label)
	step.WriteOpt(w, r.CompositionType, writeEnum[ElementComposition])
	step.WriteOpt(w, r.Elevation, (*step.Writer).Real)
	w.End()
}

func parseBuildingStorey(p *step.Parser) (Record, error) {
	r := &BuildingStorey{}
	a := openArgs(p, KindBuildingStorey)
	r.parseRoot(a)
	r.parseProduct(a)
	field(a, "LongName", &r.LongName, opt((*step.Parser).Label))
	field(a, "CompositionType", &r.CompositionType, opt(parseComposition))
	field(a, "Elevation", &r.Elevation, opt((*step.Parser).Real))
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var buildingStoreyRefs = productRefs[*BuildingStorey]()
