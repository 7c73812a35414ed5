package builder

import (
	"fmt"

	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/model"
)

// ProjectScope is an open project.
type ProjectScope struct {
	scope
	Project ir.Ref[*model.Project]
	Context ir.Ref[*model.GeometricRepresentationContext]
}

// SiteScope is an open site.
type SiteScope struct {
	scope
	Site ir.Ref[*model.Site]
}

// BuildingScope is an open building.
type BuildingScope struct {
	scope
	Building ir.Ref[*model.Building]
}

// StoreyScope is an open building storey.
type StoreyScope struct {
	scope
	Storey ir.Ref[*model.BuildingStorey]
}

// WithProject inserts a project and its model context, then runs fn.
// Sites added by fn are aggregated under the project when fn returns.
func (b *Builder) WithProject(name string, fn func(*ProjectScope) error) (ir.Ref[*model.Project], error) {
	ctx := model.Insert(b.store, &model.GeometricRepresentationContext{
		ContextType:              ir.Some(ir.Label("Model")),
		CoordinateSpaceDimension: 3,
		Precision:                b.opts.Precision,
		WorldCoordinateSystem:    ir.Retag[model.Placement](b.worldAxis()),
	})
	project := model.Insert(b.store, &model.Project{
		Root:                   b.root(name),
		RepresentationContexts: ir.Some([]ir.Ref[*model.GeometricRepresentationContext]{ctx}),
		UnitsInContext:         b.opts.Units,
	})

	ps := &ProjectScope{
		scope:   scope{b: b, level: "project", ref: ir.Retag[model.Spatial](project)},
		Project: project,
		Context: ctx,
	}
	defer ps.finish()
	if err := fn(ps); err != nil {
		return project, fmt.Errorf("project %s: %w", project, err)
	}
	return project, nil
}

// WithSite inserts a site placed at the world origin and runs fn.
func (p *ProjectScope) WithSite(name string, fn func(*SiteScope) error) error {
	if err := p.check(); err != nil {
		return err
	}
	b := p.b
	lp := b.placement(ir.None[ir.Ref[*model.LocalPlacement]](), b.worldAxis())
	site := model.Insert(b.store, &model.Site{
		Root:            b.root(name),
		Product:         model.Product{ObjectPlacement: ir.Some(lp)},
		CompositionType: ir.Some(model.CompositionElement),
	})
	ss := &SiteScope{
		scope: scope{b: b, level: "site", ref: ir.Retag[model.Spatial](site), placement: ir.Some(lp)},
		Site:  site,
	}
	return enter(&p.scope, &ss.scope, ss, fn)
}

// WithBuilding inserts a building placed relative to the site and runs fn.
func (s *SiteScope) WithBuilding(name string, fn func(*BuildingScope) error) error {
	if err := s.check(); err != nil {
		return err
	}
	b := s.b
	lp := b.placement(s.placement, b.worldAxis())
	building := model.Insert(b.store, &model.Building{
		Root:            b.root(name),
		Product:         model.Product{ObjectPlacement: ir.Some(lp)},
		CompositionType: ir.Some(model.CompositionElement),
	})
	bs := &BuildingScope{
		scope:    scope{b: b, level: "building", ref: ir.Retag[model.Spatial](building), placement: ir.Some(lp)},
		Building: building,
	}
	return enter(&s.scope, &bs.scope, bs, fn)
}

// WithStorey inserts a storey at the given elevation and runs fn. Walls
// added by fn are contained in the storey when fn returns.
func (bs *BuildingScope) WithStorey(name string, elevation ir.Real, fn func(*StoreyScope) error) error {
	if err := bs.check(); err != nil {
		return err
	}
	b := bs.b
	axis := b.worldAxis()
	if elevation != 0 {
		pt := model.Insert(b.store, &model.Point3D{Coordinates: [3]ir.Real{0, 0, elevation}})
		axis = model.Insert(b.store, &model.Axis3D{Location: pt})
	}
	lp := b.placement(bs.placement, axis)
	storey := model.Insert(b.store, &model.BuildingStorey{
		Root:            b.root(name),
		Product:         model.Product{ObjectPlacement: ir.Some(lp)},
		CompositionType: ir.Some(model.CompositionElement),
		Elevation:       ir.Some(elevation),
	})
	ss := &StoreyScope{
		scope:  scope{b: b, level: "storey", ref: ir.Retag[model.Spatial](storey), placement: ir.Some(lp)},
		Storey: storey,
	}
	return enter(&bs.scope, &ss.scope, ss, fn)
}

// AddWall inserts a standard wall placed at the given point relative to
// the storey. The point may be an existing record or a new one.
func (ss *StoreyScope) AddWall(name string, at model.RefOr[*model.Point3D]) (ir.Ref[*model.Wall], error) {
	if err := ss.check(); err != nil {
		return ir.Ref[*model.Wall]{}, err
	}
	b := ss.b
	pt := at.Resolve(b.store)
	if _, err := model.Get(b.store, pt); err != nil {
		return ir.Ref[*model.Wall]{}, fmt.Errorf("wall %q: %w", name, err)
	}
	axis := model.Insert(b.store, &model.Axis3D{Location: pt})
	lp := b.placement(ss.placement, axis)
	wall := model.Insert(b.store, &model.Wall{
		Root:           b.root(name),
		Product:        model.Product{ObjectPlacement: ir.Some(lp)},
		PredefinedType: ir.Some(model.WallStandard),
	})
	ss.elements = append(ss.elements, ir.Retag[model.Record](wall))
	return wall, nil
}
