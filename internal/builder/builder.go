package builder

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/model"
)

// ErrScopeClosed is returned when a scope is used after its closure returned.
var ErrScopeClosed = errors.New("builder scope already finalized")

// GlobalIDGenerator supplies GlobalIds for new rooted records.
type GlobalIDGenerator interface {
	Generate() ir.GlobalID
}

type randomGlobalIDs struct{}

func (randomGlobalIDs) Generate() ir.GlobalID {
	return ir.NewGlobalID()
}

// Options configures a Builder.
type Options struct {
	// GlobalIDs defaults to random compressed UUIDs.
	GlobalIDs GlobalIDGenerator

	// OwnerHistory is set on every rooted record.
	OwnerHistory ir.Optional[ir.Ref[model.Record]]

	// Units is the project's units in context.
	Units ir.Optional[ir.Ref[model.Record]]

	// Precision of the model representation context.
	Precision ir.Optional[ir.Real]
}

// Builder adds spatial structure records to a store.
type Builder struct {
	store  *model.Store
	opts   Options
	origin model.RefOr[*model.Point3D]
	world  ir.Optional[ir.Ref[*model.Axis3D]]
}

// New creates a builder writing into s.
func New(s *model.Store, opts Options) *Builder {
	if opts.GlobalIDs == nil {
		opts.GlobalIDs = randomGlobalIDs{}
	}
	return &Builder{
		store:  s,
		opts:   opts,
		origin: model.Inline(&model.Point3D{}),
	}
}

// Store returns the store being built.
func (b *Builder) Store() *model.Store {
	return b.store
}

// worldAxis returns the shared axis at the origin, inserting it on first use.
func (b *Builder) worldAxis() ir.Ref[*model.Axis3D] {
	if ref, ok := b.world.Value(); ok {
		return ref
	}
	ref := model.Insert(b.store, &model.Axis3D{Location: b.origin.Resolve(b.store)})
	b.world = ir.Some(ref)
	return ref
}

func (b *Builder) root(name string) model.Root {
	return model.Root{
		GlobalID:     b.opts.GlobalIDs.Generate(),
		OwnerHistory: b.opts.OwnerHistory,
		Name:         ir.Some(ir.Label(name)),
	}
}

// placement inserts a local placement relative to parent at axis.
func (b *Builder) placement(parent ir.Optional[ir.Ref[*model.LocalPlacement]], axis ir.Ref[*model.Axis3D]) ir.Ref[*model.LocalPlacement] {
	return model.Insert(b.store, &model.LocalPlacement{
		PlacementRelTo:    parent,
		RelativePlacement: ir.Retag[model.Placement](axis),
	})
}

// scope is one open level of the spatial structure.
type scope struct {
	b         *Builder
	level     string
	ref       ir.Ref[model.Spatial]
	placement ir.Optional[ir.Ref[*model.LocalPlacement]]
	children  []ir.Ref[model.Spatial]
	elements  []ir.Ref[model.Record]
	finished  bool
}

func (s *scope) check() error {
	if s.finished {
		return fmt.Errorf("%s %s: %w", s.level, s.ref, ErrScopeClosed)
	}
	return nil
}

// finish writes the closing relationships of the scope. It runs once.
func (s *scope) finish() {
	if s.finished {
		return
	}
	s.finished = true

	b := s.b
	if len(s.children) > 0 {
		b.store.InsertNew(&model.RelAggregates{
			Root:           model.Root{GlobalID: b.opts.GlobalIDs.Generate(), OwnerHistory: b.opts.OwnerHistory},
			RelatingObject: s.ref,
			RelatedObjects: s.children,
		})
	}
	if len(s.elements) > 0 {
		b.store.InsertNew(&model.RelContainedInSpatialStructure{
			Root:              model.Root{GlobalID: b.opts.GlobalIDs.Generate(), OwnerHistory: b.opts.OwnerHistory},
			RelatedElements:   s.elements,
			RelatingStructure: s.ref,
		})
	}
	slog.Debug("builder scope finalized",
		"level", s.level,
		"id", s.ref.String(),
		"children", len(s.children),
		"elements", len(s.elements))
}

// enter runs fn with child open and finalizes child afterwards.
func enter[S any](parent, child *scope, sc S, fn func(S) error) error {
	parent.children = append(parent.children, child.ref)
	defer child.finish()
	if err := fn(sc); err != nil {
		return fmt.Errorf("%s %s: %w", child.level, child.ref, err)
	}
	return nil
}
