package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stepgraph/internal/ir"
)

func TestReferencesInFieldOrder(t *testing.T) {
	rel := &RelContainedInSpatialStructure{
		Root:              Root{GlobalID: "2bT0GQ5m5FcgfT0Tq4qF9V", OwnerHistory: ir.Some(ir.NewRef[Record](2))},
		RelatedElements:   []ir.Ref[Record]{ir.NewRef[Record](50), ir.NewRef[Record](51)},
		RelatingStructure: ir.NewRef[Spatial](40),
	}
	assert.Equal(t, []Reference{
		{Field: "owner_history", ID: 2},
		{Field: "related_elements", ID: 50},
		{Field: "related_elements", ID: 51},
		{Field: "relating_structure", ID: 40},
	}, References(rel))
}

func TestReferencesSkipAbsentOptionals(t *testing.T) {
	site := &Site{Product: Product{ObjectPlacement: ir.Some(ir.NewRef[*LocalPlacement](12))}}
	assert.Equal(t, []Reference{{Field: "object_placement", ID: 12}}, References(site))
	assert.Empty(t, References(&Point3D{}))
}

func TestReferencesOfOpaque(t *testing.T) {
	rec, err := ParseRecordText("IFCOWNERHISTORY(#3,#4,$,.ADDED.,$,$,$,0)")
	require.NoError(t, err)
	assert.Equal(t, []Reference{{ID: 3}, {ID: 4}}, References(rec))
}

func TestEveryReferenceFieldHasTargets(t *testing.T) {
	for _, k := range Kinds() {
		for _, f := range ReferenceFields(k) {
			assert.NotEmpty(t, f.Targets, "%s.%s", k, f.Name)
			assert.NotEmpty(t, f.Name, k.String())
		}
	}
	assert.Nil(t, ReferenceFields(KindOpaque))
}

func TestTargetAccepts(t *testing.T) {
	history := &Opaque{Keyword: "IFCOWNERHISTORY"}
	assert.True(t, Unmodeled("IFCOWNERHISTORY").Accepts(history))
	assert.False(t, Unmodeled("IFCACTORROLE").Accepts(history))
	assert.False(t, Modeled(KindWall).Accepts(history))
	assert.True(t, Modeled(KindWall).Accepts(&Wall{}))
	assert.False(t, Modeled(KindPoint2D).Accepts(&Point3D{}))

	assert.Equal(t, "Wall", Modeled(KindWall).String())
	assert.Equal(t, "IFCOWNERHISTORY", Unmodeled("IFCOWNERHISTORY").String())
}

func TestRefFieldAccepts(t *testing.T) {
	var placement RefField
	for _, f := range ReferenceFields(KindLocalPlacement) {
		if f.Name == "relative_placement" {
			placement = f
		}
	}
	require.NotEmpty(t, placement.Name)
	assert.True(t, placement.Accepts(&Axis2D{}))
	assert.True(t, placement.Accepts(&Axis3D{}))
	assert.False(t, placement.Accepts(&Point3D{}))
}
